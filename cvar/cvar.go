// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"sort"
	"strconv"

	"etmove/conlog"

	"github.com/pkg/errors"
)

var (
	cvarArray  []*Cvar
	cvarByName = make(map[string]*Cvar)
)

type flag uint64

const (
	// cvar flags bitfield
	NONE        flag = 0
	ARCHIVE     flag = 1
	SERVERINFO  flag = 1 << 2
	ROM         flag = 1 << 6
	CHEAT       flag = 1 << 9
	USERDEFINED flag = 1 << 17 // cvar was created by the user, not registered by a package.
)

type CallbackFunc func(cv *Cvar)

type Cvar struct {
	archive    bool
	serverinfo bool
	rom        bool
	cheat      bool
	user       bool
	callback   CallbackFunc
	name       string
	// stringValue is the truth, value the derived one
	stringValue  string
	value        float32
	defaultValue string
	// bounds, only enforced when min < max
	min, max float32
	id       int
}

func (cv *Cvar) Archive() bool {
	return cv.archive
}

func (cv *Cvar) ServerInfo() bool {
	return cv.serverinfo
}

func (cv *Cvar) Cheat() bool {
	return cv.cheat
}

func (cv *Cvar) UserDefined() bool {
	return cv.user
}

func (cv *Cvar) SetCallback(cb CallbackFunc) {
	cv.callback = cb
}

// SetBounds clamps all future numeric values into [min, max].
func (cv *Cvar) SetBounds(min, max float32) {
	cv.min, cv.max = min, max
	cv.SetByString(cv.stringValue)
}

func (cv *Cvar) SetByString(s string) {
	if cv.rom {
		return
	}
	pf, err := strconv.ParseFloat(s, 32)
	v := float32(pf)
	if err == nil && cv.min < cv.max && (v < cv.min || v > cv.max) {
		if v < cv.min {
			v = cv.min
		} else {
			v = cv.max
		}
		conlog.Warnf("%s out of range, set to %v\n", cv.name, v)
		s = strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	cv.stringValue = s
	cv.value = v
	if cv.callback != nil {
		cv.callback(cv)
	}
}

func (cv *Cvar) Reset() {
	cv.SetByString(cv.defaultValue)
}

func (cv *Cvar) String() string {
	return cv.stringValue
}

func (cv *Cvar) ID() int {
	return cv.id
}

func (cv *Cvar) Name() string {
	return cv.name
}

func (cv *Cvar) Value() float32 {
	return cv.value
}

// Int truncates the value like the integer view of a console variable.
func (cv *Cvar) Int() int32 {
	return int32(cv.value)
}

func (cv *Cvar) SetValue(value float32) {
	if float32(int(value)) == value {
		v := strconv.FormatInt(int64(value), 10)
		cv.SetByString(v)
	} else {
		v := strconv.FormatFloat(float64(value), 'f', -1, 32)
		cv.SetByString(v)
	}
}

func (cv *Cvar) Bool() bool {
	return cv.stringValue != "0"
}

func Get(name string) (*Cvar, bool) {
	cv, ok := cvarByName[name]
	return cv, ok
}

func GetByID(id int) (*Cvar, error) {
	if id < 0 || id >= len(cvarArray) {
		return nil, errors.Errorf("id %d out of bounds", id)
	}
	return cvarArray[id], nil
}

func create(name, value string) *Cvar {
	cv := &Cvar{name: name, defaultValue: value}
	cv.SetByString(value)
	pos := len(cvarArray)
	cvarArray = append(cvarArray, cv)
	cvarByName[name] = cv
	cv.id = pos
	return cv
}

func Register(name, value string, flags flag) (*Cvar, error) {
	if _, ok := cvarByName[name]; ok {
		return nil, errors.Errorf("can't register variable %s, already defined", name)
	}

	cv := create(name, value)

	if flags&ARCHIVE != 0 {
		cv.archive = true
	}
	if flags&SERVERINFO != 0 {
		cv.serverinfo = true
	}
	if flags&ROM != 0 {
		cv.rom = true
	}
	if flags&CHEAT != 0 {
		cv.cheat = true
	}
	if flags&USERDEFINED != 0 {
		cv.user = true
	}

	return cv, nil
}

func MustRegister(n, v string, flag flag) *Cvar {
	cv, err := Register(n, v, flag)
	if err != nil {
		panic(err)
	}
	return cv
}

// Set changes a variable by name. Unknown names create a user variable.
func Set(name, value string) *Cvar {
	if cv, ok := cvarByName[name]; ok {
		cv.SetByString(value)
		return cv
	}
	cv := create(name, value)
	cv.user = true
	return cv
}

// Execute handles a "name [value]" line. It reports false when name is not
// a variable.
func Execute(args []string) bool {
	if len(args) == 0 {
		return false
	}
	cv, ok := Get(args[0])
	if !ok {
		return false
	}
	if len(args) == 1 {
		conlog.Printf("\"%s\" is \"%s\"\n", cv.Name(), cv.String())
		return true
	}
	cv.SetByString(args[1])
	return true
}

func ResetAll() {
	for _, cv := range cvarArray {
		cv.Reset()
	}
}

// Changed returns the variables whose value differs from their default,
// sorted by name.
func Changed() []*Cvar {
	var r []*Cvar
	for _, cv := range cvarArray {
		if cv.stringValue != cv.defaultValue {
			r = append(r, cv)
		}
	}
	sort.Slice(r, func(i, j int) bool { return r[i].name < r[j].name })
	return r
}

// List prints every variable in registration order. The prefix marks
// archived (*), serverinfo (s) and cheat (c) variables.
func List() {
	mark := func(b bool, c string) string {
		if b {
			return c
		}
		return " "
	}
	for _, v := range cvarArray {
		conlog.Printf("%s%s%s %s \"%s\"\n",
			mark(v.Archive(), "*"),
			mark(v.ServerInfo(), "s"),
			mark(v.Cheat(), "c"),
			v.Name(),
			v.String())
	}
	conlog.Printf("%v cvars\n", len(cvarArray))
}
