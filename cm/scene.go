// SPDX-License-Identifier: GPL-2.0-or-later

package cm

import (
	"os"

	"etmove/math/vec"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type brushDef struct {
	Mins     [3]float32 `yaml:"mins"`
	Maxs     [3]float32 `yaml:"maxs"`
	Contents []string   `yaml:"contents"`
	Surface  []string   `yaml:"surface"`
	Entity   *int       `yaml:"entity"`
}

// Spawn is the initial placement of the simulated player.
type Spawn struct {
	Origin vec.Vec3 `yaml:"origin"`
	Angles vec.Vec3 `yaml:"angles"`
}

type sceneDef struct {
	Spawn   Spawn      `yaml:"spawn"`
	Brushes []brushDef `yaml:"brushes"`
}

// Scene is a loaded world together with its spawn point.
type Scene struct {
	World *World
	Spawn Spawn
}

func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read scene %s", path)
	}
	s, err := ParseScene(data)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", path)
	}
	return s, nil
}

func ParseScene(data []byte) (*Scene, error) {
	var def sceneDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errors.Wrap(err, "could not parse scene")
	}
	brushes := make([]Brush, 0, len(def.Brushes))
	for i, bd := range def.Brushes {
		b, err := bd.brush()
		if err != nil {
			return nil, errors.Wrapf(err, "brush %d", i)
		}
		brushes = append(brushes, b)
	}
	return &Scene{
		World: NewWorld(brushes...),
		Spawn: def.Spawn,
	}, nil
}

func (bd *brushDef) brush() (Brush, error) {
	for i := 0; i < 3; i++ {
		if bd.Mins[i] >= bd.Maxs[i] {
			return Brush{}, errors.Errorf("empty volume on axis %d: %v >= %v", i, bd.Mins[i], bd.Maxs[i])
		}
	}
	b := Brush{
		Box:      cube.Box(bd.Mins[0], bd.Mins[1], bd.Mins[2], bd.Maxs[0], bd.Maxs[1], bd.Maxs[2]),
		Contents: ContentsSolid,
		Entity:   EntityNumWorld,
	}
	if len(bd.Contents) != 0 {
		b.Contents = 0
		for _, n := range bd.Contents {
			c, ok := contentNames[n]
			if !ok {
				return Brush{}, errors.Errorf("unknown contents %q", n)
			}
			b.Contents |= c
		}
	}
	for _, n := range bd.Surface {
		f, ok := surfaceNames[n]
		if !ok {
			return Brush{}, errors.Errorf("unknown surface %q", n)
		}
		b.Surface |= f
	}
	if bd.Entity != nil {
		if *bd.Entity < 0 || *bd.Entity >= MaxGEntities {
			return Brush{}, errors.Errorf("entity %d out of range", *bd.Entity)
		}
		b.Entity = *bd.Entity
	}
	return b, nil
}
