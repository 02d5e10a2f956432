// SPDX-License-Identifier: GPL-2.0-or-later

package qmsg

import (
	"bytes"
	"encoding/binary"
	"strings"

	"etmove/math/vec"
)

// Reader is the counterpart of Writer.
type Reader struct {
	r *bytes.Reader
}

func NewReader(data []byte) *Reader {
	return &Reader{bytes.NewReader(data)}
}

func (q *Reader) ReadInt8() (int8, error) {
	var r int8
	err := binary.Read(q.r, binary.LittleEndian, &r)
	return r, err
}

func (q *Reader) ReadByte() (byte, error) {
	var r byte
	err := binary.Read(q.r, binary.LittleEndian, &r)
	return r, err
}

func (q *Reader) ReadInt16() (int16, error) {
	var r int16
	err := binary.Read(q.r, binary.LittleEndian, &r)
	return r, err
}

func (q *Reader) ReadUint16() (uint16, error) {
	var r uint16
	err := binary.Read(q.r, binary.LittleEndian, &r)
	return r, err
}

func (q *Reader) ReadInt32() (int32, error) {
	var r int32
	err := binary.Read(q.r, binary.LittleEndian, &r)
	return r, err
}

func (q *Reader) ReadUint32() (uint32, error) {
	var r uint32
	err := binary.Read(q.r, binary.LittleEndian, &r)
	return r, err
}

func (q *Reader) ReadFloat32() (float32, error) {
	var r float32
	err := binary.Read(q.r, binary.LittleEndian, &r)
	return r, err
}

func (q *Reader) ReadVec3() (vec.Vec3, error) {
	var r vec.Vec3
	err := binary.Read(q.r, binary.LittleEndian, &r)
	return r, err
}

func (q *Reader) ReadBool() (bool, error) {
	b, err := q.ReadByte()
	return b != 0, err
}

func (q *Reader) ReadString() (string, error) {
	sb := strings.Builder{}
	for {
		b, err := q.ReadByte()
		if err != nil {
			return "", err
		}
		if b == 0 {
			break
		}
		sb.WriteByte(b)
	}
	return sb.String(), nil
}

// Len returns the number of bytes of the unread portion of the slice.
func (q *Reader) Len() int {
	return q.r.Len()
}
