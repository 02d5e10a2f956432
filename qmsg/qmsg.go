// SPDX-License-Identifier: GPL-2.0-or-later

package qmsg

import (
	"bytes"
	"encoding/binary"

	"etmove/math/vec"
)

// Writer builds a little endian network message.
type Writer struct {
	bytes.Buffer
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) WriteInt8(c int8) error {
	return w.WriteByte(byte(c))
}

func (w *Writer) WriteShort(c uint16) error {
	return binary.Write(w, binary.LittleEndian, c)
}

func (w *Writer) WriteLong(c uint32) error {
	return binary.Write(w, binary.LittleEndian, c)
}

// WriteInt is WriteLong for signed values.
func (w *Writer) WriteInt(c int32) error {
	return binary.Write(w, binary.LittleEndian, c)
}

// WriteFloat writes the raw IEEE bits so the value survives unchanged.
func (w *Writer) WriteFloat(f float32) error {
	return binary.Write(w, binary.LittleEndian, f)
}

func (w *Writer) WriteVec3(v vec.Vec3) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func (w *Writer) WriteBool(b bool) error {
	if b {
		return w.WriteByte(1)
	}
	return w.WriteByte(0)
}

// WriteString writes s followed by a terminating zero.
func (w *Writer) WriteString(s string) (int, error) {
	n, err := w.Buffer.WriteString(s)
	if err != nil {
		return n, err
	}
	return n + 1, w.WriteByte(0)
}
