// This file is part of nhshield.
//
// nhshield is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// nhshield is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with nhshield.  If not, see <https://www.gnu.org/licenses/>.

package displaylist

import (
	"encoding/binary"
)

// Builder accumulates display list commands. The zero value is an empty list
// ready to use.
type Builder struct {
	buf []byte
}

// NewBuilder is the preferred method of initialisation for the Builder type.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) appendWords(hi uint32, lo uint32) {
	b.buf = binary.BigEndian.AppendUint32(b.buf, hi)
	b.buf = binary.BigEndian.AppendUint32(b.buf, lo)
}

func (b *Builder) appendRecord(rec uint64) {
	b.buf = binary.BigEndian.AppendUint64(b.buf, rec)
}

// DisplayList appends a gsSPDisplayList command. The microcode runs the list
// at addr and then returns to the command after this one.
func (b *Builder) DisplayList(addr uint32) {
	b.appendWords(OpDisplayList, addr)
}

// BranchList appends a gsSPBranchList command. The microcode continues at
// addr and does not return. Commands appended after a BranchList are never
// executed.
func (b *Builder) BranchList(addr uint32) {
	b.appendWords(OpBranchList, addr)
}

// Matrix appends a gsSPMatrix command, pushing the 64 byte fixed-point matrix
// at addr onto the modelview matrix stack.
func (b *Builder) Matrix(addr uint32) {
	b.appendWords(OpMatrix, addr)
}

// PopMatrix appends a gsSPPopMatrix command for a single modelview matrix.
func (b *Builder) PopMatrix() {
	b.appendRecord(PopMatrixRecord)
}

// EndDisplayList appends a gsSPEndDisplayList command.
func (b *Builder) EndDisplayList() {
	b.appendRecord(EndDisplayListRecord)
}

// Size returns the number of bytes in the display list.
func (b *Builder) Size() int {
	return len(b.buf)
}

// Len returns the number of commands in the display list.
func (b *Builder) Len() int {
	return len(b.buf) / CommandSize
}

// Bytes returns a copy of the display list. Appending to the Builder after
// the call does not affect the returned slice.
func (b *Builder) Bytes() []byte {
	c := make([]byte, len(b.buf))
	copy(c, b.buf)
	return c
}
