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
	"fmt"

	"github.com/jetsetilly/nhshield/curated"
)

// CommandSize is the number of bytes in every display list command.
const CommandSize = 8

// First word of the commands that take an address operand.
const (
	OpDisplayList uint32 = 0xde000000
	OpBranchList  uint32 = 0xde010000
	OpMatrix      uint32 = 0xda380000
)

// Commands with no variable field.
const (
	PopMatrixRecord      uint64 = 0xd838000200000040
	EndDisplayListRecord uint64 = 0xdf00000000000000
)

// Kind identifies the type of a decoded Command.
type Kind int

// List of valid Kind values.
const (
	Unknown Kind = iota
	DisplayList
	BranchList
	Matrix
	PopMatrix
	EndDisplayList
)

func (k Kind) String() string {
	switch k {
	case DisplayList:
		return "gsSPDisplayList"
	case BranchList:
		return "gsSPBranchList"
	case Matrix:
		return "gsSPMatrix"
	case PopMatrix:
		return "gsSPPopMatrix"
	case EndDisplayList:
		return "gsSPEndDisplayList"
	}
	return "unknown"
}

// Command is a single decoded display list command.
type Command struct {
	Hi uint32
	Lo uint32
}

// Kind returns the type of the command.
func (c Command) Kind() Kind {
	switch c.Hi {
	case OpDisplayList:
		return DisplayList
	case OpBranchList:
		return BranchList
	case OpMatrix:
		return Matrix
	}

	switch uint64(c.Hi)<<32 | uint64(c.Lo) {
	case PopMatrixRecord:
		return PopMatrix
	case EndDisplayListRecord:
		return EndDisplayList
	}

	return Unknown
}

// Operand returns the address operand of the command and whether the command
// type has an address operand.
func (c Command) Operand() (uint32, bool) {
	switch c.Kind() {
	case DisplayList, BranchList, Matrix:
		return c.Lo, true
	}
	return 0, false
}

func (c Command) String() string {
	k := c.Kind()
	switch k {
	case DisplayList, BranchList, Matrix:
		return fmt.Sprintf("%s(0x%08x)", k, c.Lo)
	case PopMatrix, EndDisplayList:
		return k.String()
	}
	return fmt.Sprintf("%08x %08x", c.Hi, c.Lo)
}

// DecodeError is returned by Decode() when the data cannot be a display
// list.
const DecodeError = "displaylist: %v"

// Decode splits data into display list commands. The length of data must be
// a multiple of CommandSize. Commands of an unknown kind are not an error.
func Decode(data []byte) ([]Command, error) {
	if len(data)%CommandSize != 0 {
		return nil, curated.Errorf(DecodeError, fmt.Sprintf("length of %d bytes is not a multiple of %d", len(data), CommandSize))
	}

	cmds := make([]Command, 0, len(data)/CommandSize)
	for i := 0; i < len(data); i += CommandSize {
		cmds = append(cmds, Command{
			Hi: binary.BigEndian.Uint32(data[i:]),
			Lo: binary.BigEndian.Uint32(data[i+4:]),
		})
	}

	return cmds, nil
}
