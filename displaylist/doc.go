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

// Package displaylist builds display lists for the fixed-function graphics
// microcode. A display list is a sequence of 64 bit commands, stored big
// endian. Each command is a pair of 32 bit words: the first word holds the
// opcode in the top byte and any parameters in the remaining bytes, the
// second word is the operand, usually a segmented or physical address.
//
// Only the handful of commands needed to wrap an existing model in a matrix
// are supported:
//
//	gsSPDisplayList   DE000000 aaaaaaaa   run the list at aaaaaaaa and return
//	gsSPBranchList    DE010000 aaaaaaaa   continue at aaaaaaaa, do not return
//	gsSPMatrix        DA380000 aaaaaaaa   push the matrix at aaaaaaaa
//	gsSPPopMatrix     D8380002 00000040   pop one modelview matrix
//	gsSPEndDisplayList DF000000 00000000  end of list
//
// The last two commands have no variable field and are stored as literals.
//
// A Builder is append-only. The size of a list depends only on the commands
// appended and never on the operand values, which means a list can be
// measured with placeholder operands before the real addresses are known.
// The layout package relies on this.
package displaylist
