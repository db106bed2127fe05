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

package rdram

// Target is the memory of the machine being patched. Addresses are physical
// addresses in the machine's address space and all values are stored big
// endian.
type Target interface {
	// WriteBytes copies data into memory starting at address
	WriteBytes(address uint32, data []byte) error

	// WriteWord writes a 32 bit value at address
	WriteWord(address uint32, value uint32) error

	// InvalidateInstructionCache must be called after writing to memory that
	// the CPU may have cached as code
	InvalidateInstructionCache()
}

// Allocator provides blocks of memory in the machine's address space.
type Allocator interface {
	// Allocate returns the address of a block of at least size bytes
	Allocate(size uint32) (uint32, error)
}

// RangeError is returned when an access or allocation falls outside of
// memory.
const RangeError = "rdram: %v"
