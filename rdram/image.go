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

import (
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/nhshield/curated"
)

// Default memory map used by NewImage().
const (
	DefaultOrigin    = 0x80000000
	DefaultSize      = 0x00800000
	DefaultHeapStart = 0x80400000
)

// HeapAlignment is the alignment of every address returned by
// Image.Allocate().
const HeapAlignment = 16

// Image is an in-memory implementation of Target and Allocator. The heap is a
// simple bump allocator; memory is never freed.
type Image struct {
	origin uint32
	mem    []byte

	// heap bounds are 64 bit so that a memory map ending at the top of the
	// address space does not wrap
	heapNext uint64
	heapEnd  uint64

	invalidations int

	Journal Journal
}

// NewImage creates an Image with the default memory map.
func NewImage() *Image {
	img, _ := NewImageWithMap(DefaultOrigin, DefaultSize, DefaultHeapStart)
	return img
}

// NewImageWithMap creates an Image of size bytes at origin. Allocations are
// made from heapStart to the end of memory.
func NewImageWithMap(origin uint32, size uint32, heapStart uint32) (*Image, error) {
	end := uint64(origin) + uint64(size)
	if end > 1<<32 {
		return nil, curated.Errorf(RangeError, "memory map extends beyond the address space")
	}
	if heapStart < origin || uint64(heapStart) > end {
		return nil, curated.Errorf(RangeError, fmt.Sprintf("heap start %08x is outside of memory", heapStart))
	}

	return &Image{
		origin:   origin,
		mem:      make([]byte, size),
		heapNext: alignUp(uint64(heapStart)),
		heapEnd:  end,
	}, nil
}

func alignUp(a uint64) uint64 {
	return (a + HeapAlignment - 1) &^ (HeapAlignment - 1)
}

// index returns the index into the mem slice for an access of n bytes.
func (img *Image) index(address uint32, n int) (int, error) {
	if address < img.origin || uint64(address)+uint64(n) > uint64(img.origin)+uint64(len(img.mem)) {
		return 0, curated.Errorf(RangeError, fmt.Sprintf("access of %d bytes at %08x is outside of memory", n, address))
	}
	return int(address - img.origin), nil
}

// WriteBytes implements the Target interface.
func (img *Image) WriteBytes(address uint32, data []byte) error {
	idx, err := img.index(address, len(data))
	if err != nil {
		return err
	}
	copy(img.mem[idx:], data)
	img.Journal.addBytes(address, data)
	return nil
}

// WriteWord implements the Target interface.
func (img *Image) WriteWord(address uint32, value uint32) error {
	idx, err := img.index(address, 4)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(img.mem[idx:], value)
	img.Journal.addWord(address, value)
	return nil
}

// InvalidateInstructionCache implements the Target interface.
func (img *Image) InvalidateInstructionCache() {
	img.invalidations++
	img.Journal.addInvalidate()
}

// Invalidations returns the number of times the instruction cache has been
// invalidated.
func (img *Image) Invalidations() int {
	return img.invalidations
}

// Allocate implements the Allocator interface.
func (img *Image) Allocate(size uint32) (uint32, error) {
	if size == 0 {
		return 0, curated.Errorf(RangeError, "cannot allocate zero bytes")
	}
	if img.heapNext+uint64(size) > img.heapEnd {
		return 0, curated.Errorf(RangeError, fmt.Sprintf("heap exhausted: cannot allocate %d bytes", size))
	}

	addr := img.heapNext
	img.heapNext = alignUp(addr + uint64(size))
	return uint32(addr), nil
}

// ReadBytes returns a copy of n bytes of memory starting at address.
func (img *Image) ReadBytes(address uint32, n int) ([]byte, error) {
	idx, err := img.index(address, n)
	if err != nil {
		return nil, err
	}
	c := make([]byte, n)
	copy(c, img.mem[idx:])
	return c, nil
}

// ReadWord returns the 32 bit value at address.
func (img *Image) ReadWord(address uint32) (uint32, error) {
	idx, err := img.index(address, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(img.mem[idx:]), nil
}
