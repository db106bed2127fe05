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

package layout

import (
	"fmt"

	"github.com/jetsetilly/nhshield/curated"
)

// Relocated is a plan with absolute addresses. It is the only way of getting
// the real address of a region.
type Relocated struct {
	base    uint32
	size    uint32
	regions []Region
	index   map[string]int
}

// Base returns the address of the first region.
func (r *Relocated) Base() uint32 {
	return r.base
}

// Size returns the number of bytes occupied by all regions.
func (r *Relocated) Size() uint32 {
	return r.size
}

// Address returns the absolute address of the named region.
func (r *Relocated) Address(name string) (uint32, bool) {
	if i, ok := r.index[name]; ok {
		return r.regions[i].Address, true
	}
	return 0, false
}

// Regions returns a copy of the regions, in placement order.
func (r *Relocated) Regions() []Region {
	c := make([]Region, len(r.regions))
	copy(c, r.regions)
	return c
}

// Materialize builds the display list for the named region using absolute
// addresses. A MisuseError is returned if the region is not a display list,
// if the recipe asks for the address of a region that does not exist or if
// the list is not the size that was measured.
func (r *Relocated) Materialize(name string) ([]byte, error) {
	i, ok := r.index[name]
	if !ok {
		return nil, curated.Errorf(MisuseError, fmt.Sprintf("no such region: %s", name))
	}

	reg := r.regions[i]
	if !reg.IsList() {
		return nil, curated.Errorf(MisuseError, fmt.Sprintf("region is not a display list: %s", name))
	}

	var unresolved string
	b := reg.build(func(n string) uint32 {
		a, ok := r.Address(n)
		if !ok && unresolved == "" {
			unresolved = n
		}
		return a
	})

	if unresolved != "" {
		return nil, curated.Errorf(MisuseError, fmt.Sprintf("%s refers to unknown region: %s", name, unresolved))
	}
	if uint32(b.Size()) != reg.Size {
		return nil, curated.Errorf(MisuseError, fmt.Sprintf("%s is %d bytes but was measured at %d bytes", name, b.Size(), reg.Size))
	}

	return b.Bytes(), nil
}
