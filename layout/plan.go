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
	"github.com/jetsetilly/nhshield/displaylist"
)

// MisuseError is returned when the layout is used incorrectly: duplicate
// region names, relocating twice, or a display list that changes size
// between the measure and materialize phases.
const MisuseError = "layout: %v"

// Resolver returns the address of the named region.
type Resolver func(name string) uint32

// Slot is a fixed size region. Slots are filled with data that is not a
// display list, for example a matrix.
type Slot struct {
	Name string
	Size uint32
}

// List is a region containing a display list. Build is called once with
// placeholder addresses during planning and again with real addresses when
// the list is materialized. It must append the same commands both times.
type List struct {
	Name  string
	Build func(addr Resolver) *displaylist.Builder
}

// Region is a named, sized area of the plan. Before relocation the address is
// relative to the start of the plan.
type Region struct {
	Name    string
	Address uint32
	Size    uint32

	// nil if the region is a Slot
	build func(addr Resolver) *displaylist.Builder
}

// IsList returns true if the region contains a display list.
func (r Region) IsList() bool {
	return r.build != nil
}

// End returns the address of the first byte after the region.
func (r Region) End() uint32 {
	return r.Address + r.Size
}

func (r Region) String() string {
	return fmt.Sprintf("%-24s %08x %4d", r.Name, r.Address, r.Size)
}

// Plan is the result of the measure phase.
type Plan struct {
	regions   []Region
	index     map[string]int
	size      uint32
	relocated bool
}

// placeholder is the Resolver used during the measure phase.
func placeholder(_ string) uint32 {
	return 0
}

// NewPlan measures the slots and lists and places them one after another,
// starting at offset zero.
func NewPlan(slots []Slot, lists []List) (*Plan, error) {
	p := &Plan{
		regions: make([]Region, 0, len(slots)+len(lists)),
		index:   make(map[string]int),
	}

	add := func(r Region) error {
		if r.Name == "" {
			return curated.Errorf(MisuseError, "region has no name")
		}
		if _, ok := p.index[r.Name]; ok {
			return curated.Errorf(MisuseError, fmt.Sprintf("duplicate region name: %s", r.Name))
		}
		r.Address = p.size
		p.index[r.Name] = len(p.regions)
		p.regions = append(p.regions, r)
		p.size += r.Size
		return nil
	}

	for _, s := range slots {
		if err := add(Region{Name: s.Name, Size: s.Size}); err != nil {
			return nil, err
		}
	}

	for _, l := range lists {
		if l.Build == nil {
			return nil, curated.Errorf(MisuseError, fmt.Sprintf("no recipe for list: %s", l.Name))
		}
		b := l.Build(placeholder)
		if err := add(Region{Name: l.Name, Size: uint32(b.Size()), build: l.Build}); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Size returns the number of bytes required by the plan.
func (p *Plan) Size() uint32 {
	return p.size
}

// Offset returns the offset of the named region from the start of the plan.
func (p *Plan) Offset(name string) (uint32, bool) {
	if i, ok := p.index[name]; ok {
		return p.regions[i].Address, true
	}
	return 0, false
}

// Regions returns a copy of the regions in the plan, in placement order.
func (p *Plan) Regions() []Region {
	c := make([]Region, len(p.regions))
	copy(c, p.regions)
	return c
}

// Relocated returns true if Relocate() has been called on the plan.
func (p *Plan) Relocated() bool {
	return p.relocated
}

// Relocate consumes the plan and returns the regions placed at the base
// address. The block at base must be at least Size() bytes long and base must
// be aligned to the size of a display list command.
//
// Relocating a plan a second time returns a MisuseError.
func (p *Plan) Relocate(base uint32) (*Relocated, error) {
	if p.relocated {
		return nil, curated.Errorf(MisuseError, "plan has already been relocated")
	}
	if base%displaylist.CommandSize != 0 {
		return nil, curated.Errorf(MisuseError, fmt.Sprintf("base address %08x is not aligned", base))
	}
	if uint64(base)+uint64(p.size) > 1<<32 {
		return nil, curated.Errorf(MisuseError, fmt.Sprintf("plan of %d bytes does not fit at %08x", p.size, base))
	}

	p.relocated = true

	r := &Relocated{
		base:    base,
		size:    p.size,
		regions: p.Regions(),
		index:   p.index,
	}
	for i := range r.regions {
		r.regions[i].Address += base
	}

	return r, nil
}
