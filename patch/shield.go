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

package patch

import (
	"fmt"

	"github.com/jetsetilly/nhshield/curated"
	"github.com/jetsetilly/nhshield/displaylist"
	"github.com/jetsetilly/nhshield/layout"
	"github.com/jetsetilly/nhshield/logger"
	"github.com/jetsetilly/nhshield/rdram"
	"github.com/jetsetilly/nhshield/schedule"
	"github.com/jetsetilly/nhshield/settings"
	"github.com/jetsetilly/nhshield/transform"
)

// AllocationFailure is returned by HeapReady() when the patch block cannot be
// allocated. Nothing is written to memory in this case.
const AllocationFailure = "patch: allocation failed: %v"

// Shield is the patch context. It owns the layout of the patch block, the
// transform descriptors and the shield mode.
type Shield struct {
	target rdram.Target
	log    logger.Quiet

	plan  *layout.Plan
	reloc *layout.Relocated

	// Hand is the transform of the child's shield when it is held by the
	// adult. Back is the transform of the rescaled adult shield, which is
	// used in every position
	Hand *transform.Descriptor
	Back *transform.Descriptor

	mode settings.Mode

	// address of the adult model's shield display list. only valid once
	// ModelChanged() has been called
	adultShield      uint32
	adultShieldKnown bool

	// SaveLoaded() has been called at least once
	live bool

	queue schedule.Queue

	// descriptor hooks do not push requests while suspended
	suspended bool
}

// NewShield is the preferred method of initialisation for the Shield type.
// The layout of the patch block is measured but memory is not touched until
// the heap is ready.
func NewShield(target rdram.Target) (*Shield, error) {
	plan, err := NewPlan()
	if err != nil {
		return nil, err
	}

	s := &Shield{
		target: target,
		plan:   plan,
		Hand:   transform.NewDescriptor(transform.HandDefault),
		Back:   transform.NewDescriptor(transform.BackDefault),
		mode:   settings.Child,
	}

	s.Hand.SetHook(func() error {
		if !s.suspended {
			s.queue.Push(schedule.HandMatrix)
		}
		return nil
	})
	s.Back.SetHook(func() error {
		if !s.suspended {
			s.queue.Push(schedule.ScaleMatrix)
		}
		return nil
	})

	return s, nil
}

// Silence log output from the Shield.
func (s *Shield) Silence(silent bool) {
	s.log.Silent = silent
}

// Size returns the number of bytes required by the patch block.
func (s *Shield) Size() uint32 {
	return s.plan.Size()
}

// Plan returns the layout of the patch block with offsets relative to the
// start of the block.
func (s *Shield) Plan() *layout.Plan {
	return s.plan
}

// Relocated returns the layout of the patch block with absolute addresses.
// Returns nil if HeapReady() has not succeeded.
func (s *Shield) Relocated() *layout.Relocated {
	return s.reloc
}

// Mode returns the current shield mode.
func (s *Shield) Mode() settings.Mode {
	return s.mode
}

// HeapReady allocates the patch block and fixes the address of every region
// in it. It can only succeed once.
func (s *Shield) HeapReady(alloc rdram.Allocator) error {
	if s.reloc != nil {
		return curated.Errorf(layout.MisuseError, "patch block has already been allocated")
	}

	base, err := alloc.Allocate(s.plan.Size())
	if err != nil {
		return curated.Errorf(AllocationFailure, err)
	}

	reloc, err := s.plan.Relocate(base)
	if err != nil {
		return curated.Errorf(AllocationFailure, err)
	}
	s.reloc = reloc

	logger.Logf(&s.log, "patch", "allocated %d bytes at %08x", s.plan.Size(), base)

	return nil
}

// address returns the absolute address of the named region.
func (s *Shield) address(name string) (uint32, error) {
	if s.reloc == nil {
		return 0, curated.Errorf(layout.MisuseError, fmt.Sprintf("cannot write %s before the patch block is allocated", name))
	}
	a, ok := s.reloc.Address(name)
	if !ok {
		return 0, curated.Errorf(layout.MisuseError, fmt.Sprintf("no such region: %s", name))
	}
	return a, nil
}

func (s *Shield) writeMatrix(name string, v transform.Values) error {
	a, err := s.address(name)
	if err != nil {
		return err
	}
	m := v.Pack()
	return s.target.WriteBytes(a, m[:])
}

// UpdateHandMatrix writes the current value of the Hand descriptor.
func (s *Shield) UpdateHandMatrix() error {
	return s.writeMatrix(RegionHandMatrix, s.Hand.Snapshot())
}

// UpdateScaleMatrix writes the current value of the Back descriptor.
func (s *Shield) UpdateScaleMatrix() error {
	return s.writeMatrix(RegionScaleMatrix, s.Back.Snapshot())
}

// UpdateAdultShield writes the adult shield slot. The slot branches to the
// adult model's shield if it is known, otherwise the slot ends the display
// list and nothing is drawn.
func (s *Shield) UpdateAdultShield() error {
	a, err := s.address(RegionAdultShield)
	if err != nil {
		return err
	}

	b := displaylist.NewBuilder()
	if !s.adultShieldKnown {
		b.EndDisplayList()
	} else {
		b.BranchList(s.adultShield)
	}

	return s.target.WriteBytes(a, b.Bytes())
}

// ModelChanged should be called when the adult player model has been
// replaced. The address is the base of the new adult player object.
func (s *Shield) ModelChanged(adultModel uint32) error {
	s.adultShield = adultModel + AdultHylianShieldInHand
	s.adultShieldKnown = true
	logger.Logf(&s.log, "patch", "adult shield at %08x", s.adultShield)
	return s.UpdateAdultShield()
}

// SaveLoaded writes the entire patch block and equips the current mode.
func (s *Shield) SaveLoaded() error {
	if err := s.UpdateHandMatrix(); err != nil {
		return err
	}
	if err := s.UpdateScaleMatrix(); err != nil {
		return err
	}
	if err := s.UpdateAdultShield(); err != nil {
		return err
	}

	for _, n := range []string{RegionRescaled, RegionChildHand, RegionAdultHand, RegionAdultBack} {
		a, err := s.address(n)
		if err != nil {
			return err
		}
		b, err := s.reloc.Materialize(n)
		if err != nil {
			return err
		}
		if err := s.target.WriteBytes(a, b); err != nil {
			return err
		}
	}

	s.live = true

	switch s.mode {
	case settings.Adult:
		return s.EquipAdult()
	default:
		return s.EquipChild()
	}
}

// Equip points the shield code pointers at the specified display lists and
// invalidates the instruction cache.
func (s *Shield) Equip(hand uint32, back uint32, biggoron uint32) error {
	for _, w := range []struct {
		ptr uint32
		val uint32
	}{
		{HandHi, hand}, {HandLOD, hand},
		{BackHi, back}, {BackLOD, back},
		{BiggoronBackHi, biggoron}, {BiggoronBackLOD, biggoron},
	} {
		if err := s.target.WriteWord(w.ptr, w.val); err != nil {
			return err
		}
	}
	s.target.InvalidateInstructionCache()
	return nil
}

// EquipChild draws the child's shield in the adult's hand. The child's shield
// is drawn normally on the back.
func (s *Shield) EquipChild() error {
	hand, err := s.address(RegionChildHand)
	if err != nil {
		return err
	}
	if err := s.Equip(hand, seg6(ChildHylianShieldOnBack), seg6(ChildHylianShieldSheath)); err != nil {
		return err
	}
	s.mode = settings.Child
	logger.Log(&s.log, "patch", "equipped child shield")
	return nil
}

// EquipAdult draws the rescaled adult shield in every position.
func (s *Shield) EquipAdult() error {
	hand, err := s.address(RegionAdultHand)
	if err != nil {
		return err
	}
	back, err := s.address(RegionAdultBack)
	if err != nil {
		return err
	}
	if err := s.Equip(hand, back, back); err != nil {
		return err
	}
	s.mode = settings.Adult
	logger.Log(&s.log, "patch", "equipped adult shield")
	return nil
}

// ResetDefaults restores the default transforms and mode. The matrices are
// rewritten if the patch block has been written. The equipped shield does
// not change until the next save is loaded.
func (s *Shield) ResetDefaults() error {
	s.suspended = true
	defer func() { s.suspended = false }()

	if err := s.Hand.Reset(); err != nil {
		return err
	}
	if err := s.Back.Reset(); err != nil {
		return err
	}
	s.mode = settings.Child

	logger.Log(&s.log, "patch", "settings reset to defaults")

	return s.rewriteMatrices()
}

func (s *Shield) rewriteMatrices() error {
	if !s.live {
		return nil
	}
	if err := s.UpdateHandMatrix(); err != nil {
		return err
	}
	return s.UpdateScaleMatrix()
}

// Settings returns the current state as a settings document.
func (s *Shield) Settings() settings.Document {
	return settings.Document{
		Mode:       s.mode,
		HandMatrix: s.Hand.Snapshot(),
		BackMatrix: s.Back.Snapshot(),
	}
}

// ApplySettings sets the transforms and mode from a settings document. If
// the patch block has been written the matrices are rewritten and the mode is
// equipped.
func (s *Shield) ApplySettings(doc settings.Document) error {
	if !doc.Mode.Valid() {
		return fmt.Errorf("patch: unrecognised mode: %q", doc.Mode)
	}

	s.suspended = true
	defer func() { s.suspended = false }()

	if err := s.Hand.Load(doc.HandMatrix); err != nil {
		return err
	}
	if err := s.Back.Load(doc.BackMatrix); err != nil {
		return err
	}
	s.mode = doc.Mode

	if !s.live {
		return nil
	}

	if err := s.rewriteMatrices(); err != nil {
		return err
	}
	if s.mode == settings.Adult {
		return s.EquipAdult()
	}
	return s.EquipChild()
}
