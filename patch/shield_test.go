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

package patch_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/jetsetilly/nhshield/curated"
	"github.com/jetsetilly/nhshield/displaylist"
	"github.com/jetsetilly/nhshield/layout"
	"github.com/jetsetilly/nhshield/patch"
	"github.com/jetsetilly/nhshield/rdram"
	"github.com/jetsetilly/nhshield/schedule"
	"github.com/jetsetilly/nhshield/settings"
	"github.com/jetsetilly/nhshield/test"
	"github.com/jetsetilly/nhshield/transform"
)

type fixedAllocator uint32

func (a fixedAllocator) Allocate(_ uint32) (uint32, error) {
	return uint32(a), nil
}

type failingAllocator struct{}

func (failingAllocator) Allocate(_ uint32) (uint32, error) {
	return 0, errors.New("out of memory")
}

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	test.DemandSuccess(t, err)
	return b
}

func expectMemory(t *testing.T, img *rdram.Image, address uint32, expected []byte, tags ...any) {
	t.Helper()
	b, err := img.ReadBytes(address, len(expected))
	test.DemandSuccess(t, err, tags...)
	if !bytes.Equal(b, expected) {
		t.Errorf("%v: memory at %08x is %x, expected %x", tags, address, b, expected)
	}
}

func expectWord(t *testing.T, img *rdram.Image, address uint32, expected uint32) {
	t.Helper()
	w, err := img.ReadWord(address)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, w, expected, address)
}

func newShield(t *testing.T) (*patch.Shield, *rdram.Image) {
	t.Helper()
	img := rdram.NewImage()
	s, err := patch.NewShield(img)
	test.DemandSuccess(t, err)
	s.Silence(true)
	return s, img
}

func TestPlan(t *testing.T) {
	s, _ := newShield(t)
	test.ExpectEquality(t, s.Size(), uint32(0xf8))

	for _, r := range []struct {
		name   string
		offset uint32
	}{
		{patch.RegionHandMatrix, 0x00},
		{patch.RegionScaleMatrix, 0x40},
		{patch.RegionAdultShield, 0x80},
		{patch.RegionRescaled, 0x88},
		{patch.RegionChildHand, 0xa8},
		{patch.RegionAdultHand, 0xc8},
		{patch.RegionAdultBack, 0xd8},
	} {
		o, ok := s.Plan().Offset(r.name)
		test.ExpectEquality(t, ok, true, r.name)
		test.ExpectEquality(t, o, r.offset, r.name)
	}
}

func TestPlanDeterminism(t *testing.T) {
	a, err := patch.NewPlan()
	test.DemandSuccess(t, err)
	b, err := patch.NewPlan()
	test.DemandSuccess(t, err)
	s, _ := newShield(t)

	test.ExpectEquality(t, a.Size(), b.Size())
	test.ExpectEquality(t, a.Size(), s.Plan().Size())

	ar := a.Regions()
	br := b.Regions()
	sr := s.Plan().Regions()
	test.DemandEquality(t, len(ar), len(br))
	test.DemandEquality(t, len(ar), len(sr))
	for i := range ar {
		test.ExpectEquality(t, ar[i].Name, br[i].Name, i)
		test.ExpectEquality(t, ar[i].Address, br[i].Address, ar[i].Name)
		test.ExpectEquality(t, ar[i].Size, br[i].Size, ar[i].Name)
		test.ExpectEquality(t, ar[i].Name, sr[i].Name, i)
		test.ExpectEquality(t, ar[i].Address, sr[i].Address, ar[i].Name)
		test.ExpectEquality(t, ar[i].Size, sr[i].Size, ar[i].Name)
	}
}

func TestRelocation(t *testing.T) {
	s, _ := newShield(t)
	test.ExpectEquality(t, s.Relocated() == nil, true)

	test.DemandSuccess(t, s.HeapReady(fixedAllocator(0x1000)))
	a, ok := s.Relocated().Address(patch.RegionRescaled)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, a, uint32(0x1088))

	// relocation happens once only
	err := s.HeapReady(fixedAllocator(0x2000))
	test.ExpectEquality(t, curated.Is(err, layout.MisuseError), true)
	a, _ = s.Relocated().Address(patch.RegionRescaled)
	test.ExpectEquality(t, a, uint32(0x1088))
}

func TestAllocationFailure(t *testing.T) {
	s, img := newShield(t)

	err := s.HeapReady(failingAllocator{})
	test.ExpectEquality(t, curated.Is(err, patch.AllocationFailure), true)

	// allocator returned an address that can't hold display lists
	err = s.HeapReady(fixedAllocator(0x1004))
	test.ExpectEquality(t, curated.Is(err, patch.AllocationFailure), true)
	test.ExpectEquality(t, curated.Has(err, layout.MisuseError), true)

	test.ExpectEquality(t, s.Relocated() == nil, true)
	test.ExpectEquality(t, len(img.Journal.Entries), 0)

	// no writes are possible
	err = s.UpdateHandMatrix()
	test.ExpectEquality(t, curated.Is(err, layout.MisuseError), true)
	err = s.EquipChild()
	test.ExpectEquality(t, curated.Is(err, layout.MisuseError), true)
	err = s.SaveLoaded()
	test.ExpectEquality(t, curated.Is(err, layout.MisuseError), true)
	test.ExpectEquality(t, len(img.Journal.Entries), 0)
	test.ExpectEquality(t, img.Invalidations(), 0)
}

func TestSaveLoaded(t *testing.T) {
	s, img := newShield(t)
	test.DemandSuccess(t, s.HeapReady(img))
	base := s.Relocated().Base()
	test.ExpectEquality(t, base, uint32(rdram.DefaultHeapStart))

	test.DemandSuccess(t, s.SaveLoaded())

	hand := transform.HandDefault.Pack()
	expectMemory(t, img, base, hand[:], "hand matrix")
	scale := transform.BackDefault.Pack()
	expectMemory(t, img, base+0x40, scale[:], "scale matrix")

	// adult model is unknown
	expectMemory(t, img, base+0x80, unhex(t, "df000000 00000000"), "adult shield")

	expectMemory(t, img, base+0x88, unhex(t,
		"da380000 80400040 de000000 80400080 d8380002 00000040 df000000 00000000"),
		"rescaled shield")
	expectMemory(t, img, base+0xa8, unhex(t,
		"da380000 80400000 de000000 060051b8 d8380002 00000040 de010000 06005170"),
		"child shield in hand")
	expectMemory(t, img, base+0xc8, unhex(t,
		"de000000 80400088 de010000 06005170"),
		"adult shield in hand")
	expectMemory(t, img, base+0xd8, unhex(t,
		"da380000 06005050 de000000 80400088 d8380002 00000040 de010000 06005248"),
		"adult shield on back")

	// startup mode is child
	test.ExpectEquality(t, s.Mode(), settings.Child)
	expectWord(t, img, patch.HandHi, base+0xa8)
	expectWord(t, img, patch.HandLOD, base+0xa8)
	expectWord(t, img, patch.BackHi, 0x06005290)
	expectWord(t, img, patch.BackLOD, 0x06005290)
	expectWord(t, img, patch.BiggoronBackHi, 0x060052c0)
	expectWord(t, img, patch.BiggoronBackLOD, 0x060052c0)
	test.ExpectEquality(t, img.Invalidations(), 1)

	// lists written to memory decode to the expected commands
	b, _ := img.ReadBytes(base+0xa8, 32)
	cmds, err := displaylist.Decode(b)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(cmds), 4)
	test.ExpectEquality(t, cmds[0].Kind(), displaylist.Matrix)
	test.ExpectEquality(t, cmds[1].Kind(), displaylist.DisplayList)
	test.ExpectEquality(t, cmds[2].Kind(), displaylist.PopMatrix)
	test.ExpectEquality(t, cmds[3].Kind(), displaylist.BranchList)
}

func TestEquip(t *testing.T) {
	s, img := newShield(t)
	test.DemandSuccess(t, s.HeapReady(img))
	test.DemandSuccess(t, s.SaveLoaded())
	base := s.Relocated().Base()

	test.DemandSuccess(t, s.EquipAdult())
	test.ExpectEquality(t, s.Mode(), settings.Adult)
	expectWord(t, img, patch.HandHi, base+0xc8)
	expectWord(t, img, patch.HandLOD, base+0xc8)
	for _, p := range []uint32{patch.BackHi, patch.BackLOD, patch.BiggoronBackHi, patch.BiggoronBackLOD} {
		expectWord(t, img, p, base+0xd8)
	}
	test.ExpectEquality(t, img.Invalidations(), 2)

	test.DemandSuccess(t, s.EquipChild())
	test.ExpectEquality(t, s.Mode(), settings.Child)
	expectWord(t, img, patch.HandHi, base+0xa8)
	expectWord(t, img, patch.BackLOD, 0x06005290)
	test.ExpectEquality(t, img.Invalidations(), 3)

	// the six pointers are written before the cache is invalidated
	e := img.Journal.Entries
	test.ExpectEquality(t, e[len(e)-1].Op, rdram.OpInvalidate)
	for i, p := range patch.CodePointers {
		w := e[len(e)-7+i]
		test.ExpectEquality(t, w.Op, rdram.OpWord)
		test.ExpectEquality(t, w.Address, p)
	}
}

func TestModelChanged(t *testing.T) {
	s, img := newShield(t)
	test.DemandSuccess(t, s.HeapReady(img))
	test.DemandSuccess(t, s.SaveLoaded())
	base := s.Relocated().Base()

	test.DemandSuccess(t, s.ModelChanged(0x80600000))
	expectMemory(t, img, base+0x80, unhex(t, "de010000 80605160"), "adult shield")

	// rewriting the slot doesn't change it
	test.DemandSuccess(t, s.UpdateAdultShield())
	expectMemory(t, img, base+0x80, unhex(t, "de010000 80605160"), "adult shield")

	// model is remembered when the save is reloaded
	test.DemandSuccess(t, s.SaveLoaded())
	expectMemory(t, img, base+0x80, unhex(t, "de010000 80605160"), "adult shield")
}

func TestTick(t *testing.T) {
	s, img := newShield(t)
	test.DemandSuccess(t, s.HeapReady(img))

	// edits before the save is loaded are held
	test.DemandSuccess(t, s.Hand.RotZ.Set(90))
	test.DemandSuccess(t, s.Tick())
	test.ExpectEquality(t, len(s.Pending()), 1)
	test.ExpectEquality(t, len(img.Journal.Entries), 0)

	test.DemandSuccess(t, s.SaveLoaded())
	base := s.Relocated().Base()
	hand := s.Hand.Snapshot().Pack()
	expectMemory(t, img, base, hand[:], "hand matrix")
	test.DemandSuccess(t, s.Tick())
	test.ExpectEquality(t, len(s.Pending()), 0)

	// a burst of edits results in one write
	img.Journal.Clear()
	test.DemandSuccess(t, s.Back.SetString("s::0.5; r_x::10; t_z::-4"))
	test.DemandSuccess(t, s.Back.Scale.Set(0.25))
	test.ExpectEquality(t, len(s.Pending()), 1)
	test.DemandSuccess(t, s.Tick())
	test.DemandEquality(t, len(img.Journal.Entries), 1)
	test.ExpectEquality(t, img.Journal.Entries[0].Address, base+0x40)
	scale := transform.Values{RotX: 10, TransZ: -4, Scale: 0.25}.Pack()
	expectMemory(t, img, base+0x40, scale[:], "scale matrix")

	// mode changes requested by the user interface
	s.Request(schedule.EquipAdult)
	test.ExpectEquality(t, s.Mode(), settings.Child)
	test.DemandSuccess(t, s.Tick())
	test.ExpectEquality(t, s.Mode(), settings.Adult)
	expectWord(t, img, patch.HandHi, base+0xc8)
}

func TestResetDefaults(t *testing.T) {
	s, img := newShield(t)
	test.DemandSuccess(t, s.HeapReady(img))
	test.DemandSuccess(t, s.ApplySettings(settings.Document{
		Mode:       settings.Adult,
		HandMatrix: transform.Values{Scale: 2},
		BackMatrix: transform.Values{Scale: 3},
	}))
	test.DemandSuccess(t, s.SaveLoaded())
	test.ExpectEquality(t, s.Mode(), settings.Adult)
	base := s.Relocated().Base()

	s.Request(schedule.ResetDefaults)
	test.DemandSuccess(t, s.Tick())

	test.ExpectEquality(t, s.Hand.Snapshot(), transform.HandDefault)
	test.ExpectEquality(t, s.Back.Snapshot(), transform.BackDefault)
	test.ExpectEquality(t, s.Mode(), settings.Child)

	// matrices are rewritten immediately. nothing else is requested
	hand := transform.HandDefault.Pack()
	expectMemory(t, img, base, hand[:], "hand matrix")
	test.ExpectEquality(t, len(s.Pending()), 0)

	// the adult shield remains equipped until the next save is loaded
	expectWord(t, img, patch.HandHi, base+0xc8)
}

func TestSettings(t *testing.T) {
	s, img := newShield(t)
	test.ExpectEquality(t, s.Settings(), settings.Default())

	doc := settings.Document{
		Mode:       settings.Adult,
		HandMatrix: transform.Values{RotZ: 45, Scale: 1},
		BackMatrix: transform.Values{Scale: 0.5},
	}

	// nothing is written before the save is loaded
	test.DemandSuccess(t, s.ApplySettings(doc))
	test.ExpectEquality(t, s.Settings(), doc)
	test.ExpectEquality(t, len(s.Pending()), 0)
	test.ExpectEquality(t, len(img.Journal.Entries), 0)

	test.DemandSuccess(t, s.HeapReady(img))
	test.DemandSuccess(t, s.SaveLoaded())
	base := s.Relocated().Base()
	expectWord(t, img, patch.HandHi, base+0xc8)

	// applying settings to a running game equips the mode
	doc.Mode = settings.Child
	test.DemandSuccess(t, s.ApplySettings(doc))
	expectWord(t, img, patch.HandHi, base+0xa8)

	test.ExpectFailure(t, s.ApplySettings(settings.Document{Mode: "teen"}))
	test.ExpectEquality(t, s.Settings(), doc)
}

func TestJournalReplay(t *testing.T) {
	s, img := newShield(t)
	test.DemandSuccess(t, s.HeapReady(img))
	test.DemandSuccess(t, s.SaveLoaded())
	test.DemandSuccess(t, s.ModelChanged(0x80600000))
	test.DemandSuccess(t, s.Hand.TransX.Set(100))
	test.DemandSuccess(t, s.Tick())
	test.DemandSuccess(t, s.EquipAdult())

	var buf bytes.Buffer
	test.DemandSuccess(t, img.Journal.Encode(&buf))
	j, err := rdram.DecodeJournal(&buf)
	test.DemandSuccess(t, err)

	replay := rdram.NewImage()
	test.DemandSuccess(t, j.Replay(replay))
	test.ExpectEquality(t, replay.Invalidations(), img.Invalidations())

	base := s.Relocated().Base()
	orig, _ := img.ReadBytes(base, int(s.Size()))
	expectMemory(t, replay, base, orig, "patch block")
	for _, p := range patch.CodePointers {
		w, _ := img.ReadWord(p)
		expectWord(t, replay, p, w)
	}
}
