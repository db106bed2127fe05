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
	"github.com/jetsetilly/nhshield/displaylist"
	"github.com/jetsetilly/nhshield/fixedpoint"
	"github.com/jetsetilly/nhshield/layout"
)

// Names of the regions in the patch block. The order of the regions in the
// block is the order of this list.
const (
	RegionHandMatrix  = "hand matrix"
	RegionScaleMatrix = "scale matrix"
	RegionAdultShield = "adult shield"
	RegionRescaled    = "rescaled shield"
	RegionChildHand   = "child shield in hand"
	RegionAdultHand   = "adult shield in hand"
	RegionAdultBack   = "adult shield on back"
)

var slots = []layout.Slot{
	{Name: RegionHandMatrix, Size: fixedpoint.MatrixSize},
	{Name: RegionScaleMatrix, Size: fixedpoint.MatrixSize},

	// the adult shield slot holds a single command. either a branch to the
	// adult model's shield or the end of the display list
	{Name: RegionAdultShield, Size: displaylist.CommandSize},
}

var lists = []layout.List{
	{
		// adult shield drawn with the scale matrix
		Name: RegionRescaled,
		Build: func(addr layout.Resolver) *displaylist.Builder {
			b := displaylist.NewBuilder()
			b.Matrix(addr(RegionScaleMatrix))
			b.DisplayList(addr(RegionAdultShield))
			b.PopMatrix()
			b.EndDisplayList()
			return b
		},
	},
	{
		// child shield drawn with the hand matrix, followed by the right fist
		Name: RegionChildHand,
		Build: func(addr layout.Resolver) *displaylist.Builder {
			b := displaylist.NewBuilder()
			b.Matrix(addr(RegionHandMatrix))
			b.DisplayList(seg6(ChildHylianShield))
			b.PopMatrix()
			b.BranchList(seg6(ChildRightFist))
			return b
		},
	},
	{
		Name: RegionAdultHand,
		Build: func(addr layout.Resolver) *displaylist.Builder {
			b := displaylist.NewBuilder()
			b.DisplayList(addr(RegionRescaled))
			b.BranchList(seg6(ChildRightFist))
			return b
		},
	},
	{
		// the rescaled shield drawn in the position of the child's shield
		// on the back, followed by the sheathed sword
		Name: RegionAdultBack,
		Build: func(addr layout.Resolver) *displaylist.Builder {
			b := displaylist.NewBuilder()
			b.Matrix(seg6(ChildShieldMatrix))
			b.DisplayList(addr(RegionRescaled))
			b.PopMatrix()
			b.BranchList(seg6(ChildSwordSheathed))
			return b
		},
	},
}

// NewPlan returns the unrelocated layout of the patch block.
func NewPlan() (*layout.Plan, error) {
	return layout.NewPlan(slots, lists)
}
