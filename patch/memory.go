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

// Segment6 is the base address of the player object segment.
const Segment6 = 0x06000000

// Code pointers in the player drawing code. Each holds the address of the
// display list drawn for the shield in that position. The Biggoron pointers
// are used for the shield on the back when the two handed sword is equipped.
const (
	HandHi          = 0x800f77dc
	HandLOD         = 0x800f77e4
	BackHi          = 0x800f781c
	BackLOD         = 0x800f7824
	BiggoronBackHi  = 0x800f787c
	BiggoronBackLOD = 0x800f7884
)

// CodePointers lists every code pointer written by Equip().
var CodePointers = [...]uint32{HandHi, HandLOD, BackHi, BackLOD, BiggoronBackHi, BiggoronBackLOD}

// Offsets of display lists and matrices in the child player object.
const (
	ChildHylianShieldOnBack = 0x5290
	ChildSwordSheathed      = 0x5248
	ChildRightFist          = 0x5170
	ChildHylianShield       = 0x51b8
	ChildShieldMatrix       = 0x5050
	ChildHylianShieldSheath = 0x52c0
)

// AdultHylianShieldInHand is the offset of the shield display list in the
// adult player object.
const AdultHylianShieldInHand = 0x5160

// seg6 returns the segmented address of an offset in the player object.
func seg6(offset uint32) uint32 {
	return Segment6 + offset
}
