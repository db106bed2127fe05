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

// Package layout plans the placement of generated data in a single block of
// target memory before the address of that block is known.
//
// Planning is a two phase protocol. In the measure phase, NewPlan() builds
// every display list with a placeholder address of zero for every operand
// and records the size of the result. Regions are placed one after another,
// fixed size slots first and then the display lists, in the order they are
// declared. The total size of the plan is the size of the block that must be
// allocated.
//
// Once the block has been allocated, Relocate() consumes the plan and returns
// a Relocated value, in which every region has an absolute address: the base
// address of the block plus the region's offset. A plan can be relocated only
// once.
//
// In the materialize phase, Relocated.Materialize() builds a display list
// again, this time with the absolute addresses of the regions it refers to.
// The result must be exactly the size that was measured. Display list sizes
// never depend on operand values so this holds for any well formed recipe; a
// mismatch is reported as a MisuseError and nothing should be written.
package layout
