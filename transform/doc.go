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

// Package transform holds the user editable description of a shield
// transform: rotation about three axes in degrees, translation along three
// axes and a uniform scale.
//
// Each of the seven values is a Param. Params can be changed at any time by
// the configuration layer, and a Descriptor can be given a hook that is
// called whenever any of its Params change. The patch package uses the hook
// to queue a regeneration of the matrix in memory.
//
// The packing code never reads Params directly. It takes a Snapshot(), a
// plain Values struct, and composes the matrix from that.
package transform
