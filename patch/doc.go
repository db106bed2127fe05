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

// Package patch replaces the shield drawn by the game. When the child's
// hylian shield is equipped by the adult, either the child's shield is drawn
// in the adult's hand or the adult's shield is drawn at a reduced scale.
//
// The patch consists of two transform matrices and a small number of display
// lists, all of which are written into a single block of memory allocated
// from the host's heap. The display list pointers used by the game's player
// drawing code are then pointed at the patch.
//
// A Shield is created with NewShield() when the host starts. The size of the
// block is known at this point and can be found with Size(). The host must
// then call the following functions as events occur:
//
//	HeapReady()     when the host heap is ready for allocation
//	SaveLoaded()    when a save file has been loaded and the game is running
//	ModelChanged()  when the adult player model has been replaced
//	Tick()          once per frame
//
// Edits to the transform descriptors, and requests made with Request(), are
// acted upon during the next call to Tick().
package patch
