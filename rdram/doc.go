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

// Package rdram defines the interface to the memory of the machine being
// patched and provides an in-process implementation of it.
//
// The Target and Allocator interfaces are all the patch package needs from a
// host. A host that patches a real emulator implements them with the
// emulator's memory access functions. The Image type implements both over a
// byte slice and is used by the command line tool and by tests.
//
// Every change to an Image is recorded in a Journal. A Journal can be encoded
// as CBOR, saved, and replayed onto any Target later.
package rdram
