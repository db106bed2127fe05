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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The pattern is what distinguishes one curated error from another. Packages
// that produce errors worth testing for declare the pattern as an exported
// constant. For example, the layout package:
//
//	const MisuseError = "layout: %v"
//
//	return curated.Errorf(MisuseError, "plan has already been relocated")
//
// And a caller:
//
//	if curated.Is(err, layout.MisuseError) {
//		...
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain, including errors that have been wrapped by fmt.Errorf()
// with the %w verb.
//
//	e := curated.Errorf(rdram.RangeError, "heap exhausted")
//	f := curated.Errorf(patch.AllocationFailure, e)
//
//	curated.Has(f, rdram.RangeError)   // true
//	curated.Is(f, rdram.RangeError)    // false
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts. For example, wrapping "layout: foo" in the
// pattern "layout: %v" produces "layout: foo" and not "layout: layout: foo".
//
// For the purposes of this package we think of chains as being composed of
// parts separated by the sub-string ': '. For example:
//
//	part 1: part 2: part 3
package curated
