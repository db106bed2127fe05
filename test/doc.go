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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectFailure and ExpectSuccess functions test for failure and success
// under generic conditions. A bool is a success if it is true and an error is
// a success if it is nil. The nil type is also considered a success; this is
// because of how errors usually work (nil to indicate no error).
//
// ExpectEquality and ExpectInequality compare like-typed comparable values.
// Arrays are comparable so the fixed size byte arrays produced by the
// fixedpoint package can be compared directly.
//
// The Demand* functions are the same as the Expect* functions except that a
// failed test is fatal.
//
// The CompareWriter type implements the io.Writer interface and should be
// used to capture output. The Compare() function can then be used to test for
// equality.
package test
