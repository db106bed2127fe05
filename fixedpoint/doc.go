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

// Package fixedpoint converts transforms into the 64 byte matrix format used
// by the graphics microcode.
//
// Matrix elements are s15.16 fixed-point values: 32 bit two's complement
// integers with 16 fractional bits. The microcode stores a 4x4 matrix of
// these values in a split layout. The first 32 bytes hold the integer halves
// of every element and the second 32 bytes hold the fractional halves. Within
// each half, elements are stored in row order, two elements to a 32 bit big
// endian word:
//
//	bytes  0..31   int(m00) int(m01) | int(m02) int(m03) | int(m10) ...
//	bytes 32..63  frac(m00) frac(m01) | frac(m02) frac(m03) | frac(m10) ...
//
// Conversion to fixed-point truncates toward zero. Values outside the range
// of the format (roughly -32768 to 32768) wrap around rather than saturate.
package fixedpoint
