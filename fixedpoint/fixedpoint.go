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

package fixedpoint

import "math"

// One is the fixed-point representation of 1.0
const One int32 = 0x00010000

// ToFixed32 converts x to s15.16 fixed-point. The result is truncated toward
// zero and reduced modulo 2^32, so out of range values wrap. NaN and infinite
// values convert to zero.
func ToFixed32(x float64) int32 {
	v := x * 65536.0
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	// math.Mod() is exact and keeps the sign of v, so the result is always
	// in the range of an int64
	v = math.Mod(math.Trunc(v), 1<<32)
	return int32(uint32(int64(v)))
}

// FromFixed32 converts an s15.16 fixed-point value to float64.
func FromFixed32(v int32) float64 {
	return float64(v) / 65536.0
}
