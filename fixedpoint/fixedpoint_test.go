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

package fixedpoint_test

import (
	"math"
	"testing"

	"github.com/jetsetilly/nhshield/fixedpoint"
	"github.com/jetsetilly/nhshield/test"
)

func TestToFixed32(t *testing.T) {
	test.ExpectEquality(t, fixedpoint.ToFixed32(0), int32(0))
	test.ExpectEquality(t, fixedpoint.ToFixed32(1.0), fixedpoint.One)
	test.ExpectEquality(t, fixedpoint.ToFixed32(-1.0), int32(-0x10000))
	test.ExpectEquality(t, fixedpoint.ToFixed32(0.5), int32(0x8000))
	test.ExpectEquality(t, fixedpoint.ToFixed32(512), int32(0x02000000))
	test.ExpectEquality(t, fixedpoint.ToFixed32(-335), int32(-21954560))

	// truncation is toward zero
	test.ExpectEquality(t, fixedpoint.ToFixed32(1.5e-5), int32(0))
	test.ExpectEquality(t, fixedpoint.ToFixed32(-1.5e-5), int32(0))
	test.ExpectEquality(t, fixedpoint.ToFixed32(1.0/65536.0*1.9), int32(1))
	test.ExpectEquality(t, fixedpoint.ToFixed32(-1.0/65536.0*1.9), int32(-1))
}

// values outside of the s15.16 range wrap around. they are not saturated
func TestToFixed32Wraps(t *testing.T) {
	test.ExpectEquality(t, fixedpoint.ToFixed32(32767.99998474121), int32(0x7fffffff))
	test.ExpectEquality(t, uint32(fixedpoint.ToFixed32(32768.0)), uint32(0x80000000))
	test.ExpectEquality(t, uint32(fixedpoint.ToFixed32(-32768.0)), uint32(0x80000000))
	test.ExpectEquality(t, uint32(fixedpoint.ToFixed32(40000.0)), uint32(0x9c400000))
	test.ExpectEquality(t, uint32(fixedpoint.ToFixed32(-40000.5)), uint32(0x63bf8000))
	test.ExpectEquality(t, uint32(fixedpoint.ToFixed32(1e12)), uint32(0x10000000))
	test.ExpectEquality(t, fixedpoint.ToFixed32(65536.0), int32(0))
}

func TestToFixed32NotANumber(t *testing.T) {
	test.ExpectEquality(t, fixedpoint.ToFixed32(math.NaN()), int32(0))
	test.ExpectEquality(t, fixedpoint.ToFixed32(math.Inf(1)), int32(0))
	test.ExpectEquality(t, fixedpoint.ToFixed32(math.Inf(-1)), int32(0))
}

func TestFromFixed32(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 0.5, 512, -335, 1.25, -32768} {
		test.ExpectEquality(t, fixedpoint.FromFixed32(fixedpoint.ToFixed32(v)), v)
	}
}
