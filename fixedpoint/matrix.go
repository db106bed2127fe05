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

import (
	"encoding/binary"
	"math"
)

// MatrixSize is the number of bytes in a packed matrix.
const MatrixSize = 64

// Matrix is a 4x4 matrix indexed by row and then column. The translation is
// stored in the last row.
type Matrix [4][4]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Compose returns the matrix that rotates by roll, pitch and heading (in
// degrees), scales uniformly by scale and then translates by x, y and z.
//
// The scale is applied to the rotation part only. The last column of the
// first three rows is always zero and the translation row is not scaled.
func Compose(roll, pitch, heading, x, y, z, scale float64) Matrix {
	const rad = math.Pi / 180

	roll *= rad
	pitch *= rad
	heading *= rad

	sinr, cosr := math.Sin(roll), math.Cos(roll)
	sinp, cosp := math.Sin(pitch), math.Cos(pitch)
	sinh, cosh := math.Sin(heading), math.Cos(heading)

	var m Matrix

	m[0][0] = (cosp * cosh) * scale
	m[0][1] = (cosp * sinh) * scale
	m[0][2] = (-sinp) * scale

	m[1][0] = (sinr*sinp*cosh - cosr*sinh) * scale
	m[1][1] = (sinr*sinp*sinh + cosr*cosh) * scale
	m[1][2] = (sinr * cosp) * scale

	m[2][0] = (cosr*sinp*cosh + sinr*sinh) * scale
	m[2][1] = (cosr*sinp*sinh - sinr*cosh) * scale
	m[2][2] = (cosr * cosp) * scale

	m[3][0] = x
	m[3][1] = y
	m[3][2] = z
	m[3][3] = 1.0

	return m
}

// Fixed returns the matrix converted element by element with ToFixed32().
func (m Matrix) Fixed() [4][4]int32 {
	var f [4][4]int32
	for i := range m {
		for j := range m[i] {
			f[i][j] = ToFixed32(m[i][j])
		}
	}
	return f
}

// Pack returns the matrix in the split fixed-point layout. Same as
// PackSplit(m).
func (m Matrix) Pack() [MatrixSize]byte {
	return PackSplit(m)
}

// PackSplit converts the matrix to fixed-point and returns it in the split
// layout described in the package documentation.
func PackSplit(m Matrix) [MatrixSize]byte {
	var b [MatrixSize]byte

	f := m.Fixed()
	for i := 0; i < 4; i++ {
		for j := 0; j < 2; j++ {
			e1 := uint32(f[i][j*2])
			e2 := uint32(f[i][j*2+1])

			ai := (e1 & 0xffff0000) | ((e2 >> 16) & 0xffff)
			af := ((e1 << 16) & 0xffff0000) | (e2 & 0xffff)

			w := (i*2 + j) * 4
			binary.BigEndian.PutUint32(b[w:], ai)
			binary.BigEndian.PutUint32(b[MatrixSize/2+w:], af)
		}
	}

	return b
}

// UnpackSplit recovers the fixed-point elements of a matrix in the split
// layout.
func UnpackSplit(b [MatrixSize]byte) [4][4]int32 {
	var f [4][4]int32

	for i := 0; i < 4; i++ {
		for j := 0; j < 2; j++ {
			w := (i*2 + j) * 4
			ai := binary.BigEndian.Uint32(b[w:])
			af := binary.BigEndian.Uint32(b[MatrixSize/2+w:])

			f[i][j*2] = int32((ai & 0xffff0000) | (af >> 16))
			f[i][j*2+1] = int32((ai << 16) | (af & 0xffff))
		}
	}

	return f
}
