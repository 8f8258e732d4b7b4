package emath

// Small 3x3 matrices, used to build tangent frames on the sphere

import(
	"fmt"

	"golang.org/x/image/math/f64"  // Will be "image/math/f64" at some point, hopefully make this file redundant
	"gonum.org/v1/gonum/spatial/r3"
)

// Use a local type so we can hang methods off it. Row major, like f64.Aff3.
type Mat3 f64.Mat3

func Identity() Mat3 {
	return Mat3{1, 0, 0,   0, 1, 0,   0, 0, 1}
}

// FromColumns builds the matrix that maps the local axes onto x, y and z.
func FromColumns(x, y, z r3.Vec) Mat3 {
	return Mat3{
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	}
}

func (m Mat3)Column(i int) r3.Vec {
	return r3.Vec{X: m[3*0+i], Y: m[3*1+i], Z: m[3*2+i]}
}

func (a Mat3)Mult(b Mat3) Mat3 {
	return Mat3{
		a[3*0+0]*b[3*0+0] + a[3*0+1]*b[3*1+0] + a[3*0+2]*b[3*2+0],
		a[3*0+0]*b[3*0+1] + a[3*0+1]*b[3*1+1] + a[3*0+2]*b[3*2+1],
		a[3*0+0]*b[3*0+2] + a[3*0+1]*b[3*1+2] + a[3*0+2]*b[3*2+2],

		a[3*1+0]*b[3*0+0] + a[3*1+1]*b[3*1+0] + a[3*1+2]*b[3*2+0],
		a[3*1+0]*b[3*0+1] + a[3*1+1]*b[3*1+1] + a[3*1+2]*b[3*2+1],
		a[3*1+0]*b[3*0+2] + a[3*1+1]*b[3*1+2] + a[3*1+2]*b[3*2+2],

		a[3*2+0]*b[3*0+0] + a[3*2+1]*b[3*1+0] + a[3*2+2]*b[3*2+0],
		a[3*2+0]*b[3*0+1] + a[3*2+1]*b[3*1+1] + a[3*2+2]*b[3*2+1],
		a[3*2+0]*b[3*0+2] + a[3*2+1]*b[3*1+2] + a[3*2+2]*b[3*2+2],
	}
}

func (m Mat3)Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Apply maps a vector in the local frame into world space.
func (m Mat3)Apply(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: m[3*0+0]*v.X + m[3*0+1]*v.Y + m[3*0+2]*v.Z,
		Y: m[3*1+0]*v.X + m[3*1+1]*v.Y + m[3*1+2]*v.Z,
		Z: m[3*2+0]*v.X + m[3*2+1]*v.Y + m[3*2+2]*v.Z,
	}
}

func (m Mat3)String() string {
	str := fmt.Sprintf("[%10f, %10f, %10f]\n", m[3*0+0], m[3*0+1], m[3*0+2])
	str += fmt.Sprintf("[%10f, %10f, %10f]\n", m[3*1+0], m[3*1+1], m[3*1+2])
	str += fmt.Sprintf("[%10f, %10f, %10f]\n", m[3*2+0], m[3*2+1], m[3*2+2])
	return str
}
