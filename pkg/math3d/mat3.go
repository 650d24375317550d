package math3d

import "math"

// Mat3 is a 3x3 matrix stored row-major: m[row][col].
//
// Vectors are columns, so a transform reads right to left:
// (A.Mul(B)).MulVec3(v) applies B first, then A.
type Mat3 [3][3]float64

// Identity3 returns the identity matrix.
func Identity3() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	}
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		{c, 0, s},
		{0, 1, 0},
		{-s, 0, c},
	}
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}
}

// Compose multiplies the matrices left to right: Compose(a, b, c) = a*b*c.
// With no arguments it returns the identity.
func Compose(ms ...Mat3) Mat3 {
	out := Identity3()
	for _, m := range ms {
		out = out.Mul(m)
	}
	return out
}

// Row returns row i (0-2) as a vector.
func (m Mat3) Row(i int) Vec3 {
	return Vec3{m[i][0], m[i][1], m[i][2]}
}

// Col returns column i (0-2) as a vector.
func (m Mat3) Col(i int) Vec3 {
	return Vec3{m[0][i], m[1][i], m[2][i]}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat3) Mul(b Mat3) Mat3 {
	var m Mat3
	for row := range 3 {
		for col := range 3 {
			m[row][col] = a.Row(row).Dot(b.Col(col))
		}
	}
	return m
}

// MulVec3 transforms v: each output component is a row of m dotted with v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m.Row(0).Dot(v),
		m.Row(1).Dot(v),
		m.Row(2).Dot(v),
	}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

// Determinant returns the determinant of the matrix.
func (m Mat3) Determinant() float64 {
	return m.Row(0).Dot(m.Row(1).Cross(m.Row(2)))
}

// ApproxEqual reports whether every element of a and b differs by at most eps.
func (a Mat3) ApproxEqual(b Mat3, eps float64) bool {
	for row := range 3 {
		for col := range 3 {
			if math.Abs(a[row][col]-b[row][col]) > eps {
				return false
			}
		}
	}
	return true
}
