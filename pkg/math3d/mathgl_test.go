package math3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// toMGL converts a row-major Mat3 into mathgl's column-major layout.
func toMGL(m Mat3) mgl64.Mat3 {
	return mgl64.Mat3{
		m[0][0], m[1][0], m[2][0],
		m[0][1], m[1][1], m[2][1],
		m[0][2], m[1][2], m[2][2],
	}
}

func sameAsMGL(t *testing.T, name string, got Mat3, want mgl64.Mat3) {
	t.Helper()
	for row := range 3 {
		for col := range 3 {
			if d := got[row][col] - want.At(row, col); d > eps || d < -eps {
				t.Errorf("%s[%d][%d] = %v, mathgl %v", name, row, col, got[row][col], want.At(row, col))
			}
		}
	}
}

func TestRotationsMatchMathGL(t *testing.T) {
	for _, angle := range testAngles {
		sameAsMGL(t, "RotateX", RotateX(angle), mgl64.Rotate3DX(angle))
		sameAsMGL(t, "RotateY", RotateY(angle), mgl64.Rotate3DY(angle))
		sameAsMGL(t, "RotateZ", RotateZ(angle), mgl64.Rotate3DZ(angle))
	}
}

func TestProductsMatchMathGL(t *testing.T) {
	v := V3(0.25, -1, 0.75)
	for _, angle := range testAngles {
		a := RotateX(angle).Mul(RotateZ(angle * 2))
		b := RotateY(-angle)

		sameAsMGL(t, "a*b", a.Mul(b), toMGL(a).Mul3(toMGL(b)))

		want := toMGL(a).Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
		got := a.MulVec3(v)
		if !got.ApproxEqual(V3(want.X(), want.Y(), want.Z()), eps) {
			t.Errorf("MulVec3 = %v, mathgl %v", got, want)
		}
	}
}
