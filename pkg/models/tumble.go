package models

import "github.com/taigrr/polyspin/pkg/math3d"

// Axis names one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the lower-case axis letter.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Rotation returns the elementary rotation about the axis.
func (a Axis) Rotation(angle float64) math3d.Mat3 {
	switch a {
	case AxisX:
		return math3d.RotateX(angle)
	case AxisY:
		return math3d.RotateY(angle)
	case AxisZ:
		return math3d.RotateZ(angle)
	default:
		return math3d.Identity3()
	}
}

// Tumble describes a per-frame animation: the axes in multiplication order
// and the angular rate of each axis in radians per frame.
type Tumble struct {
	Order []Axis
	Rates [3]float64 // Indexed by Axis
}

// Clone creates a copy that does not share the order slice.
func (t Tumble) Clone() Tumble {
	order := make([]Axis, len(t.Order))
	copy(order, t.Order)
	return Tumble{Order: order, Rates: t.Rates}
}

// Matrix multiplies the elementary rotations in Order, each by the angle
// given for its axis. Matrix multiplication is not commutative, so the order
// decides the look of the tumble.
func (t Tumble) Matrix(angles [3]float64) math3d.Mat3 {
	ms := make([]math3d.Mat3, 0, len(t.Order))
	for _, a := range t.Order {
		if a < AxisX || a > AxisZ {
			continue
		}
		ms = append(ms, a.Rotation(angles[a]))
	}
	return math3d.Compose(ms...)
}
