package render

import (
	"math"

	"github.com/taigrr/polyspin/pkg/math3d"
)

// GridPoint is a cell coordinate.
type GridPoint struct {
	X, Y int
}

// Project maps a coordinate in [-1, 1] to a cell index in [0, size-1].
// Values outside the range clamp to the border instead of failing; NaN maps
// to 0.
func Project(coord float64, size int) int {
	if size <= 0 || math.IsNaN(coord) {
		return 0
	}
	hi := float64(size - 1)
	idx := math.Round((coord + 1) * 0.5 * hi)
	// Clamp before converting so infinities stay defined.
	idx = math.Max(0, math.Min(hi, idx))
	return int(idx)
}

// ProjectVertex projects the X and Y of v. Z is left to the caller as depth.
func ProjectVertex(v math3d.Vec3, size int) GridPoint {
	return GridPoint{
		X: Project(v.X, size),
		Y: Project(v.Y, size),
	}
}
