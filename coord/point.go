package coord

import (
	"math"
)

// Point is a machine position in millimeters.
type Point struct{ X, Y, Z float64 }

func (p Point) Equal(b Point) bool {
	return p.X == b.X && p.Y == b.Y && p.Z == b.Z
}

// Add will add the target values to p.
func (p Point) Add(target Point) Point {
	p.X += target.X
	p.Y += target.Y
	p.Z += target.Z
	return p
}

// Sub will subtract the target values from p.
func (p Point) Sub(target Point) Point {
	p.X -= target.X
	p.Y -= target.Y
	p.Z -= target.Z
	return p
}

func (p Point) Mul(val float64) Point {
	p.X *= val
	p.Y *= val
	p.Z *= val
	return p
}

// MagnitudeXY will return the length of the XY projection of p.
func (p Point) MagnitudeXY() float64 {
	return math.Hypot(p.X, p.Y)
}

// DistanceXY will return the 2D distance to p from (x,y).
func (p Point) DistanceXY(x, y float64) float64 {
	return math.Sqrt(math.Pow(x-p.X, 2) + math.Pow(y-p.Y, 2))
}

// AngleXY will return the angle of the XY vector from p to (x,y),
// measured counterclockwise from the positive X axis.
func (p Point) AngleXY(x, y float64) float64 {
	return math.Atan2(y-p.Y, x-p.X)
}
