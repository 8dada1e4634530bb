package engine

import "math"

// Chart angles are degrees measured clockwise from 12 o'clock in a y-down
// coordinate space. These two constants are the whole convention.
const (
	// OriginOffset moves the trigonometric zero (3 o'clock) to 12 o'clock
	OriginOffset = -90.0
	// SweepClockwise is the arc sweep flag that follows increasing chart angles
	SweepClockwise = true

	FullTurn = 360.0
)

// Point is a position in chart space (origin top-left, y grows downward)
type Point struct {
	X float64
	Y float64
}

// Add returns p translated by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Polar converts a chart angle and radius around center to a Cartesian point
func Polar(center Point, radius, angle float64) Point {
	rad := (angle + OriginOffset) * math.Pi / 180
	return Point{
		X: center.X + radius*math.Cos(rad),
		Y: center.Y + radius*math.Sin(rad),
	}
}

// Angle returns the chart angle of p seen from center, in [0, 360)
func Angle(center, p Point) float64 {
	deg := math.Atan2(p.Y-center.Y, p.X-center.X)*180/math.Pi - OriginOffset
	return normalizeAngle(deg)
}

// Distance returns the Euclidean distance between p and q
func Distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, FullTurn)
	if deg < 0 {
		deg += FullTurn
	}
	return deg
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
