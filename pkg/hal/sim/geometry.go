package sim

import "math"

// Pos2D is a point on the floor, in millimeters.
type Pos2D struct {
	X, Y float64
}

// Add returns p offset by p1.
func (p Pos2D) Add(p1 Pos2D) Pos2D {
	return Pos2D{X: p.X + p1.X, Y: p.Y + p1.Y}
}

// Dist is the distance from origin.
func (p Pos2D) Dist() float64 {
	return math.Hypot(p.X, p.Y)
}

// Angle is a heading in radians, normalized to (-π, π].
type Angle float64

// AngleFromDegrees creates Angle from degrees.
func AngleFromDegrees(d float64) Angle {
	return Angle(normalizeRadians(d * math.Pi / 180))
}

// AddRadians turns the heading by r.
func (a Angle) AddRadians(r float64) Angle {
	return Angle(normalizeRadians(float64(a) + r))
}

// Degrees converts to degrees.
func (a Angle) Degrees() float64 {
	return float64(a) * 180 / math.Pi
}

// Project moves dist along the heading.
func (a Angle) Project(dist float64) Pos2D {
	return Pos2D{X: dist * math.Cos(float64(a)), Y: dist * math.Sin(float64(a))}
}

func normalizeRadians(r float64) float64 {
	r = math.Remainder(r, 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return r
}

// Pose2D is position plus heading. Heading 0 faces +X, positive angles
// turn counterclockwise.
type Pose2D struct {
	Pos2D
	Orientation Angle
}

// Track is a painted line on the floor.
type Track interface {
	OnLine(p Pos2D) bool
}

// StraightTrack is a line along the X axis.
type StraightTrack struct {
	Width float64
}

// OnLine implements Track.
func (t StraightTrack) OnLine(p Pos2D) bool {
	return math.Abs(p.Y) <= t.Width/2
}

// RingTrack is a circle centered at the origin.
type RingTrack struct {
	Radius float64
	Width  float64
}

// OnLine implements Track.
func (t RingTrack) OnLine(p Pos2D) bool {
	return math.Abs(p.Dist()-t.Radius) <= t.Width/2
}

// TrackFunc adapts a func to Track.
type TrackFunc func(Pos2D) bool

// OnLine implements Track.
func (f TrackFunc) OnLine(p Pos2D) bool {
	return f(p)
}
