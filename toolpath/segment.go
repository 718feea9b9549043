package toolpath

import (
	"imgcarve/coord"
)

// Kind identifies the motion type of a recorded segment.
type Kind int

const (
	Rapid Kind = iota
	Linear
	ArcCW
	ArcCCW
)

func (k Kind) String() string {
	switch k {
	case Rapid:
		return "rapid"
	case Linear:
		return "linear"
	case ArcCW:
		return "arc-cw"
	case ArcCCW:
		return "arc-ccw"
	}
	return "unknown"
}

// Segment records one emitted motion: the position before and after the
// call, and for arcs the center offset (I, J, K) relative to Start.
// Segments are append-only; they are never mutated after recording.
type Segment struct {
	Kind   Kind
	Start  coord.Point
	End    coord.Point
	Offset coord.Point
}

// IsArc reports whether the segment is a circular move.
func (s Segment) IsArc() bool {
	return s.Kind == ArcCW || s.Kind == ArcCCW
}

// Center returns the absolute arc center, Start plus the offset triple.
func (s Segment) Center() coord.Point {
	return s.Start.Add(s.Offset)
}

// Radius returns the XY-plane arc radius, the length of the offset
// vector projected onto the XY plane.
func (s Segment) Radius() float64 {
	return s.Offset.MagnitudeXY()
}
