package gcode

import (
	"strings"

	"imgcarve/coord"
	"imgcarve/toolpath"
)

// Move holds the optional target coordinates of a motion command. A nil
// axis keeps its current value and emits no token for that axis. Feed is
// only honored by linear and arc moves.
type Move struct {
	X, Y, Z *float64

	Feed *float64
}

// Arc extends Move with optional center offsets, measured from the
// position at the start of the move.
type Arc struct {
	Move

	I, J, K *float64
}

// Num is a convenience for filling optional Move fields.
func Num(v float64) *float64 { return &v }

// Generator accumulates a G-code program. It tracks the cumulative
// machine position across motion calls and records every motion as a
// toolpath segment for later rendering.
//
// A Generator is not safe for concurrent use; give each producer its own
// or serialize access externally.
type Generator struct {
	lines []string
	segs  []toolpath.Segment
	pos   coord.Point
}

func NewGenerator() *Generator {
	return &Generator{}
}

// Position returns the cumulative machine position after all motion
// calls so far.
func (g *Generator) Position() coord.Point {
	return g.pos
}

// Segments returns a copy of the recorded motion log, in call order.
func (g *Generator) Segments() []toolpath.Segment {
	return append([]toolpath.Segment(nil), g.segs...)
}

// Program returns the full program, one instruction per line. It has no
// side effects and may be called repeatedly.
func (g *Generator) Program() string {
	return strings.Join(g.lines, "\n")
}

// Reset restores the generator to its initial state: position at origin,
// empty instruction and segment logs.
func (g *Generator) Reset() {
	*g = Generator{}
}

// Comment appends a standalone comment line, or a blank separator line
// when text is empty.
func (g *Generator) Comment(text string) {
	if text == "" {
		g.lines = append(g.lines, "")
		return
	}
	g.lines = append(g.lines, "; "+text)
}

// SetUnitsMetric makes following coordinates millimeters.
func (g *Generator) SetUnitsMetric() {
	g.lines = append(g.lines, "G21 ; Set units to millimeters")
}

// SetUnitsImperial makes following coordinates inches. It is textual
// only: values already recorded, and the position log, are not
// converted.
func (g *Generator) SetUnitsImperial() {
	g.lines = append(g.lines, "G20 ; Set units to inches")
}

func (g *Generator) SetAbsolutePositioning() {
	g.lines = append(g.lines, "G90 ; Set absolute positioning mode")
}

// SetRelativePositioning emits the directive only. Coordinates passed to
// motion calls are still applied as literal values to the tracked
// position; callers intending relative semantics must pass deltas and
// account for the drift themselves.
func (g *Generator) SetRelativePositioning() {
	g.lines = append(g.lines, "G91 ; Set relative positioning mode")
}

// HomeAllAxes emits a homing cycle request. The physical home position
// is unknown to this model, so the tracked position is left untouched.
func (g *Generator) HomeAllAxes() {
	g.lines = append(g.lines, "$H ; Home all axes")
}

// RapidMove emits a G0 to the provided axes. Feed is ignored. A call
// with no axes emits nothing and records nothing.
func (g *Generator) RapidMove(m Move) {
	g.motion("G0", "Rapid move", toolpath.Rapid, Arc{Move: Move{X: m.X, Y: m.Y, Z: m.Z}}, false)
}

// LinearMove emits a G1 to the provided axes at the optional feed rate.
// A feed-only call still emits an instruction line but records no
// segment: the segment log tracks spatial motion, not rate changes.
func (g *Generator) LinearMove(m Move) {
	g.motion("G1", "Linear move", toolpath.Linear, Arc{Move: m}, false)
}

// ArcClockwise emits a G2 circular move. Center offsets I/J/K never
// update the tracked position; the recorded segment always carries the
// full offset triple with zeros for unsupplied axes.
func (g *Generator) ArcClockwise(a Arc) {
	g.motion("G2", "Clockwise arc", toolpath.ArcCW, a, true)
}

// ArcCounterclockwise is ArcClockwise with G3 and reversed direction.
func (g *Generator) ArcCounterclockwise(a Arc) {
	g.motion("G3", "Counterclockwise arc", toolpath.ArcCCW, a, true)
}

func (g *Generator) SpindleOnClockwise(rpm *float64) {
	g.spindle("M3", "Start spindle clockwise", rpm)
}

func (g *Generator) SpindleOnCounterclockwise(rpm *float64) {
	g.spindle("M4", "Start spindle counterclockwise", rpm)
}

func (g *Generator) SpindleOff() {
	g.lines = append(g.lines, "M5 ; Stop spindle")
}

func (g *Generator) Dwell(seconds float64) {
	p := formatParam(seconds)
	g.lines = append(g.lines, "G4 P"+p+" ; Dwell for "+p+" seconds")
}

func (g *Generator) ProgramEnd() {
	g.lines = append(g.lines, "M2 ; End of program")
}

func (g *Generator) spindle(cmd, verb string, rpm *float64) {
	if rpm != nil {
		cmd += " S" + formatRPM(*rpm)
	}
	g.lines = append(g.lines, cmd+" ; "+verb)
}

// motion is the shared token/bookkeeping path for all moves. Axis values
// overwrite the tracked position; offsets and feed do not. An
// instruction is emitted when the call produced any token at all, a
// segment only when an axis token was present.
func (g *Generator) motion(cmd, verb string, kind toolpath.Kind, a Arc, arc bool) {
	start := g.pos

	var tokens, pairs []string
	add := func(w byte, val string) {
		tokens = append(tokens, string(w)+val)
		pairs = append(pairs, string(w+'a'-'A')+"="+val)
	}
	axis := func(w byte, v *float64, dst *float64) {
		if v == nil {
			return
		}
		*dst = *v
		add(w, formatCoord(*v))
	}

	axis('X', a.X, &g.pos.X)
	axis('Y', a.Y, &g.pos.Y)
	axis('Z', a.Z, &g.pos.Z)
	moved := len(tokens) > 0

	if arc {
		offset := func(w byte, v *float64) {
			if v != nil {
				add(w, formatCoord(*v))
			}
		}
		offset('I', a.I)
		offset('J', a.J)
		offset('K', a.K)
	}
	if a.Feed != nil {
		add('F', formatParam(*a.Feed))
	}

	if len(tokens) == 0 {
		return
	}

	g.lines = append(g.lines, cmd+" "+strings.Join(tokens, " ")+" ; "+verb+" to "+strings.Join(pairs, ", "))

	if !moved {
		return
	}

	seg := toolpath.Segment{Kind: kind, Start: start, End: g.pos}
	if arc {
		seg.Offset = coord.Point{X: optVal(a.I), Y: optVal(a.J), Z: optVal(a.K)}
	}
	g.segs = append(g.segs, seg)
}

func optVal(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
