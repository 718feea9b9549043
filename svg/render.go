// Package svg renders a recorded toolpath as a scalable vector drawing.
package svg

import (
	"fmt"
	"math"
	"strings"

	"imgcarve/toolpath"
)

// Options selects the output canvas geometry.
type Options struct {
	Width  float64 // pixel width of the document
	Height float64 // pixel height of the document
	Margin float64 // border inset on all sides, applied before scaling
}

const (
	backgroundColor = "#ffffff"
	rapidColor      = "#999999"
	cutColor        = "#cc3333"
	travelColor     = "#3366cc"
	startColor      = "#33aa33"
	endColor        = "#e08020"

	strokeWidth  = 1.5
	markerRadius = 4
)

// Render builds an SVG document for the segment log. It is pure: the
// same log and options always produce the same document, and the log is
// never modified.
//
// Non-finite coordinates are not guarded against; callers must validate
// numeric sanity upstream.
func Render(segs []toolpath.Segment, opt Options) string {
	var sb strings.Builder
	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(opt.Width), num(opt.Height), num(opt.Width), num(opt.Height))
	fmt.Fprintf(&sb, `<rect width="%s" height="%s" fill="%s"/>`+"\n",
		num(opt.Width), num(opt.Height), backgroundColor)

	if len(segs) == 0 {
		sb.WriteString("</svg>\n")
		return sb.String()
	}

	tf := newTransform(segs, opt)

	for _, s := range segs {
		x1, y1 := tf.apply(s.Start.X, s.Start.Y)
		x2, y2 := tf.apply(s.End.X, s.End.Y)

		if s.IsArc() {
			fmt.Fprintf(&sb,
				`<path d="M %s %s A %s %s 0 %d %d %s %s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
				num(x1), num(y1),
				num(s.Radius()*tf.scale), num(s.Radius()*tf.scale),
				largeArcFlag(s), sweepFlag(s),
				num(x2), num(y2),
				depthColor(s), num(strokeWidth))
			continue
		}

		if s.Kind == toolpath.Rapid {
			fmt.Fprintf(&sb,
				`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" stroke-dasharray="4,3"/>`+"\n",
				num(x1), num(y1), num(x2), num(y2), rapidColor, num(strokeWidth))
			continue
		}

		fmt.Fprintf(&sb,
			`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			num(x1), num(y1), num(x2), num(y2), depthColor(s), num(strokeWidth))
	}

	sx, sy := tf.apply(segs[0].Start.X, segs[0].Start.Y)
	ex, ey := tf.apply(segs[len(segs)-1].End.X, segs[len(segs)-1].End.Y)
	fmt.Fprintf(&sb, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
		num(sx), num(sy), num(markerRadius), startColor)
	fmt.Fprintf(&sb, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
		num(ex), num(ey), num(markerRadius), endColor)

	sb.WriteString("</svg>\n")
	return sb.String()
}

// depthColor picks the stroke for a potentially cutting move: below the
// work surface (end Z < 0) means cutting.
func depthColor(s toolpath.Segment) string {
	if s.End.Z < 0 {
		return cutColor
	}
	return travelColor
}

// sweepFlag maps the arc kind directly onto the SVG sweep flag:
// 1 for clockwise, 0 for counterclockwise. The vertical flip of the
// canvas transform is deliberately not compensated here.
func sweepFlag(s toolpath.Segment) int {
	if s.Kind == toolpath.ArcCW {
		return 1
	}
	return 0
}

// largeArcFlag computes the angular span between the endpoints around
// the arc center, direction-corrected and normalized into [0, 2pi).
// Spans past a half turn take the major arc. Like the sweep flag, the
// direction correction is not adjusted for the vertical canvas flip.
func largeArcFlag(s toolpath.Segment) int {
	c := s.Center()
	a0 := c.AngleXY(s.Start.X, s.Start.Y)
	a1 := c.AngleXY(s.End.X, s.End.Y)

	span := a0 - a1
	if s.Kind == toolpath.ArcCW {
		span = a1 - a0
	}
	span = math.Mod(span, 2*math.Pi)
	if span < 0 {
		span += 2 * math.Pi
	}

	if span > math.Pi {
		return 1
	}
	return 0
}

// transform maps machine XY coordinates onto the canvas. The vertical
// axis is inverted: machine Y grows upward, canvas Y grows downward.
type transform struct {
	minX, minY float64
	scale      float64
	opt        Options
}

func newTransform(segs []toolpath.Segment, opt Options) transform {
	b := toolpath.PathBounds(segs)

	w := b.Width()
	h := b.Height()
	// a single-point path has no extent; pretend it spans one unit so
	// the scale stays finite
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}

	scale := math.Min(
		(opt.Width-2*opt.Margin)/w,
		(opt.Height-2*opt.Margin)/h,
	)

	return transform{minX: b.MinX, minY: b.MinY, scale: scale, opt: opt}
}

func (t transform) apply(x, y float64) (float64, float64) {
	return t.opt.Margin + (x-t.minX)*t.scale,
		t.opt.Height - t.opt.Margin - (y-t.minY)*t.scale
}

func num(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
