package toolpath

// Bounds is an XY bounding box grown point by point.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64

	set bool
}

// Update grows the box to include (x, y).
func (b *Bounds) Update(x, y float64) {
	if !b.set {
		b.MinX, b.MaxX = x, x
		b.MinY, b.MaxY = y, y
		b.set = true
		return
	}
	if x < b.MinX {
		b.MinX = x
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if y > b.MaxY {
		b.MaxY = y
	}
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// PathBounds computes the XY bounding box of a segment log. Segment
// endpoints always count; an arc additionally contributes the full circle
// implied by its center and radius (center ± radius on both axes). The
// circle is an overestimate of the true sweep, which keeps the rendered
// path inside the canvas without solving for per-arc extrema.
func PathBounds(segs []Segment) Bounds {
	var b Bounds
	for _, s := range segs {
		b.Update(s.Start.X, s.Start.Y)
		b.Update(s.End.X, s.End.Y)
		if !s.IsArc() {
			continue
		}
		c := s.Center()
		r := s.Radius()
		b.Update(c.X-r, c.Y-r)
		b.Update(c.X+r, c.Y+r)
	}
	return b
}
