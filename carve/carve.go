// Package carve turns a sampled image into a carving program: dark
// pixels are traced with the tool plunged, light pixels at the safe
// height.
package carve

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"imgcarve/gcode"
	"imgcarve/raster"
)

// Options controls the sampling grid and cutting parameters.
type Options struct {
	OutputWidth  float64 // output width, mm
	OutputHeight float64 // output height, mm
	Rows         int     // sampling rows
	Cols         int     // sampling columns

	ZDown     float64 // cutting height for dark pixels, mm
	ZUp       float64 // safe height for light pixels, mm
	FeedRate  float64 // feed for linear moves, mm/min
	Spindle   float64 // spindle speed, rpm; 0 leaves the spindle alone
	Threshold uint8   // brightness below this cuts

	// Progress, when set, is called once per 100 rows and once at
	// completion.
	Progress func(row, total int)
}

func DefaultOptions() Options {
	return Options{
		OutputWidth:  50,
		OutputHeight: 50,
		Rows:         500,
		Cols:         500,
		ZDown:        -2,
		ZUp:          0,
		FeedRate:     500,
		Spindle:      1000,
		Threshold:    128,
	}
}

// Trace scans img on a Rows x Cols grid, rows alternating direction so
// the tool never rapids back across the work, and appends the full
// program to g: header comments, mode preamble, the serpentine cut, and
// the return-home epilogue.
func Trace(img image.Image, opt Options, g *gcode.Generator) error {
	if opt.Rows <= 0 || opt.Cols <= 0 {
		return errors.New("carve: sampling grid must be positive")
	}
	if opt.OutputWidth <= 0 || opt.OutputHeight <= 0 {
		return errors.New("carve: output size must be positive")
	}

	b := img.Bounds()
	g.Comment(strings.Repeat("=", 50))
	g.Comment(fmt.Sprintf("Image size: %dx%d pixels", b.Dx(), b.Dy()))
	g.Comment(fmt.Sprintf("Output size: %gx%g mm", opt.OutputWidth, opt.OutputHeight))
	g.Comment(fmt.Sprintf("Sampling grid: %dx%d points", opt.Cols, opt.Rows))
	g.Comment(fmt.Sprintf("Z down (dark): %g mm", opt.ZDown))
	g.Comment(fmt.Sprintf("Z up (light): %g mm", opt.ZUp))
	g.Comment(strings.Repeat("=", 50))
	g.Comment("")

	g.SetUnitsMetric()
	g.SetAbsolutePositioning()
	g.Comment("")

	if opt.Spindle > 0 {
		g.SpindleOnClockwise(gcode.Num(opt.Spindle))
	}
	g.Comment("Move to start position")
	g.RapidMove(gcode.Move{X: gcode.Num(0), Y: gcode.Num(0), Z: gcode.Num(opt.ZUp)})
	g.Comment("")

	// one sampled pixel per grid point
	sampled := raster.Scale(img, opt.Cols, opt.Rows)
	scaleX := opt.OutputWidth / float64(opt.Cols)
	scaleY := opt.OutputHeight / float64(opt.Rows)

	currentZ := opt.ZUp
	for row := 0; row < opt.Rows; row++ {
		if row%100 == 0 {
			g.Comment(fmt.Sprintf("Row %d", row))
			if opt.Progress != nil {
				opt.Progress(row, opt.Rows)
			}
		}

		for i := 0; i < opt.Cols; i++ {
			col := i
			if row%2 == 1 {
				col = opt.Cols - 1 - i
			}

			z := opt.ZUp
			if raster.Dark(sampled, col, row, opt.Threshold) {
				z = opt.ZDown
			}
			if z != currentZ {
				g.LinearMove(gcode.Move{Z: gcode.Num(z), Feed: gcode.Num(opt.FeedRate)})
				currentZ = z
			}

			g.LinearMove(gcode.Move{
				X:    gcode.Num(float64(col) * scaleX),
				Y:    gcode.Num(float64(row) * scaleY),
				Feed: gcode.Num(opt.FeedRate),
			})
		}
	}
	if opt.Progress != nil {
		opt.Progress(opt.Rows, opt.Rows)
	}

	g.Comment("")
	g.Comment("Return to safe position")
	g.LinearMove(gcode.Move{Z: gcode.Num(opt.ZUp), Feed: gcode.Num(opt.FeedRate)})
	g.RapidMove(gcode.Move{X: gcode.Num(0), Y: gcode.Num(0)})
	if opt.Spindle > 0 {
		g.SpindleOff()
	}
	g.Comment("")
	g.ProgramEnd()

	return nil
}
