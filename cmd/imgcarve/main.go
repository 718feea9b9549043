package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math"
	"net/http"
	"os"
	"strings"

	"imgcarve/carve"
	"imgcarve/gcode"
	"imgcarve/raster"
	"imgcarve/sender"
	"imgcarve/svg"
)

func main() {
	log.SetFlags(log.Lshortfile)

	opts := parseOptions()

	img, err := raster.Load(opts.input)
	if errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("input image %q not found", opts.input)
	}
	if err != nil {
		log.Fatalf("load image %q: %v", opts.input, err)
	}
	b := img.Bounds()
	log.Printf("loaded %s (%dx%d pixels)", opts.input, b.Dx(), b.Dy())

	carveOpt := opts.carve
	carveOpt.Progress = func(row, total int) {
		log.Printf("processing row %d/%d", row, total)
	}

	g := gcode.NewGenerator()
	err = carve.Trace(img, carveOpt, g)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	if opts.verify {
		err = verifyProgram(g)
		if err != nil {
			log.Fatalf("verify: %v", err)
		}
		log.Printf("verified %d motions against the program text", len(g.Segments()))
	}

	program := g.Program()
	err = os.WriteFile(opts.output, []byte(program+"\n"), 0644)
	if err != nil {
		log.Fatalf("write %q: %v", opts.output, err)
	}
	log.Printf("wrote %s (%d lines)", opts.output, strings.Count(program, "\n")+1)

	previewPath := svgPath(opts.output)
	doc := svg.Render(g.Segments(), opts.svg)
	err = os.WriteFile(previewPath, []byte(doc), 0644)
	if err != nil {
		log.Fatalf("write %q: %v", previewPath, err)
	}
	log.Printf("wrote %s (%d segments)", previewPath, len(g.Segments()))

	switch {
	case opts.spjsURL != "":
		sp, err := sender.DialSPJS(opts.spjsURL, opts.port, opts.baud)
		if err != nil {
			log.Fatalf("connect to SPJS: %v", err)
		}
		defer sp.Close()
		err = sp.Send(program)
		if err != nil {
			log.Fatalf("send program: %v", err)
		}
		log.Printf("program sent via %s", opts.spjsURL)
	case opts.port != "":
		s, err := sender.DialSerial(opts.port, opts.baud)
		if err != nil {
			log.Fatalf("open %s: %v", opts.port, err)
		}
		defer s.Close()
		err = s.Send(program)
		if err != nil {
			log.Fatalf("send program: %v", err)
		}
		log.Printf("program sent to %s", opts.port)
	}

	if opts.addr == "" {
		return
	}

	api := newAPI(img, opts.carve, g, opts.svg)
	log.Printf("serving preview on %s", opts.addr)
	err = http.ListenAndServe(opts.addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
		api.ServeHTTP(w, req)
	}))
	log.Fatal(err)
}

// svgPath derives the preview file name next to the program file.
func svgPath(output string) string {
	if strings.HasSuffix(output, ".gcode") {
		return strings.TrimSuffix(output, ".gcode") + ".svg"
	}
	return output + ".svg"
}

// verifyProgram parses the generated text back and replays it,
// cross-checking the trajectory against the recorded segment log. The
// emitted values are quantized to 4 decimals, so positions are compared
// within that quantum.
func verifyProgram(g *gcode.Generator) error {
	blocks, err := gcode.Parse(g.Program())
	if err != nil {
		return err
	}

	trajectory, err := gcode.NewVM().RunAll(blocks)
	if err != nil {
		return err
	}

	segs := g.Segments()
	if len(trajectory) != len(segs) {
		return fmt.Errorf("replayed %d motions, recorded %d segments", len(trajectory), len(segs))
	}

	const quantum = 1e-4
	for i, seg := range segs {
		got := trajectory[i]
		if math.Abs(got.X-seg.End.X) > quantum ||
			math.Abs(got.Y-seg.End.Y) > quantum ||
			math.Abs(got.Z-seg.End.Z) > quantum {
			return fmt.Errorf("motion %d diverges: program %+v, segment %+v", i, got, seg.End)
		}
	}

	return nil
}
