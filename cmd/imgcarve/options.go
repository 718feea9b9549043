package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"imgcarve/carve"
	"imgcarve/svg"
)

type options struct {
	input  string
	output string

	carve carve.Options
	svg   svg.Options

	verify  bool
	port    string
	baud    int
	spjsURL string
	addr    string
}

func parseOptions() options {
	var o options
	def := carve.DefaultOptions()

	flag.StringVar(&o.input, "input", "", "Path to the input image (png, jpg or svg).")
	flag.StringVar(&o.output, "output", "output.gcode", "Path to the output G-code file.")
	flag.Float64Var(&o.carve.OutputWidth, "width", def.OutputWidth, "Output width (mm).")
	flag.Float64Var(&o.carve.OutputHeight, "height", def.OutputHeight, "Output height (mm).")
	flag.IntVar(&o.carve.Rows, "rows", def.Rows, "Number of rows to sample.")
	flag.IntVar(&o.carve.Cols, "cols", def.Cols, "Number of columns to sample.")
	flag.Float64Var(&o.carve.ZDown, "zdown", def.ZDown, "Z height for dark regions (mm).")
	flag.Float64Var(&o.carve.ZUp, "zup", def.ZUp, "Z height for light regions (mm).")
	flag.Float64Var(&o.carve.FeedRate, "feed", def.FeedRate, "Feed rate for linear moves (mm/min).")
	flag.Float64Var(&o.carve.Spindle, "rpm", def.Spindle, "Spindle speed (rpm), 0 to leave the spindle alone.")
	threshold := flag.Uint("threshold", uint(def.Threshold), "Brightness threshold for cutting (0-255).")
	flag.Float64Var(&o.svg.Width, "svg-width", 1000, "Width of the SVG preview (px).")
	flag.Float64Var(&o.svg.Height, "svg-height", 1000, "Height of the SVG preview (px).")
	flag.Float64Var(&o.svg.Margin, "svg-margin", 20, "Margin of the SVG preview (px).")
	flag.BoolVar(&o.verify, "verify", false, "Replay the generated program and cross-check the trajectory.")
	flag.StringVar(&o.port, "send", "", "Serial port to stream the finished program to.")
	flag.IntVar(&o.baud, "baud", 115200, "Baud rate for -send.")
	flag.StringVar(&o.spjsURL, "spjs", "", "Websocket URL of an SPJS bridge to stream through (uses -send as the port name).")
	flag.StringVar(&o.addr, "serve", "", "Address to serve the preview UI on (e.g. :9091).")
	flag.Parse()

	o.carve.Threshold = uint8(*threshold)

	if o.input == "" {
		flag.Usage()
		os.Exit(1)
	}
	if err := o.validate(); err != nil {
		log.Fatalf("%v", err)
	}

	return o
}

// validate catches flag combinations the per-flag defaults cannot.
func (o options) validate() error {
	if o.spjsURL != "" && o.port == "" {
		return errors.New("-spjs requires -send to name the serial port on the bridge")
	}
	return nil
}
