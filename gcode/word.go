package gcode

import (
	"strconv"
	"strings"
)

type Word struct {
	W   byte
	Arg float64
}

func (w Word) IsAxis() bool {
	switch w.W {
	case 'X', 'Y', 'Z': // maybe someday 'A', 'B', 'C', 'U', 'V', 'W':
		return true
	}
	return false
}

func (w Word) IsValid() bool {
	return w.W >= 'A' && w.W <= 'Z'
}

func (w Word) String() string {
	s := strconv.FormatFloat(w.Arg, 'f', 4, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return string(w.W) + s
}

// Emitted numeric formats are a compatibility contract: coordinates and
// center offsets always carry 4 fractional digits, feed rates and dwell
// durations always 2. Do not trim trailing zeros.

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

func formatParam(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// formatRPM keeps spindle speeds integer-looking for whole values.
func formatRPM(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
