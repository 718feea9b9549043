package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCoord(t *testing.T) {
	assert.Equal(t, "10.0000", formatCoord(10))
	assert.Equal(t, "-1.2500", formatCoord(-1.25))
	assert.Equal(t, "0.0001", formatCoord(0.0001))
	assert.Equal(t, "0.0000", formatCoord(0))
}

func TestFormatParam(t *testing.T) {
	assert.Equal(t, "500.00", formatParam(500))
	assert.Equal(t, "0.25", formatParam(0.25))
	assert.Equal(t, "-3.10", formatParam(-3.1))
}

func TestFormatRPM(t *testing.T) {
	assert.Equal(t, "1000", formatRPM(1000))
	assert.Equal(t, "1000.5", formatRPM(1000.5))
}

func TestWord_IsAxis(t *testing.T) {
	assert.True(t, Word{W: 'X'}.IsAxis())
	assert.True(t, Word{W: 'Y'}.IsAxis())
	assert.True(t, Word{W: 'Z'}.IsAxis())
	assert.False(t, Word{W: 'I'}.IsAxis())
	assert.False(t, Word{W: 'F'}.IsAxis())
}

func TestWord_String(t *testing.T) {
	assert.Equal(t, "X10.25", Word{W: 'X', Arg: 10.25}.String())
	assert.Equal(t, "G1", Word{W: 'G', Arg: 1}.String())
}
