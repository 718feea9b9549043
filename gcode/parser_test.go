package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	blocks, err := Parse("G21 ; Set units to millimeters\nG0 X10.0000 Y-2.5000 ; Rapid move to x=10.0000, y=-2.5000\n")
	assert.NoError(t, err)
	assert.Equal(t, []Block{
		{{W: 'G', Arg: 21}},
		{{W: 'G', Arg: 0}, {W: 'X', Arg: 10}, {W: 'Y', Arg: -2.5}},
	}, blocks)
}

func TestParse_SkipsCommentsAndHoming(t *testing.T) {
	blocks, err := Parse("; header\n\n$H ; Home all axes\nM5 ; Stop spindle")
	assert.NoError(t, err)
	assert.Equal(t, []Block{
		{{W: 'M', Arg: 5}},
	}, blocks)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("not gcode at all")
	assert.Error(t, err)
}

func TestParse_Generated(t *testing.T) {
	g := NewGenerator()
	g.Comment("demo")
	g.SetUnitsMetric()
	g.SetAbsolutePositioning()
	g.HomeAllAxes()
	g.SpindleOnClockwise(Num(1000))
	g.RapidMove(Move{X: Num(0), Y: Num(0), Z: Num(1)})
	g.LinearMove(Move{Z: Num(-2), Feed: Num(500)})
	g.ArcClockwise(Arc{Move: Move{X: Num(5)}, I: Num(2.5)})
	g.Dwell(0.5)
	g.SpindleOff()
	g.ProgramEnd()

	blocks, err := Parse(g.Program())
	assert.NoError(t, err)
	// comments, the blank line and $H carry no words
	assert.Len(t, blocks, 9)
	assert.Equal(t, Block{{W: 'G', Arg: 2}, {W: 'X', Arg: 5}, {W: 'I', Arg: 2.5}}, blocks[5])
}

func TestBlock_Arg(t *testing.T) {
	b := Block{{W: 'G', Arg: 1}, {W: 'X', Arg: 4.5}}

	ok, v := b.Arg('X')
	assert.True(t, ok)
	assert.Equal(t, 4.5, v)

	ok, _ = b.Arg('Y')
	assert.False(t, ok)
}

func TestBlock_Validate(t *testing.T) {
	assert.NoError(t, Block{{W: 'G', Arg: 1}, {W: 'X', Arg: 1}}.Validate())
	assert.Error(t, Block{{W: 'X', Arg: 1}, {W: 'X', Arg: 2}}.Validate())
	assert.Error(t, Block{{W: '!', Arg: 1}}.Validate())
}
