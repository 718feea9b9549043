package gcode

import (
	"errors"
)

// Block is one parsed program line.
type Block []Word

func (b Block) Arg(w byte) (bool, float64) {
	for _, g := range b {
		if g.W == w {
			return true, g.Arg
		}
	}
	return false, 0
}

// HasAxis reports whether the block moves any axis.
func (b Block) HasAxis() bool {
	for _, g := range b {
		if g.IsAxis() {
			return true
		}
	}
	return false
}

func (b Block) Validate() error {
	var checkWord [256]bool

	for _, g := range b {
		if !g.IsValid() {
			return errors.New("invalid word in block")
		}
		if g.W != 'G' && g.W != 'M' && checkWord[g.W] {
			return errors.New("word was repeated in a block")
		}
		checkWord[g.W] = true
	}

	return nil
}
