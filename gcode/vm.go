package gcode

import (
	"errors"

	"imgcarve/coord"
)

// VM replays a generated program to recover the position trajectory.
//
// It applies axis words the same way the Generator's bookkeeping does:
// every axis word overwrites that axis with its literal value,
// regardless of G20/G91 directives in the stream. That mirror is the
// point; the VM exists to cross-check the Generator's segment log, not
// to emulate a controller.
type VM struct {
	pos  coord.Point
	feed float64
}

func NewVM() *VM {
	return &VM{}
}

func (vm VM) Position() coord.Point { return vm.pos }
func (vm VM) Feed() float64         { return vm.feed }

func isSupported(g Word) bool {
	if g.IsAxis() {
		return true
	}

	switch g.W {
	case 'G':
		switch g.Arg {
		case 0, 1, 2, 3, 4, 20, 21, 90, 91:
			return true
		}
	case 'M':
		switch g.Arg {
		case 2, 3, 4, 5:
			return true
		}
	case 'F', 'S', 'P', 'I', 'J', 'K':
		return true
	}

	return false
}

// Run applies one block. It reports whether the block moved any axis.
func (vm *VM) Run(b Block) (moved bool, err error) {
	err = b.Validate()
	if err != nil {
		return false, err
	}

	for _, g := range b {
		if !isSupported(g) {
			return false, errors.New("unsupported code: " + g.String())
		}
	}

	for _, g := range b {
		switch g.W {
		case 'X':
			vm.pos.X = g.Arg
		case 'Y':
			vm.pos.Y = g.Arg
		case 'Z':
			vm.pos.Z = g.Arg
		case 'F':
			vm.feed = g.Arg
		}
	}

	return b.HasAxis(), nil
}

// RunAll replays blocks in order and returns the position after each
// block that moved an axis.
func (vm *VM) RunAll(blocks []Block) ([]coord.Point, error) {
	var trajectory []coord.Point
	for _, b := range blocks {
		moved, err := vm.Run(b)
		if err != nil {
			return trajectory, err
		}
		if moved {
			trajectory = append(trajectory, vm.pos)
		}
	}
	return trajectory, nil
}
