// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

const defaultStackDepth = 32

type vmStack []Cell

func newStack(depth int) vmStack {
	return make(vmStack, 0, depth)
}

func (s *vmStack) depth() Cell {
	return Cell(len(*s))
}

func (s *vmStack) clear() {
	*s = (*s)[:0]
}

func (s *vmStack) need(down, up int) error {
	if down < 0 || len(*s) < down {
		return StackUnderflow
	}
	if len(*s)+up > cap(*s) {
		return StackOverflow
	}
	return nil
}

func (s *vmStack) push(c Cell) error {
	if err := s.need(0, 1); err != nil {
		return err
	}
	*s = append(*s, c)
	return nil
}

func (s *vmStack) pop() (Cell, error) {
	if err := s.need(1, 0); err != nil {
		return 0, err
	}
	var c Cell
	*s, c = (*s)[:len(*s)-1], (*s)[len(*s)-1]
	return c, nil
}

// pop2 returns the second and the top cell, in stack order.
func (s *vmStack) pop2() (Cell, Cell, error) {
	if err := s.need(2, 0); err != nil {
		return 0, 0, err
	}
	y, _ := s.pop()
	x, _ := s.pop()
	return x, y, nil
}

func (s *vmStack) peek() (Cell, error) {
	if err := s.need(1, 0); err != nil {
		return 0, err
	}
	return (*s)[len(*s)-1], nil
}

// pushd pushes the low cell, then the high cell.
func (s *vmStack) pushd(d Double) error {
	if err := s.need(0, 2); err != nil {
		return err
	}
	*s = append(*s, d.Lo, d.Hi)
	return nil
}

func (s *vmStack) popd() (Double, error) {
	lo, hi, err := s.pop2()
	return Double{lo, hi}, err
}

// pop2d returns the second and the top double, in stack order.
func (s *vmStack) pop2d() (Double, Double, error) {
	if err := s.need(4, 0); err != nil {
		return Double{}, Double{}, err
	}
	b, _ := s.popd()
	a, _ := s.popd()
	return a, b, nil
}

// mnemonic for arguments: pick/roll <size> cells from depth <from>
func (s *vmStack) pick(size, from int) error {
	if from < 0 {
		return StackUnderflow
	}
	if err := s.need(from+size, size); err != nil {
		return err
	}
	*s = append(*s, (*s)[len(*s)-from-size:len(*s)-from]...)
	return nil
}

func (s *vmStack) roll(size, from int) error {
	if from < 0 {
		return StackUnderflow
	}
	if err := s.need(from+size, 0); err != nil {
		return err
	}
	buf := make([]Cell, size)
	l := len(*s)
	copy(buf, (*s)[l-from-size:l-from])
	copy((*s)[l-from-size:l-size], (*s)[l-from:])
	copy((*s)[l-size:], buf)
	return nil
}
