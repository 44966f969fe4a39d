// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import (
	"reflect"
	"testing"
)

func stackOf(cells ...Cell) vmStack {
	s := newStack(8)
	return append(s, cells...)
}

func TestStackPushPop(t *testing.T) {
	s := newStack(2)
	if err := s.push(1); err != nil {
		t.Fatal(err)
	}
	if err := s.push(2); err != nil {
		t.Fatal(err)
	}
	if err := s.push(3); err != StackOverflow {
		t.Errorf("push on full stack: %v, want StackOverflow", err)
	}
	x, y, err := s.pop2()
	if err != nil || x != 1 || y != 2 {
		t.Errorf("pop2 = %d %d %v, want 1 2", x, y, err)
	}
	if _, err := s.pop(); err != StackUnderflow {
		t.Errorf("pop on empty stack: %v, want StackUnderflow", err)
	}
	if _, err := s.peek(); err != StackUnderflow {
		t.Errorf("peek on empty stack: %v, want StackUnderflow", err)
	}
}

func TestStackDouble(t *testing.T) {
	s := newStack(4)
	d := DoubleOf(-(1 << 40) + 3)
	if err := s.pushd(d); err != nil {
		t.Fatal(err)
	}
	// high cell on top
	if want := (vmStack{d.Lo, d.Hi}); !reflect.DeepEqual(s, want) {
		t.Errorf("stack after pushd = %v, want %v", s, want)
	}
	s.pushd(Double{7, 0})
	a, b, err := s.pop2d()
	if err != nil || a != d || b != (Double{7, 0}) {
		t.Errorf("pop2d = %v %v %v", a, b, err)
	}
	if err := s.pushd(d); err != nil {
		t.Fatal(err)
	}
	s.push(0)
	if err := s.pushd(d); err != StackOverflow {
		t.Errorf("pushd with one free cell: %v, want StackOverflow", err)
	}
	if len(s) != 3 {
		t.Errorf("failed pushd changed depth to %d", len(s))
	}
	s.clear()
	s.push(1)
	if _, err := s.popd(); err != StackUnderflow {
		t.Errorf("popd of one cell: %v, want StackUnderflow", err)
	}
}

func TestStackPickRoll(t *testing.T) {
	tests := []struct {
		name string
		in   vmStack
		op   func(*vmStack) error
		want vmStack
	}{
		{"dup", stackOf(1, 2), func(s *vmStack) error { return s.pick(1, 0) }, stackOf(1, 2, 2)},
		{"over", stackOf(1, 2), func(s *vmStack) error { return s.pick(1, 1) }, stackOf(1, 2, 1)},
		{"2dup", stackOf(1, 2), func(s *vmStack) error { return s.pick(2, 0) }, stackOf(1, 2, 1, 2)},
		{"2over", stackOf(1, 2, 3, 4), func(s *vmStack) error { return s.pick(2, 2) }, stackOf(1, 2, 3, 4, 1, 2)},
		{"swap", stackOf(1, 2), func(s *vmStack) error { return s.roll(1, 1) }, stackOf(2, 1)},
		{"rot", stackOf(1, 2, 3), func(s *vmStack) error { return s.roll(1, 2) }, stackOf(2, 3, 1)},
		{"-rot", stackOf(1, 2, 3), func(s *vmStack) error { return s.roll(2, 1) }, stackOf(3, 1, 2)},
		{"2swap", stackOf(1, 2, 3, 4), func(s *vmStack) error { return s.roll(2, 2) }, stackOf(3, 4, 1, 2)},
		{"0 roll", stackOf(1, 2), func(s *vmStack) error { return s.roll(1, 0) }, stackOf(1, 2)},
	}
	for _, tt := range tests {
		s := append(newStack(8), tt.in...)
		if err := tt.op(&s); err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if !reflect.DeepEqual(s, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, s, tt.want)
		}
	}

	s := stackOf(1)
	if err := s.pick(1, 1); err != StackUnderflow {
		t.Errorf("over on one cell: %v, want StackUnderflow", err)
	}
	if err := s.roll(1, 1); err != StackUnderflow {
		t.Errorf("swap on one cell: %v, want StackUnderflow", err)
	}
	if err := s.pick(1, -1); err != StackUnderflow {
		t.Errorf("-1 pick: %v, want StackUnderflow", err)
	}
	if err := s.roll(1, -1); err != StackUnderflow {
		t.Errorf("-1 roll: %v, want StackUnderflow", err)
	}
}
