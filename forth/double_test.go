// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

var edgeValues = []int64{
	0, 1, -1, 2, -2, 7, -7,
	math.MaxInt32, math.MinInt32, math.MaxInt32 + 1, math.MinInt32 - 1,
	math.MaxUint32, math.MaxUint32 + 1, -math.MaxUint32,
	1 << 40, -(1 << 40), 0x12345678_9abcdef0,
	math.MaxInt64, math.MinInt64, math.MaxInt64 - 1, math.MinInt64 + 1,
}

func sampleValues(n int) []int64 {
	r := rand.New(rand.NewSource(1))
	vs := append([]int64(nil), edgeValues...)
	for i := 0; i < n; i++ {
		vs = append(vs, int64(r.Uint64()))
	}
	return vs
}

func TestComposeScenarios(t *testing.T) {
	tests := []struct {
		lo, hi Cell
		want   int64
	}{
		{1, 0, 1},
		{-1, -1, -1},
		{0, 1, 1 << 32},
		{-1, 0, math.MaxUint32},
		{0, -1, -(1 << 32)},
		{0, math.MinInt32, math.MinInt64},
		{-1, math.MaxInt32, math.MaxInt64},
		{math.MinInt32, 0, 1 << 31},
		{math.MinInt32, -1, math.MinInt32},
	}
	for _, tt := range tests {
		if got := Compose(tt.lo, tt.hi); got != tt.want {
			t.Errorf("Compose(%d, %d) = %d, want %d", tt.lo, tt.hi, got, tt.want)
		}
		lo, hi := Decompose(tt.want)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("Decompose(%d) = (%d, %d), want (%d, %d)", tt.want, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestDecomposeSignExtends(t *testing.T) {
	// the high cell of a negative value must come from an arithmetic shift
	for _, v := range []int64{-1, -2, math.MinInt32, math.MinInt64, -(1 << 33)} {
		if _, hi := Decompose(v); hi >= 0 {
			t.Errorf("Decompose(%d) high cell = %d, want negative", v, hi)
		}
	}
	if lo, hi := Decompose(-1); lo != -1 || hi != -1 {
		t.Errorf("Decompose(-1) = (%d, %d), want (-1, -1)", lo, hi)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, v := range sampleValues(1000) {
		if got := Compose(Decompose(v)); got != v {
			t.Errorf("Compose(Decompose(%d)) = %d", v, got)
		}
	}
	cells := []Cell{0, 1, -1, 2, -2, math.MaxInt32, math.MinInt32, 0x55aa55aa, -0x55aa55aa}
	for _, lo := range cells {
		for _, hi := range cells {
			if l, h := Decompose(Compose(lo, hi)); l != lo || h != hi {
				t.Errorf("Decompose(Compose(%d, %d)) = (%d, %d)", lo, hi, l, h)
			}
		}
	}
}

func TestArithmeticMatchesInt64(t *testing.T) {
	vs := sampleValues(60)
	for _, x := range vs {
		for _, y := range vs {
			a, b := DoubleOf(x), DoubleOf(y)
			if got := a.Add(b).Int64(); got != x+y {
				t.Fatalf("%d + %d = %d, want %d", x, y, got, x+y)
			}
			if got := a.Sub(b).Int64(); got != x-y {
				t.Fatalf("%d - %d = %d, want %d", x, y, got, x-y)
			}
			if got := a.Mul(b).Int64(); got != x*y {
				t.Fatalf("%d * %d = %d, want %d", x, y, got, x*y)
			}
			if got := a.Less(b); got != (x < y) {
				t.Fatalf("%d < %d = %v", x, y, got)
			}
		}
	}
}

func TestWraparound(t *testing.T) {
	maxD := DoubleOf(math.MaxInt64)
	minD := DoubleOf(math.MinInt64)
	one := Double{1, 0}

	if got := maxD.Add(one); got != minD {
		t.Errorf("max + 1 = %s, want %s", spew.Sdump(got), spew.Sdump(minD))
	}
	if got := minD.Sub(one); got != maxD {
		t.Errorf("min - 1 = %v, want %v", got, maxD)
	}
	if got := maxD.Mul(Double{2, 0}); got.Int64() != -2 {
		t.Errorf("max * 2 = %v, want -2", got)
	}
	if got := minD.Negate(); got != minD {
		t.Errorf("negate min = %v, want %v", got, minD)
	}
	// carry out of the low cell
	if got := (Double{-1, 0}).Add(one); got != (Double{0, 1}) {
		t.Errorf("0xffffffff + 1 = %#v, want {0 1}", got)
	}
}

func TestDivMod(t *testing.T) {
	tests := []struct {
		x, y, q, r int64
	}{
		{7, 2, 3, 1},
		{-7, 2, -3, -1},
		{7, -2, -3, 1},
		{-7, -2, 3, -1},
		{0, 5, 0, 0},
		{1 << 40, 3, 366503875925, 1},
		{math.MinInt64, -1, math.MinInt64, 0},
		{math.MinInt64, 1, math.MinInt64, 0},
		{math.MaxInt64, math.MaxInt64, 1, 0},
	}
	for _, tt := range tests {
		a, b := DoubleOf(tt.x), DoubleOf(tt.y)
		q, err := a.Div(b)
		if err != nil || q.Int64() != tt.q {
			t.Errorf("%d / %d = %v, %v, want %d", tt.x, tt.y, q, err, tt.q)
		}
		r, err := a.Mod(b)
		if err != nil || r.Int64() != tt.r {
			t.Errorf("%d mod %d = %v, %v, want %d", tt.x, tt.y, r, err, tt.r)
		}
		q2, r2, err := a.DivMod(b)
		if err != nil || q2 != q || r2 != r {
			t.Errorf("%d /mod %d = %v %v, %v", tt.x, tt.y, r2, q2, err)
		}
	}
}

func TestDivisionLaw(t *testing.T) {
	vs := sampleValues(60)
	for _, x := range vs {
		for _, y := range vs {
			if y == 0 {
				continue
			}
			a, b := DoubleOf(x), DoubleOf(y)
			q, err := a.Div(b)
			if err != nil {
				t.Fatalf("%d / %d: %v", x, y, err)
			}
			r, err := a.Mod(b)
			if err != nil {
				t.Fatalf("%d mod %d: %v", x, y, err)
			}
			if got := q.Int64()*y + r.Int64(); got != x {
				t.Fatalf("(%d / %d) * %d + %d mod %d = %d", x, y, y, x, y, got)
			}
			if rv := r.Int64(); rv != 0 && (rv < 0) != (x < 0) {
				t.Fatalf("%d mod %d = %d, sign differs from dividend", x, y, rv)
			}
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	zero := Double{}
	for _, x := range sampleValues(20) {
		a := DoubleOf(x)
		if _, err := a.Div(zero); !errors.Is(err, ZeroDivision) {
			t.Errorf("%d / 0: err = %v, want ZeroDivision", x, err)
		}
		if _, err := a.Mod(zero); !errors.Is(err, ZeroDivision) {
			t.Errorf("%d mod 0: err = %v, want ZeroDivision", x, err)
		}
		if _, _, err := a.DivMod(zero); !errors.Is(err, ZeroDivision) {
			t.Errorf("%d /mod 0: err = %v, want ZeroDivision", x, err)
		}
	}
	// a zero low cell alone is not a zero divisor
	if _, err := (Double{5, 0}).Div(Double{0, 1}); err != nil {
		t.Errorf("5 / 2^32: %v", err)
	}
}

func TestOrdering(t *testing.T) {
	minusOne, one := DoubleOf(-1), DoubleOf(1)
	if !minusOne.Less(one) {
		t.Error("-1 < 1 is false")
	}
	if one.Less(minusOne) {
		t.Error("1 < -1 is true")
	}
	if one.Less(one) {
		t.Error("1 < 1 is true")
	}
	// the low cell is unsigned: {-1, 0} is 2^32-1, not -1
	if (Double{-1, 0}).Less(Double{1, 0}) {
		t.Error("0xffffffff < 1 is true")
	}
	if !DoubleOf(math.MinInt64).Less(DoubleOf(math.MaxInt64)) {
		t.Error("min < max is false")
	}
}

func TestScenarios(t *testing.T) {
	if got := (Double{2, 0}).Add(Double{3, 0}).Int64(); got != 5 {
		t.Errorf("2 + 3 = %d", got)
	}
	if q, _ := (Double{7, 0}).Div(Double{2, 0}); q.Int64() != 3 {
		t.Errorf("7 / 2 = %v", q)
	}
	if r, _ := (Double{7, 0}).Mod(Double{2, 0}); r.Int64() != 1 {
		t.Errorf("7 mod 2 = %v", r)
	}
	if _, err := (Double{5, 0}).Div(Double{0, 0}); !errors.Is(err, ZeroDivision) {
		t.Errorf("5 / 0: err = %v", err)
	}
	if got := (Double{5, 0}).Negate().Int64(); got != -5 {
		t.Errorf("negate 5 = %d", got)
	}
	if s := DoubleOf(-1234567890123).String(); s != "-1234567890123" {
		t.Errorf("String() = %q", s)
	}
}
