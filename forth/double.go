// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import "strconv"

// Double is a double-cell integer.  Lo holds the low 32 bits
// as a bit pattern; Hi holds the sign-extended upper 32 bits.
// Lo on its own is not a number.
type Double struct {
	Lo, Hi Cell
}

// Compose packs a cell pair into the 64-bit integer it represents.
func Compose(lo, hi Cell) int64 {
	return int64(hi)<<cellBits | int64(uCell(lo))
}

// Decompose splits v into its low and high cells.
func Decompose(v int64) (lo, hi Cell) {
	return Cell(v), Cell(v >> cellBits)
}

// DoubleOf returns the cell pair for v.
func DoubleOf(v int64) Double {
	lo, hi := Decompose(v)
	return Double{lo, hi}
}

// Int64 returns the value of d.
func (d Double) Int64() int64 {
	return Compose(d.Lo, d.Hi)
}

// Add, Sub, Mul and Negate wrap around on overflow.

func (d Double) Add(e Double) Double {
	return DoubleOf(d.Int64() + e.Int64())
}

func (d Double) Sub(e Double) Double {
	return DoubleOf(d.Int64() - e.Int64())
}

func (d Double) Mul(e Double) Double {
	return DoubleOf(d.Int64() * e.Int64())
}

func (d Double) Negate() Double {
	return DoubleOf(-d.Int64())
}

// Div divides d by e, truncating toward zero.  The quotient of
// the most negative value by -1 wraps to the most negative value.
func (d Double) Div(e Double) (Double, error) {
	y := e.Int64()
	if y == 0 {
		return Double{}, ZeroDivision
	}
	return DoubleOf(d.Int64() / y), nil
}

// Mod returns the remainder of Div, which has the sign of d.
func (d Double) Mod(e Double) (Double, error) {
	y := e.Int64()
	if y == 0 {
		return Double{}, ZeroDivision
	}
	return DoubleOf(d.Int64() % y), nil
}

// DivMod returns both the quotient and the remainder.
func (d Double) DivMod(e Double) (q, r Double, err error) {
	x, y := d.Int64(), e.Int64()
	if y == 0 {
		return Double{}, Double{}, ZeroDivision
	}
	return DoubleOf(x / y), DoubleOf(x % y), nil
}

// Less reports whether d < e as signed values.
func (d Double) Less(e Double) bool {
	return d.Int64() < e.Int64()
}

func (d Double) String() string {
	return strconv.FormatInt(d.Int64(), 10)
}
