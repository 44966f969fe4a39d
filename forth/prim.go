// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import (
	"io"
	"strconv"
	"strings"
)

// dup ( x -- x x )
func (vm *VM) dup() error {
	return vm.stack.pick(1, 0)
}

// drop ( x -- )
func (vm *VM) drop() error {
	_, err := vm.stack.pop()
	return err
}

// swap ( x1 x2 -- x2 x1 )
func (vm *VM) swap() error {
	return vm.stack.roll(1, 1)
}

// over ( x1 x2 -- x1 x2 x1 )
func (vm *VM) over() error {
	return vm.stack.pick(1, 1)
}

// rot ( x1 x2 x3 -- x2 x3 x1 )
func (vm *VM) rot() error {
	return vm.stack.roll(1, 2)
}

// -rot ( x1 x2 x3 -- x3 x1 x2 )
func (vm *VM) minusRot() error {
	return vm.stack.roll(2, 1)
}

// nip ( x1 x2 -- x2 )
func (vm *VM) nip() error {
	if err := vm.stack.roll(1, 1); err != nil { // swap
		return err
	}
	vm.stack.pop() // drop
	return nil
}

// tuck ( x1 x2 -- x2 x1 x2 )
func (vm *VM) tuck() error {
	if err := vm.stack.need(2, 1); err != nil {
		return err
	}
	vm.stack.pick(1, 0) // dup
	vm.stack.roll(2, 1) // -rot
	return nil
}

// pick ( xu ... x1 x0 u -- xu ... x1 x0 xu )
func (vm *VM) pick() error {
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	return vm.stack.pick(1, int(c))
}

// roll ( xu xu-1 ... x0 u -- xu-1 ... x0 xu )
func (vm *VM) roll() error {
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	return vm.stack.roll(1, int(c))
}

// depth ( -- +n )
func (vm *VM) depth() error {
	return vm.stack.push(vm.stack.depth())
}

// ?dup ( x -- 0 | x x )
func (vm *VM) questionDup() error {
	c, err := vm.stack.peek()
	if c == 0 {
		return err
	}
	return vm.stack.push(c)
}

// 2dup ( x1 x2 -- x1 x2 x1 x2 )
func (vm *VM) twoDup() error {
	return vm.stack.pick(2, 0)
}

// 2drop ( x1 x2 -- )
func (vm *VM) twoDrop() error {
	_, _, err := vm.stack.pop2()
	return err
}

// 2swap ( x1 x2 x3 x4 -- x3 x4 x1 x2 )
func (vm *VM) twoSwap() error {
	return vm.stack.roll(2, 2)
}

// 2over ( x1 x2 x3 x4 -- x1 x2 x3 x4 x1 x2 )
func (vm *VM) twoOver() error {
	return vm.stack.pick(2, 2)
}

// >r ( x -- ) ( R:  -- x )
func (vm *VM) toR() error {
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	return rstackError(vm.rstack.push(c))
}

// r> ( -- x ) ( R:  x -- )
func (vm *VM) rFrom() error {
	c, err := vm.rstack.pop()
	if err != nil {
		return rstackError(err)
	}
	return vm.stack.push(c)
}

// r@ ( -- x ) ( R:  x -- x )
func (vm *VM) rFetch() error {
	c, err := vm.rstack.peek()
	if err != nil {
		return rstackError(err)
	}
	return vm.stack.push(c)
}

// rdrop ( R: x -- )
func (vm *VM) rDrop() error {
	_, err := vm.rstack.pop()
	return rstackError(err)
}

// j ( -- n ) ( R: loop-sys1 loop-sys2 -- loop-sys1 loop-sys2 )
func (vm *VM) j() error {
	if err := vm.rstack.need(3, 0); err != nil {
		return rstackError(err)
	}
	return vm.stack.push(vm.rstack[len(vm.rstack)-3])
}

// @ ( a-addr -- x )
func (vm *VM) fetch() error {
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	if c, err = vm.readCell(c); err != nil {
		return err
	}
	return vm.stack.push(c)
}

// ! ( x a-addr -- )
func (vm *VM) store() error {
	c, a, err := vm.stack.pop2()
	if err != nil {
		return err
	}
	return vm.writeCell(a, c)
}

// c@ ( c-addr -- char )
func (vm *VM) cFetch() error {
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	if c, err = vm.readByte(c); err != nil {
		return err
	}
	return vm.stack.push(c)
}

// c! ( char c-addr -- )
func (vm *VM) cStore() error {
	c, a, err := vm.stack.pop2()
	if err != nil {
		return err
	}
	return vm.writeByte(a, c)
}

// 2@ ( a-addr -- x1 x2 )
func (vm *VM) twoFetch() error {
	a, err := vm.stack.pop()
	if err != nil {
		return err
	}
	c, err := vm.readCell(a + cellSize)
	if err != nil {
		return err
	}
	vm.stack.push(c) // will succeed
	if c, err = vm.readCell(a); err != nil {
		return err
	}
	return vm.stack.push(c)
}

// 2! ( x1 x2 a-addr -- )
func (vm *VM) twoStore() error {
	if err := vm.stack.need(3, 0); err != nil {
		return err
	}
	c, a, _ := vm.stack.pop2()
	if err := vm.writeCell(a, c); err != nil {
		return err
	}
	c, _ = vm.stack.pop()
	return vm.writeCell(a+cellSize, c)
}

// +! ( n|u a-addr -- )
func (vm *VM) plusStore() error {
	c, a, err := vm.stack.pop2()
	if err != nil {
		return err
	}
	v, err := vm.readCell(a)
	if err != nil {
		return err
	}
	return vm.writeCell(a, v+c)
}

// here ( -- addr )
func (vm *VM) hereWord() error {
	return vm.stack.push(vm.here)
}

// allot ( n -- )
func (vm *VM) allotWord() error {
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	return vm.allot(c)
}

// , ( x -- )
func (vm *VM) commaWord() error {
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	return vm.comma(c)
}

// c, ( char -- )
func (vm *VM) cComma() error {
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	if err := vm.writeByte(vm.here, c); err != nil {
		return err
	}
	return vm.allot(1)
}

// base ( -- a-addr )
func (vm *VM) base() error {
	return vm.stack.push(baseAddr)
}

func flag(b bool) Cell {
	if b {
		return forthTrue
	}
	return forthFalse
}

func (vm *VM) unaryOp(op func(c Cell) Cell) error {
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	return vm.stack.push(op(c))
}

func (vm *VM) binaryOp(op func(x, y Cell) Cell) error {
	x, y, err := vm.stack.pop2()
	if err != nil {
		return err
	}
	return vm.stack.push(op(x, y))
}

// = ( x1 x2 -- flag )
func (vm *VM) equals() error {
	return vm.binaryOp(func(x, y Cell) Cell { return flag(x == y) })
}

// <> ( x1 x2 -- flag )
func (vm *VM) notEquals() error {
	return vm.binaryOp(func(x, y Cell) Cell { return flag(x != y) })
}

// < ( n1 n2 -- flag )
func (vm *VM) lessThan() error {
	return vm.binaryOp(func(x, y Cell) Cell { return flag(x < y) })
}

// > ( n1 n2 -- flag )
func (vm *VM) greaterThan() error {
	return vm.binaryOp(func(x, y Cell) Cell { return flag(x > y) })
}

// u< ( u1 u2 -- flag )
func (vm *VM) uLessThan() error {
	return vm.binaryOp(func(x, y Cell) Cell { return flag(uCell(x) < uCell(y)) })
}

// u> ( u1 u2 -- flag )
func (vm *VM) uGreaterThan() error {
	return vm.binaryOp(func(x, y Cell) Cell { return flag(uCell(x) > uCell(y)) })
}

// 0< ( n -- flag )
func (vm *VM) zeroLess() error {
	return vm.unaryOp(func(c Cell) Cell { return flag(c < 0) })
}

// 0> ( n -- flag )
func (vm *VM) zeroGreater() error {
	return vm.unaryOp(func(c Cell) Cell { return flag(c > 0) })
}

// 0= ( x -- flag )
func (vm *VM) zeroEquals() error {
	return vm.unaryOp(func(c Cell) Cell { return flag(c == forthFalse) })
}

// 0<> ( x -- flag )
func (vm *VM) zeroNotEquals() error {
	return vm.unaryOp(func(c Cell) Cell { return flag(c != forthFalse) })
}

// invert ( x1 -- x2 )
func (vm *VM) invert() error {
	return vm.unaryOp(func(c Cell) Cell { return ^c })
}

// and ( x1 x2 -- x3 )
func (vm *VM) and() error {
	return vm.binaryOp(func(x, y Cell) Cell { return x & y })
}

// or ( x1 x2 -- x3 )
func (vm *VM) or() error {
	return vm.binaryOp(func(x, y Cell) Cell { return x | y })
}

// xor ( x1 x2 -- x3 )
func (vm *VM) xor() error {
	return vm.binaryOp(func(x, y Cell) Cell { return x ^ y })
}

// lshift ( x1 u -- x2 )
func (vm *VM) lShift() error {
	return vm.binaryOp(func(x, y Cell) Cell { return x << uCell(y) })
}

// rshift ( x1 u -- x2 )
func (vm *VM) rShift() error {
	return vm.binaryOp(func(x, y Cell) Cell { return Cell(uCell(x) >> uCell(y)) })
}

// 2* ( x1 -- x2 )
func (vm *VM) twoStar() error {
	return vm.unaryOp(func(c Cell) Cell { return c << 1 })
}

// 2/ ( x1 -- x2 )
func (vm *VM) twoSlash() error {
	return vm.unaryOp(func(c Cell) Cell { return c >> 1 })
}

// 1+ ( n1|u1 -- n2|u2 )
func (vm *VM) onePlus() error {
	return vm.unaryOp(func(c Cell) Cell { return c + 1 })
}

// 1- ( n1|u1 -- n2|u2 )
func (vm *VM) oneMinus() error {
	return vm.unaryOp(func(c Cell) Cell { return c - 1 })
}

// + ( n1|u1 n2|u2 -- n3|u3 )
func (vm *VM) plus() error {
	return vm.binaryOp(func(x, y Cell) Cell { return x + y })
}

// - ( n1|u1 n2|u2 -- n3|u3 )
func (vm *VM) minus() error {
	return vm.binaryOp(func(x, y Cell) Cell { return x - y })
}

// * ( n1|u1 n2|u2 -- n3|u3 )
func (vm *VM) star() error {
	return vm.binaryOp(func(x, y Cell) Cell { return x * y })
}

// / ( n1 n2 -- n3 )
func (vm *VM) slash() error {
	x, y, err := vm.stack.pop2()
	switch {
	case err != nil:
		return err
	case y == 0:
		return ZeroDivision
	}
	return vm.stack.push(x / y)
}

// mod ( n1 n2 -- n3 )
func (vm *VM) mod() error {
	x, y, err := vm.stack.pop2()
	switch {
	case err != nil:
		return err
	case y == 0:
		return ZeroDivision
	}
	return vm.stack.push(x % y)
}

// /mod ( n1 n2 -- n3 n4 )
func (vm *VM) slashMod() error {
	x, y, err := vm.stack.pop2()
	switch {
	case err != nil:
		return err
	case y == 0:
		return ZeroDivision
	}
	vm.stack.push(x % y) // will succeed
	return vm.stack.push(x / y)
}

// negate ( n1 -- n2 )
func (vm *VM) negate() error {
	return vm.unaryOp(func(c Cell) Cell { return -c })
}

// abs ( n -- u )
func (vm *VM) abs() error {
	return vm.unaryOp(func(c Cell) Cell {
		if c < 0 {
			return -c
		}
		return c
	})
}

// min ( n1 n2 -- n3 )
func (vm *VM) min() error {
	return vm.binaryOp(func(x, y Cell) Cell {
		if y < x {
			return y
		}
		return x
	})
}

// max ( n1 n2 -- n3 )
func (vm *VM) max() error {
	return vm.binaryOp(func(x, y Cell) Cell {
		if y > x {
			return y
		}
		return x
	})
}

// s>d ( n -- d )
func (vm *VM) sToD() error {
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	return vm.stack.pushd(DoubleOf(int64(c)))
}

// d>s ( d -- n )
func (vm *VM) dToS() error {
	d, err := vm.stack.popd()
	if err != nil {
		return err
	}
	return vm.stack.push(d.Lo)
}

// m* ( n1 n2 -- d )
func (vm *VM) mStar() error {
	a, b, err := vm.stack.pop2()
	if err != nil {
		return err
	}
	return vm.stack.pushd(DoubleOf(int64(a)).Mul(DoubleOf(int64(b))))
}

// um* ( u1 u2 -- ud )
func (vm *VM) umStar() error {
	a, b, err := vm.stack.pop2()
	if err != nil {
		return err
	}
	return vm.stack.pushd(DoubleOf(int64(uint64(uCell(a)) * uint64(uCell(b)))))
}

// popDivisor pops the divisor and the double dividend
// of the mixed-precision division words.
func (vm *VM) popDivisor() (Double, Cell, error) {
	if err := vm.stack.need(3, 0); err != nil {
		return Double{}, 0, err
	}
	b, _ := vm.stack.pop()
	if b == 0 {
		return Double{}, 0, ZeroDivision
	}
	a, _ := vm.stack.popd()
	return a, b, nil
}

// sm/rem ( d1 n1 -- n2 n3 )
func (vm *VM) smSlashRem() error {
	a, b, err := vm.popDivisor()
	if err != nil {
		return err
	}
	q, r, _ := a.DivMod(DoubleOf(int64(b)))
	vm.stack.push(r.Lo) // will succeed
	return vm.stack.push(q.Lo)
}

// fm/mod ( d1 n1 -- n2 n3 )
func (vm *VM) fmSlashMod() error {
	a, b, err := vm.popDivisor()
	if err != nil {
		return err
	}
	x, y := a.Int64(), int64(b)
	q, r := x/y, x%y
	if r != 0 && (r < 0) != (y < 0) {
		q--
		r += y
	}
	vm.stack.push(Cell(r)) // will succeed
	return vm.stack.push(Cell(q))
}

// um/mod ( ud u1 -- u2 u3 )
func (vm *VM) umSlashMod() error {
	a, b, err := vm.popDivisor()
	if err != nil {
		return err
	}
	x, y := uint64(a.Int64()), uint64(uCell(b))
	vm.stack.push(Cell(x % y)) // will succeed
	return vm.stack.push(Cell(x / y))
}

// scale pops n1 n2 n3 and returns n1*n2 as a double and n3.
func (vm *VM) scale() (Double, Double, error) {
	if err := vm.stack.need(3, 0); err != nil {
		return Double{}, Double{}, err
	}
	c, _ := vm.stack.pop()
	a, b, _ := vm.stack.pop2()
	return DoubleOf(int64(a)).Mul(DoubleOf(int64(b))), DoubleOf(int64(c)), nil
}

// */ ( n1 n2 n3 -- n4 )
func (vm *VM) starSlash() error {
	p, c, err := vm.scale()
	if err != nil {
		return err
	}
	q, err := p.Div(c)
	if err != nil {
		return err
	}
	return vm.stack.push(q.Lo)
}

// */mod ( n1 n2 n3 -- n4 n5 )
func (vm *VM) starSlashMod() error {
	p, c, err := vm.scale()
	if err != nil {
		return err
	}
	q, r, err := p.DivMod(c)
	if err != nil {
		return err
	}
	vm.stack.push(r.Lo) // will succeed
	return vm.stack.push(q.Lo)
}

func (vm *VM) unaryOpD(op func(d Double) Double) error {
	d, err := vm.stack.popd()
	if err != nil {
		return err
	}
	return vm.stack.pushd(op(d))
}

func (vm *VM) binaryOpD(op func(a, b Double) Double) error {
	a, b, err := vm.stack.pop2d()
	if err != nil {
		return err
	}
	return vm.stack.pushd(op(a, b))
}

func (vm *VM) compareD(op func(a, b Double) bool) error {
	a, b, err := vm.stack.pop2d()
	if err != nil {
		return err
	}
	return vm.stack.push(flag(op(a, b)))
}

// d+ ( d1 d2 -- d3 )
func (vm *VM) dPlus() error {
	return vm.binaryOpD(Double.Add)
}

// d- ( d1 d2 -- d3 )
func (vm *VM) dMinus() error {
	return vm.binaryOpD(Double.Sub)
}

// d* ( d1 d2 -- d3 )
func (vm *VM) dStar() error {
	return vm.binaryOpD(Double.Mul)
}

// d/ ( d1 d2 -- d3 )
func (vm *VM) dSlash() error {
	a, b, err := vm.stack.pop2d()
	if err != nil {
		return err
	}
	q, err := a.Div(b)
	if err != nil {
		return err
	}
	return vm.stack.pushd(q)
}

// dmod ( d1 d2 -- d3 )
func (vm *VM) dMod() error {
	a, b, err := vm.stack.pop2d()
	if err != nil {
		return err
	}
	r, err := a.Mod(b)
	if err != nil {
		return err
	}
	return vm.stack.pushd(r)
}

// d/mod ( d1 d2 -- d3 d4 )
func (vm *VM) dSlashMod() error {
	a, b, err := vm.stack.pop2d()
	if err != nil {
		return err
	}
	q, r, err := a.DivMod(b)
	if err != nil {
		return err
	}
	vm.stack.pushd(r) // will succeed
	return vm.stack.pushd(q)
}

// dnegate ( d1 -- d2 )
func (vm *VM) dNegate() error {
	return vm.unaryOpD(Double.Negate)
}

// dabs ( d -- ud )
func (vm *VM) dAbs() error {
	return vm.unaryOpD(func(d Double) Double {
		if d.Hi < 0 {
			return d.Negate()
		}
		return d
	})
}

// d2* ( xd1 -- xd2 )
func (vm *VM) dTwoStar() error {
	return vm.unaryOpD(func(d Double) Double { return DoubleOf(d.Int64() << 1) })
}

// d2/ ( xd1 -- xd2 )
func (vm *VM) dTwoSlash() error {
	return vm.unaryOpD(func(d Double) Double { return DoubleOf(d.Int64() >> 1) })
}

// dmax ( d1 d2 -- d3 )
func (vm *VM) dMax() error {
	return vm.binaryOpD(func(a, b Double) Double {
		if a.Less(b) {
			return b
		}
		return a
	})
}

// dmin ( d1 d2 -- d3 )
func (vm *VM) dMin() error {
	return vm.binaryOpD(func(a, b Double) Double {
		if b.Less(a) {
			return b
		}
		return a
	})
}

// d< ( d1 d2 -- flag )
func (vm *VM) dLessThan() error {
	return vm.compareD(Double.Less)
}

// d> ( d1 d2 -- flag )
func (vm *VM) dGreaterThan() error {
	return vm.compareD(func(a, b Double) bool { return b.Less(a) })
}

// d= ( xd1 xd2 -- flag )
func (vm *VM) dEquals() error {
	return vm.compareD(func(a, b Double) bool { return a == b })
}

// d0= ( xd -- flag )
func (vm *VM) dZeroEquals() error {
	d, err := vm.stack.popd()
	if err != nil {
		return err
	}
	return vm.stack.push(flag(d == Double{}))
}

// d0< ( d -- flag )
func (vm *VM) dZeroLess() error {
	d, err := vm.stack.popd()
	if err != nil {
		return err
	}
	return vm.stack.push(flag(d.Hi < 0))
}

// . ( n -- )
func (vm *VM) dot() error {
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	return vm.write(strconv.FormatInt(int64(c), vm.Base()) + " ")
}

// u. ( u -- )
func (vm *VM) uDot() error {
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	return vm.write(strconv.FormatUint(uint64(uCell(c)), vm.Base()) + " ")
}

// d. ( d -- )
func (vm *VM) dDot() error {
	d, err := vm.stack.popd()
	if err != nil {
		return err
	}
	return vm.write(strconv.FormatInt(d.Int64(), vm.Base()) + " ")
}

// ud. ( ud -- )
func (vm *VM) udDot() error {
	d, err := vm.stack.popd()
	if err != nil {
		return err
	}
	return vm.write(strconv.FormatUint(uint64(d.Int64()), vm.Base()) + " ")
}

// .s ( -- )
func (vm *VM) dotS() error {
	var b strings.Builder
	b.WriteString("<" + strconv.Itoa(len(vm.stack)) + "> ")
	for _, c := range vm.stack {
		b.WriteString(strconv.FormatInt(int64(c), vm.Base()) + " ")
	}
	return vm.write(b.String())
}

// emit ( char -- )
func (vm *VM) emit() error {
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	return vm.write(string([]byte{byte(c)}))
}

// type ( c-addr u -- )
func (vm *VM) typeWord() error {
	a, l, err := vm.stack.pop2()
	if err != nil {
		return err
	}
	s, err := vm.readSlice(a, l)
	if err != nil {
		return err
	}
	return vm.write(string(s))
}

// key ( -- char | -1 )
func (vm *VM) key() error {
	switch b, err := vm.in.ReadByte(); err {
	case nil:
		return vm.stack.push(Cell(b))
	case io.EOF:
		return vm.stack.push(forthTrue)
	default:
		return vm.newIOError(err)
	}
}

// words ( -- )
func (vm *VM) words() error {
	var b strings.Builder
	for i := len(vm.dict) - 1; i >= 0; i-- {
		b.WriteString(vm.dict[i].name)
		b.WriteByte(' ')
	}
	b.WriteByte('\n')
	return vm.write(b.String())
}

// trace ( flag -- )
func (vm *VM) setTrace() error {
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	vm.debug = c != 0
	return nil
}

// bye ( -- )
func (vm *VM) bye() error {
	return Bye
}

// ' ( "name" -- xt )
func (vm *VM) tick() error {
	_, xt := vm.find(vm.parseWord())
	if xt == 0 {
		return UndefinedWord
	}
	return vm.stack.push(xt)
}

// execute ( i*x xt -- j*x )
func (vm *VM) executeWord() error {
	xt, err := vm.stack.pop()
	if err != nil {
		return err
	}
	w, err := vm.xtWord(xt)
	if err != nil {
		return err
	}
	if w.compOnly && vm.latest == nil {
		return CompileOnly
	}
	return vm.execute(w)
}

var primitives = []struct {
	name      string
	f         func(*VM) error
	immediate bool
	compOnly  bool
}{
	// stack
	{name: "dup", f: (*VM).dup},
	{name: "drop", f: (*VM).drop},
	{name: "swap", f: (*VM).swap},
	{name: "over", f: (*VM).over},
	{name: "rot", f: (*VM).rot},
	{name: "-rot", f: (*VM).minusRot},
	{name: "nip", f: (*VM).nip},
	{name: "tuck", f: (*VM).tuck},
	{name: "pick", f: (*VM).pick},
	{name: "roll", f: (*VM).roll},
	{name: "depth", f: (*VM).depth},
	{name: "?dup", f: (*VM).questionDup},
	{name: "2dup", f: (*VM).twoDup},
	{name: "2drop", f: (*VM).twoDrop},
	{name: "2swap", f: (*VM).twoSwap},
	{name: "2over", f: (*VM).twoOver},
	// rstack
	{name: ">r", f: (*VM).toR},
	{name: "r>", f: (*VM).rFrom},
	{name: "r@", f: (*VM).rFetch},
	{name: "rdrop", f: (*VM).rDrop},
	{name: "i", f: (*VM).rFetch, compOnly: true},
	{name: "j", f: (*VM).j, compOnly: true},
	// memory access
	{name: "@", f: (*VM).fetch},
	{name: "!", f: (*VM).store},
	{name: "c@", f: (*VM).cFetch},
	{name: "c!", f: (*VM).cStore},
	{name: "2@", f: (*VM).twoFetch},
	{name: "2!", f: (*VM).twoStore},
	{name: "+!", f: (*VM).plusStore},
	{name: "here", f: (*VM).hereWord},
	{name: "allot", f: (*VM).allotWord},
	{name: ",", f: (*VM).commaWord},
	{name: "c,", f: (*VM).cComma},
	{name: "base", f: (*VM).base},
	// comparison
	{name: "=", f: (*VM).equals},
	{name: "<>", f: (*VM).notEquals},
	{name: "<", f: (*VM).lessThan},
	{name: ">", f: (*VM).greaterThan},
	{name: "u<", f: (*VM).uLessThan},
	{name: "u>", f: (*VM).uGreaterThan},
	{name: "0<", f: (*VM).zeroLess},
	{name: "0>", f: (*VM).zeroGreater},
	// logic
	{name: "0=", f: (*VM).zeroEquals},
	{name: "0<>", f: (*VM).zeroNotEquals},
	// bitwise logic
	{name: "invert", f: (*VM).invert},
	{name: "and", f: (*VM).and},
	{name: "or", f: (*VM).or},
	{name: "xor", f: (*VM).xor},
	{name: "lshift", f: (*VM).lShift},
	{name: "rshift", f: (*VM).rShift},
	{name: "2*", f: (*VM).twoStar},
	{name: "2/", f: (*VM).twoSlash},
	// arithmetics
	{name: "1+", f: (*VM).onePlus},
	{name: "1-", f: (*VM).oneMinus},
	{name: "+", f: (*VM).plus},
	{name: "-", f: (*VM).minus},
	{name: "*", f: (*VM).star},
	{name: "/", f: (*VM).slash},
	{name: "mod", f: (*VM).mod},
	{name: "/mod", f: (*VM).slashMod},
	{name: "negate", f: (*VM).negate},
	{name: "abs", f: (*VM).abs},
	{name: "min", f: (*VM).min},
	{name: "max", f: (*VM).max},
	// mixed precision
	{name: "s>d", f: (*VM).sToD},
	{name: "d>s", f: (*VM).dToS},
	{name: "m*", f: (*VM).mStar},
	{name: "um*", f: (*VM).umStar},
	{name: "sm/rem", f: (*VM).smSlashRem},
	{name: "fm/mod", f: (*VM).fmSlashMod},
	{name: "um/mod", f: (*VM).umSlashMod},
	{name: "*/", f: (*VM).starSlash},
	{name: "*/mod", f: (*VM).starSlashMod},
	// double cell
	{name: "d+", f: (*VM).dPlus},
	{name: "d-", f: (*VM).dMinus},
	{name: "d*", f: (*VM).dStar},
	{name: "d/", f: (*VM).dSlash},
	{name: "dmod", f: (*VM).dMod},
	{name: "d/mod", f: (*VM).dSlashMod},
	{name: "dnegate", f: (*VM).dNegate},
	{name: "dabs", f: (*VM).dAbs},
	{name: "d2*", f: (*VM).dTwoStar},
	{name: "d2/", f: (*VM).dTwoSlash},
	{name: "dmax", f: (*VM).dMax},
	{name: "dmin", f: (*VM).dMin},
	{name: "d<", f: (*VM).dLessThan},
	{name: "d>", f: (*VM).dGreaterThan},
	{name: "d=", f: (*VM).dEquals},
	{name: "d0=", f: (*VM).dZeroEquals},
	{name: "d0<", f: (*VM).dZeroLess},
	// io
	{name: ".", f: (*VM).dot},
	{name: "u.", f: (*VM).uDot},
	{name: "d.", f: (*VM).dDot},
	{name: "ud.", f: (*VM).udDot},
	{name: ".s", f: (*VM).dotS},
	{name: "emit", f: (*VM).emit},
	{name: "type", f: (*VM).typeWord},
	{name: "key", f: (*VM).key},
	{name: "words", f: (*VM).words},
	{name: "trace", f: (*VM).setTrace},
	{name: "bye", f: (*VM).bye},
	{name: "'", f: (*VM).tick},
	{name: "execute", f: (*VM).executeWord},
	// compiling!
	{name: ":", f: (*VM).colon},
	{name: ";", f: (*VM).semicolon, immediate: true, compOnly: true},
	{name: "immediate", f: (*VM).immediateWord},
	{name: "[", f: (*VM).leftBracket, immediate: true, compOnly: true},
	{name: "]", f: (*VM).rightBracket},
	{name: "literal", f: (*VM).literal, immediate: true, compOnly: true},
	{name: "[']", f: (*VM).bracketTick, immediate: true, compOnly: true},
	{name: "recurse", f: (*VM).recurse, immediate: true, compOnly: true},
	{name: "exit", f: (*VM).exitWord, immediate: true, compOnly: true},
	{name: "create", f: (*VM).create},
	{name: "variable", f: (*VM).variable},
	{name: "2variable", f: (*VM).twoVariable},
	{name: "constant", f: (*VM).constant},
	{name: "2constant", f: (*VM).twoConstant},
	{name: "if", f: (*VM).ifWord, immediate: true, compOnly: true},
	{name: "else", f: (*VM).elseWord, immediate: true, compOnly: true},
	{name: "then", f: (*VM).then, immediate: true, compOnly: true},
	{name: "begin", f: (*VM).begin, immediate: true, compOnly: true},
	{name: "until", f: (*VM).until, immediate: true, compOnly: true},
	{name: "again", f: (*VM).again, immediate: true, compOnly: true},
	{name: "while", f: (*VM).while, immediate: true, compOnly: true},
	{name: "repeat", f: (*VM).repeat, immediate: true, compOnly: true},
	{name: "do", f: (*VM).do, immediate: true, compOnly: true},
	{name: "?do", f: (*VM).questionDo, immediate: true, compOnly: true},
	{name: "loop", f: (*VM).loop, immediate: true, compOnly: true},
	{name: "+loop", f: (*VM).plusLoop, immediate: true, compOnly: true},
	{name: "leave", f: (*VM).leave, immediate: true, compOnly: true},
	{name: "(", f: (*VM).paren, immediate: true},
	{name: "\\", f: (*VM).backslash, immediate: true},
	{name: ".(", f: (*VM).dotParen, immediate: true},
	{name: ".\"", f: (*VM).dotQuote, immediate: true},
}
