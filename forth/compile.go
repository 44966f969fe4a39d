// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import (
	"strconv"
	"strings"
)

// track adds w to the dictionary and its source, written in
// base, to the sources.  It returns the index in the sources,
// or -1 for the soft words, which are not tracked.
func (vm *VM) track(w *word, base Cell) int {
	vm.dict = append(vm.dict, w)
	if vm.booting {
		return -1
	}
	vm.sources = append(vm.sources, WordSource{Name: w.name, Source: w.source, Base: base})
	vm.log.Debugf("defined %s", w.name)
	return len(vm.sources) - 1
}

func (vm *VM) record(i int) error {
	if i < 0 || vm.recorder == nil || vm.replay {
		return nil
	}
	if err := vm.recorder.RecordWord(vm.sources[i]); err != nil {
		return vm.newIOError(err)
	}
	return nil
}

// define tracks w and hands its source to the recorder.
func (vm *VM) define(w *word, base Cell) error {
	return vm.record(vm.track(w, base))
}

// flushCreate completes the source of the pending CREATE with
// its data and records it.  Every defining word calls it first,
// so the data ends where the next definition begins.
func (vm *VM) flushCreate() error {
	c := vm.created
	if c == nil {
		return nil
	}
	vm.created = nil
	ws := &vm.sources[c.index]
	ws.Source = vm.createSource(ws.Name, c.addr, ws.Base)
	return vm.record(c.index)
}

// createSource renders CREATE name followed by the words that
// lay down the data from addr to HERE again.  Trailing zeros
// become ALLOT.
func (vm *VM) createSource(name string, addr, base Cell) string {
	var b strings.Builder
	b.WriteString("create " + name)
	num := func(c Cell) string {
		return " " + strconv.FormatInt(int64(c), int(base))
	}
	end := vm.here
	if end < addr {
		end = addr
	}
	cells := addr + (end-addr)/cellSize*cellSize
	last := end
	for last > cells && vm.Mem[last-1] == 0 {
		last--
	}
	if last == cells {
		for last > addr {
			if c, _ := vm.readCell(last - cellSize); c != 0 {
				break
			}
			last -= cellSize
		}
	}
	a := addr
	for ; a < last && a+cellSize <= cells; a += cellSize {
		c, _ := vm.readCell(a)
		b.WriteString(num(c) + " ,")
	}
	for ; a < last; a++ {
		b.WriteString(num(Cell(vm.Mem[a])) + " c,")
	}
	if a < end {
		b.WriteString(num(end-a) + " allot")
	}
	return b.String()
}

func (vm *VM) parseName() (string, error) {
	name := vm.parseWord()
	if name == "" {
		return "", UndefinedWord
	}
	return name, nil
}

// : ( "name" -- )
func (vm *VM) colon() error {
	if vm.latest != nil {
		return ControlMismatch
	}
	if err := vm.flushCreate(); err != nil {
		return err
	}
	start := vm.tokStart
	name, err := vm.parseName()
	if err != nil {
		return err
	}
	vm.latest = &word{name: name}
	vm.compiling = true
	vm.cf = vm.cf[:0]
	vm.defText.Reset()
	vm.defStart = start
	vm.defBase = Cell(vm.Base())
	return nil
}

// ; ( -- )
func (vm *VM) semicolon() error {
	if len(vm.cf) != 0 {
		return ControlMismatch
	}
	w := vm.latest
	w.source = strings.TrimSpace(vm.defText.String() + vm.src[vm.defStart:vm.toIn])
	vm.defText.Reset()
	vm.compiling = false
	vm.latest = nil
	return vm.define(w, vm.defBase)
}

// immediate ( -- )
func (vm *VM) immediateWord() error {
	vm.dict[len(vm.dict)-1].immediate = true
	return nil
}

// [ ( -- )
func (vm *VM) leftBracket() error {
	vm.compiling = false
	return nil
}

// ] ( -- )
func (vm *VM) rightBracket() error {
	if vm.latest == nil {
		return CompileOnly
	}
	vm.compiling = true
	return nil
}

// literal ( x -- )
func (vm *VM) literal() error {
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	vm.compileLiteral(c)
	return nil
}

// ['] ( "name" -- )
func (vm *VM) bracketTick() error {
	_, xt := vm.find(vm.parseWord())
	if xt == 0 {
		return UndefinedWord
	}
	vm.compileLiteral(xt)
	return nil
}

// recurse ( -- )
func (vm *VM) recurse() error {
	vm.compile(instr{op: opCall, w: vm.latest})
	return nil
}

// exit ( -- )
func (vm *VM) exitWord() error {
	vm.compile(instr{op: opExit})
	return nil
}

func (vm *VM) definePushing(name, source string, cells ...Cell) error {
	w := &word{name: name, source: source}
	for _, c := range cells {
		w.body = append(w.body, instr{op: opLit, n: c})
	}
	return vm.define(w, Cell(vm.Base()))
}

// create ( "name" -- )
func (vm *VM) create() error {
	if err := vm.flushCreate(); err != nil {
		return err
	}
	name, err := vm.parseName()
	if err != nil {
		return err
	}
	vm.here = align(vm.here)
	w := &word{name: name, source: "create " + name, body: []instr{{op: opLit, n: vm.here}}}
	if i := vm.track(w, Cell(vm.Base())); i >= 0 {
		vm.created = &createData{index: i, addr: vm.here}
	}
	return nil
}

func (vm *VM) variableCells(kind string, n Cell) error {
	if err := vm.flushCreate(); err != nil {
		return err
	}
	name, err := vm.parseName()
	if err != nil {
		return err
	}
	vm.here = align(vm.here)
	a := vm.here
	for i := Cell(0); i < n; i++ {
		if err := vm.comma(0); err != nil {
			return err
		}
	}
	return vm.definePushing(name, kind+" "+name, a)
}

// variable ( "name" -- )
func (vm *VM) variable() error {
	return vm.variableCells("variable", 1)
}

// 2variable ( "name" -- )
func (vm *VM) twoVariable() error {
	return vm.variableCells("2variable", 2)
}

// constant ( x "name" -- )
func (vm *VM) constant() error {
	if err := vm.flushCreate(); err != nil {
		return err
	}
	c, err := vm.stack.pop()
	if err != nil {
		return err
	}
	name, err := vm.parseName()
	if err != nil {
		return err
	}
	src := strconv.FormatInt(int64(c), vm.Base()) + " constant " + name
	return vm.definePushing(name, src, c)
}

// 2constant ( x1 x2 "name" -- )
func (vm *VM) twoConstant() error {
	if err := vm.flushCreate(); err != nil {
		return err
	}
	d, err := vm.stack.popd()
	if err != nil {
		return err
	}
	name, err := vm.parseName()
	if err != nil {
		return err
	}
	src := strconv.FormatInt(d.Int64(), vm.Base()) + ". 2constant " + name
	return vm.definePushing(name, src, d.Lo, d.Hi)
}

func (vm *VM) mark() int {
	return len(vm.latest.body)
}

// resolve points the branch at pos to the end of the definition.
func (vm *VM) resolve(pos int) {
	vm.latest.body[pos].n = Cell(vm.mark())
}

func (vm *VM) cfPush(e cfEntry) {
	vm.cf = append(vm.cf, e)
}

func (vm *VM) cfPop(kind cfKind) (cfEntry, error) {
	n := len(vm.cf)
	if n == 0 || vm.cf[n-1].kind != kind {
		return cfEntry{}, ControlMismatch
	}
	e := vm.cf[n-1]
	vm.cf = vm.cf[:n-1]
	return e, nil
}

// if ( C: -- orig )
func (vm *VM) ifWord() error {
	vm.cfPush(cfEntry{kind: cfOrig, pos: vm.mark()})
	vm.compile(instr{op: opJz})
	return nil
}

// else ( C: orig1 -- orig2 )
func (vm *VM) elseWord() error {
	e, err := vm.cfPop(cfOrig)
	if err != nil {
		return err
	}
	pos := vm.mark()
	vm.compile(instr{op: opJmp})
	vm.resolve(e.pos)
	vm.cfPush(cfEntry{kind: cfOrig, pos: pos})
	return nil
}

// then ( C: orig -- )
func (vm *VM) then() error {
	e, err := vm.cfPop(cfOrig)
	if err != nil {
		return err
	}
	vm.resolve(e.pos)
	return nil
}

// begin ( C: -- dest )
func (vm *VM) begin() error {
	vm.cfPush(cfEntry{kind: cfDest, pos: vm.mark()})
	return nil
}

// until ( C: dest -- )
func (vm *VM) until() error {
	e, err := vm.cfPop(cfDest)
	if err != nil {
		return err
	}
	vm.compile(instr{op: opJz, n: Cell(e.pos)})
	return nil
}

// again ( C: dest -- )
func (vm *VM) again() error {
	e, err := vm.cfPop(cfDest)
	if err != nil {
		return err
	}
	vm.compile(instr{op: opJmp, n: Cell(e.pos)})
	return nil
}

// while ( C: dest -- orig dest )
func (vm *VM) while() error {
	dest, err := vm.cfPop(cfDest)
	if err != nil {
		return err
	}
	vm.cfPush(cfEntry{kind: cfOrig, pos: vm.mark()})
	vm.compile(instr{op: opJz})
	vm.cfPush(dest)
	return nil
}

// repeat ( C: orig dest -- )
func (vm *VM) repeat() error {
	dest, err := vm.cfPop(cfDest)
	if err != nil {
		return err
	}
	orig, err := vm.cfPop(cfOrig)
	if err != nil {
		return err
	}
	vm.compile(instr{op: opJmp, n: Cell(dest.pos)})
	vm.resolve(orig.pos)
	return nil
}

// do ( C: -- do-sys )
func (vm *VM) do() error {
	vm.compile(instr{op: opDo})
	vm.cfPush(cfEntry{kind: cfDo, pos: vm.mark()})
	return nil
}

// ?do ( C: -- do-sys )
func (vm *VM) questionDo() error {
	pos := vm.mark()
	vm.compile(instr{op: opQDo})
	vm.cfPush(cfEntry{kind: cfDo, pos: vm.mark(), leaves: []int{pos}})
	return nil
}

// leave ( -- ) ( R: loop-sys -- )
func (vm *VM) leave() error {
	for i := len(vm.cf) - 1; i >= 0; i-- {
		if vm.cf[i].kind == cfDo {
			vm.cf[i].leaves = append(vm.cf[i].leaves, vm.mark())
			vm.compile(instr{op: opLeave})
			return nil
		}
	}
	return ControlMismatch
}

func (vm *VM) endLoop(op opcode) error {
	e, err := vm.cfPop(cfDo)
	if err != nil {
		return err
	}
	vm.compile(instr{op: op, n: Cell(e.pos)})
	for _, pos := range e.leaves {
		vm.resolve(pos)
	}
	return nil
}

// loop ( C: do-sys -- )
func (vm *VM) loop() error {
	return vm.endLoop(opLoop)
}

// +loop ( C: do-sys -- )
func (vm *VM) plusLoop() error {
	return vm.endLoop(opPlusLoop)
}

// ( ( "ccc<paren>" -- )
func (vm *VM) paren() error {
	vm.parse(')')
	return nil
}

// \ ( "ccc<eol>" -- )
func (vm *VM) backslash() error {
	vm.parse('\n')
	return nil
}

// .( ( "ccc<paren>" -- )
func (vm *VM) dotParen() error {
	return vm.write(vm.parse(')'))
}

// ." ( "ccc<quote>" -- )
func (vm *VM) dotQuote() error {
	s := vm.parse('"')
	if !vm.compiling {
		return vm.write(s)
	}
	vm.compile(instr{op: opType, s: s})
	return nil
}
