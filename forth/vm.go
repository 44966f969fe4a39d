// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"
)

// Cell is the VM word: a 32-bit signed integer.
type Cell int32

type uCell uint32

const (
	cellSize = 4
	cellBits = 32
)

const (
	forthFalse = Cell(0)
	forthTrue  = ^forthFalse
	ramSize    = 0x10000 // should be enough for everyone
	maxNest    = 1024    // colon definition nesting
	baseAddr   = Cell(0) // BASE lives in the first cell
)

type opcode uint8

const (
	opCall opcode = iota
	opLit
	opJmp
	opJz
	opDo
	opQDo
	opLoop
	opPlusLoop
	opLeave
	opExit
	opType
)

// compiled instruction of a colon definition
type instr struct {
	op opcode
	w  *word // opCall
	n  Cell  // literal or branch target
	s  string
}

type word struct {
	name      string
	immediate bool
	compOnly  bool
	prim      func(*VM) error
	body      []instr
	source    string
}

// control-flow stack entry, used while compiling
type cfKind int

const (
	cfOrig cfKind = iota
	cfDest
	cfDo
)

type cfEntry struct {
	kind   cfKind
	pos    int
	leaves []int
}

// Recorder receives the source of every colon definition
// completed by the interpreter.
type Recorder interface {
	RecordWord(w WordSource) error
}

// WordSource is the source text of a definition and the
// base it was written in.
type WordSource struct {
	Name   string `cbor:"name"`
	Source string `cbor:"source"`
	Base   Cell   `cbor:"base"`
}

// State is the part of the VM that survives a restart.
type State struct {
	Base  Cell         `cbor:"base"`
	Stack []Cell       `cbor:"stack"`
	Words []WordSource `cbor:"words"`
}

type VM struct {
	in            *bufio.Reader
	out           io.Writer
	stack, rstack vmStack
	debug         bool
	prompt        bool
	color         bool
	log           commonlog.Logger
	recorder      Recorder
	Mem           [ramSize]byte
	here          Cell

	dict    []*word
	sources []WordSource
	created *createData // create waiting for its data
	booting bool        // defining the soft words
	replay  bool        // definitions are not passed to the recorder
	nest    int
	current string // word being interpreted, for error reports

	// text interpreter
	src      string
	toIn     int
	tokStart int

	// compiler
	compiling bool
	latest    *word
	cf        []cfEntry
	defText   strings.Builder
	defStart  int
	defBase   Cell // base at the colon
}

// createData is the latest CREATE, whose source is completed
// with the data laid down after it once the next definition
// starts.
type createData struct {
	index int  // in sources
	addr  Cell // data field
}

// Option configures a VM.
type Option func(*VM)

// WithStackDepth sets the capacity of both stacks.
func WithStackDepth(n int) Option {
	return func(vm *VM) {
		if n > 0 {
			vm.stack = newStack(n)
			vm.rstack = newStack(n)
		}
	}
}

// WithBase sets the initial number conversion radix.
func WithBase(base int) Option {
	return func(vm *VM) {
		vm.writeCell(baseAddr, Cell(base))
	}
}

// WithLogger replaces the "piforth.vm" logger.  TRACE writes to
// its debug level.
func WithLogger(log commonlog.Logger) Option {
	return func(vm *VM) {
		vm.log = log
	}
}

func WithRecorder(r Recorder) Option {
	return func(vm *VM) {
		vm.recorder = r
	}
}

// WithPrompt makes Run print " ok" after each successful line.
func WithPrompt(prompt bool) Option {
	return func(vm *VM) {
		vm.prompt = prompt
	}
}

// WithColor makes Run print trap messages in red.
func WithColor(color bool) Option {
	return func(vm *VM) {
		vm.color = color
	}
}

// NewVM returns a VM reading from in and writing to out,
// with the built-in and soft words defined.
func NewVM(in io.Reader, out io.Writer, opts ...Option) *VM {
	vm := &VM{
		in:     bufio.NewReader(in),
		out:    out,
		stack:  newStack(defaultStackDepth),
		rstack: newStack(defaultStackDepth),
		log:    commonlog.GetLogger("piforth.vm"),
		here:   baseAddr + cellSize,
	}
	vm.writeCell(baseAddr, 10)
	for _, p := range primitives {
		vm.dict = append(vm.dict, &word{
			name:      p.name,
			prim:      p.f,
			immediate: p.immediate,
			compOnly:  p.compOnly,
		})
	}
	for _, o := range opts {
		o(vm)
	}

	// soft words are written in decimal
	base, _ := vm.readCell(baseAddr)
	vm.writeCell(baseAddr, 10)
	vm.booting = true
	if err := vm.Evaluate(softcore); err != nil {
		panic("softcore: " + err.Error())
	}
	vm.booting = false
	vm.writeCell(baseAddr, base)
	vm.log.Debugf("vm ready: %d words, here %d", len(vm.dict), vm.here)
	return vm
}

// Depth returns the number of cells on the data stack.
func (vm *VM) Depth() int {
	return len(vm.stack)
}

// Stack returns a copy of the data stack, top last.
func (vm *VM) Stack() []Cell {
	return append([]Cell(nil), vm.stack...)
}

// Push pushes a cell on the data stack.
func (vm *VM) Push(c Cell) error {
	return vm.stack.push(c)
}

// Pop pops a cell off the data stack.
func (vm *VM) Pop() (Cell, error) {
	return vm.stack.pop()
}

// PushDouble pushes d as two cells, the high cell on top.
func (vm *VM) PushDouble(d Double) error {
	return vm.stack.pushd(d)
}

// PopDouble pops a double-cell number.
func (vm *VM) PopDouble() (Double, error) {
	return vm.stack.popd()
}

// Base returns the current number conversion radix.
func (vm *VM) Base() int {
	b, _ := vm.readCell(baseAddr)
	if b < 2 || b > 36 {
		return 10
	}
	return int(b)
}

// Snapshot returns the base, the data stack and the colon
// definitions made since start-up.
func (vm *VM) Snapshot() State {
	b, _ := vm.readCell(baseAddr)
	words := append([]WordSource(nil), vm.sources...)
	if c := vm.created; c != nil {
		ws := &words[c.index]
		ws.Source = vm.createSource(ws.Name, c.addr, ws.Base)
	}
	return State{
		Base:  b,
		Stack: vm.Stack(),
		Words: words,
	}
}

// Flush hands a CREATE still waiting for its data to the
// recorder.  The data of a CREATE is whatever lies between it
// and the next definition, so the last one is only complete
// when input ends.
func (vm *VM) Flush() error {
	return vm.flushCreate()
}

// Restore replays the definitions of s without recording them,
// then sets the base and the data stack.
func (vm *VM) Restore(s State) error {
	if err := vm.Replay(s.Words); err != nil {
		return err
	}
	if err := vm.stack.need(0, len(s.Stack)-len(vm.stack)); err != nil {
		return vm.trap(err)
	}
	vm.stack = append(vm.stack[:0], s.Stack...)
	return vm.writeCell(baseAddr, s.Base)
}

// Replay evaluates definitions, each in the base it was
// written in, without passing them to the recorder.
func (vm *VM) Replay(words []WordSource) error {
	if err := vm.Flush(); err != nil {
		return err
	}
	base, _ := vm.readCell(baseAddr)
	vm.replay = true
	defer func() {
		vm.replay = false
		vm.writeCell(baseAddr, base)
	}()
	for _, w := range words {
		if w.Base != 0 {
			vm.writeCell(baseAddr, w.Base)
		}
		if err := vm.Evaluate(w.Source); err != nil {
			return err
		}
	}
	return vm.flushCreate()
}

// memory ops with address checking
func (vm *VM) readByte(a Cell) (Cell, error) {
	if uCell(a) >= ramSize {
		return 0, vm.newErrorAddr(IllegalAddress, a)
	}
	return Cell(vm.Mem[a]), nil
}

func (vm *VM) writeByte(a Cell, v Cell) error {
	if uCell(a) >= ramSize {
		return vm.newErrorAddr(IllegalAddress, a)
	}
	vm.Mem[a] = byte(v)
	return nil
}

func (vm *VM) checkCell(a Cell) error {
	switch {
	case uCell(a) > ramSize-cellSize:
		return vm.newErrorAddr(IllegalAddress, a)
	case a%cellSize != 0:
		return vm.newErrorAddr(UnalignedAddress, a)
	}
	return nil
}

func (vm *VM) readCell(a Cell) (Cell, error) {
	if err := vm.checkCell(a); err != nil {
		return 0, err
	}
	var v uCell
	for i := Cell(0); i < cellSize; i++ {
		v = v<<8 | uCell(vm.Mem[a+i])
	}
	return Cell(v), nil
}

func (vm *VM) writeCell(a Cell, v Cell) error {
	if err := vm.checkCell(a); err != nil {
		return err
	}
	copy(vm.Mem[a:], []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
	return nil
}

func (vm *VM) readSlice(a, l Cell) ([]byte, error) {
	if uCell(a) >= ramSize || uCell(l) > ramSize-uCell(a) {
		return nil, vm.newErrorAddr(IllegalAddress, a)
	}
	return vm.Mem[a : a+l], nil
}

func (vm *VM) allot(n Cell) error {
	h := vm.here + n
	if uCell(h) > ramSize {
		return vm.newErrorAddr(IllegalAddress, h)
	}
	vm.here = h
	return nil
}

func (vm *VM) comma(c Cell) error {
	vm.here = align(vm.here)
	a := vm.here
	if err := vm.allot(cellSize); err != nil {
		return err
	}
	return vm.writeCell(a, c)
}

func align(a Cell) Cell {
	a += cellSize - 1
	return a - a%cellSize
}

func isdelim(b, delim byte) bool {
	if delim == ' ' {
		return b <= 0x20
	}
	return b == delim
}

// parse returns the text up to delim, skipping leading blanks
// when delim is a space.  The delimiter itself is consumed.
func (vm *VM) parse(delim byte) string {
	toin := vm.toIn
	for delim == ' ' && toin < len(vm.src) && isdelim(vm.src[toin], delim) {
		toin++
	}
	start := toin
	for toin < len(vm.src) && !isdelim(vm.src[toin], delim) {
		toin++
	}
	end := toin
	if toin < len(vm.src) {
		toin++
	}
	vm.toIn, vm.tokStart = toin, start
	return vm.src[start:end]
}

func (vm *VM) parseWord() string {
	return vm.parse(' ')
}

// find looks name up, newest definition first.
func (vm *VM) find(name string) (*word, Cell) {
	for i := len(vm.dict) - 1; i >= 0; i-- {
		if strings.EqualFold(vm.dict[i].name, name) {
			return vm.dict[i], Cell(i + 1)
		}
	}
	return nil, 0
}

func (vm *VM) xtWord(xt Cell) (*word, error) {
	if xt < 1 || int(xt) > len(vm.dict) {
		return nil, UndefinedWord
	}
	return vm.dict[xt-1], nil
}

// number converts s in the current base.  A trailing dot
// makes a double-cell number.
func (vm *VM) number(s string) (d Double, double, ok bool) {
	base := vm.Base()
	if len(s) > 1 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
		n, err := strconv.ParseInt(s, base, 2*cellBits)
		if err != nil {
			u, uerr := strconv.ParseUint(s, base, 2*cellBits)
			if uerr != nil {
				return Double{}, false, false
			}
			n = int64(u)
		}
		return DoubleOf(n), true, true
	}
	n, err := strconv.ParseInt(s, base, cellBits+1)
	if err != nil {
		return Double{}, false, false
	}
	return Double{Lo: Cell(n)}, false, true
}

func (vm *VM) compile(i instr) {
	vm.latest.body = append(vm.latest.body, i)
}

func (vm *VM) compileLiteral(c Cell) {
	vm.compile(instr{op: opLit, n: c})
}

func (vm *VM) trace(w *word) {
	if vm.debug {
		vm.log.Debugf("%s %v", w.name, []Cell(vm.stack))
	}
}

func (vm *VM) execute(w *word) error {
	vm.trace(w)
	if w.prim != nil {
		return w.prim(vm)
	}
	if vm.nest >= maxNest {
		return RStackOverflow
	}
	vm.nest++
	defer func() { vm.nest-- }()
	body := w.body
	for ip := 0; ip < len(body); {
		in := &body[ip]
		ip++
		switch in.op {
		case opCall:
			if err := vm.execute(in.w); err != nil {
				return err
			}
		case opLit:
			if err := vm.stack.push(in.n); err != nil {
				return err
			}
		case opJmp:
			ip = int(in.n)
		case opJz:
			c, err := vm.stack.pop()
			if err != nil {
				return err
			}
			if c == forthFalse {
				ip = int(in.n)
			}
		case opDo, opQDo:
			limit, index, err := vm.stack.pop2()
			if err != nil {
				return err
			}
			if in.op == opQDo && limit == index {
				ip = int(in.n)
				break
			}
			if err := vm.rstack.need(0, 2); err != nil {
				return rstackError(err)
			}
			vm.rstack.push(limit)
			vm.rstack.push(index)
		case opLoop, opPlusLoop:
			inc := Cell(1)
			if in.op == opPlusLoop {
				c, err := vm.stack.pop()
				if err != nil {
					return err
				}
				inc = c
			}
			limit, index, err := vm.rstack.pop2()
			if err != nil {
				return rstackError(err)
			}
			// exit when the index crosses the limit-1|limit boundary
			diff := index - limit
			if (diff^(diff+inc)) < 0 && (diff^inc) < 0 {
				break
			}
			vm.rstack.push(limit)
			vm.rstack.push(index + inc)
			ip = int(in.n)
		case opLeave:
			if _, _, err := vm.rstack.pop2(); err != nil {
				return rstackError(err)
			}
			ip = int(in.n)
		case opExit:
			return nil
		case opType:
			if err := vm.write(in.s); err != nil {
				return err
			}
		}
	}
	return nil
}

func (vm *VM) interpretWord(name string) error {
	if w, _ := vm.find(name); w != nil {
		switch {
		case vm.compiling && !w.immediate:
			vm.compile(instr{op: opCall, w: w})
			return nil
		case !vm.compiling && w.compOnly:
			return CompileOnly
		}
		return vm.execute(w)
	}
	d, double, ok := vm.number(name)
	switch {
	case !ok:
		return UndefinedWord
	case vm.compiling && double:
		vm.compileLiteral(d.Lo)
		vm.compileLiteral(d.Hi)
		return nil
	case vm.compiling:
		vm.compileLiteral(d.Lo)
		return nil
	case double:
		return vm.stack.pushd(d)
	}
	return vm.stack.push(d.Lo)
}

// Evaluate interprets src.  On a trap other than BYE the stacks
// are cleared and any definition in progress is discarded.
func (vm *VM) Evaluate(src string) (err error) {
	osrc, otoin := vm.src, vm.toIn
	vm.src, vm.toIn = src, 0
	defer func() {
		if vm.latest != nil && err == nil {
			// definition continues on the next line
			vm.defText.WriteString(src[vm.defStart:])
			vm.defStart = 0
		}
		vm.src, vm.toIn = osrc, otoin
	}()

	for {
		name := vm.parseWord()
		if name == "" {
			return nil
		}
		vm.current = name
		if err = vm.interpretWord(name); err != nil {
			err = vm.trap(err)
			if !errors.Is(err, Bye) {
				vm.abort(err)
			}
			return err
		}
	}
}

func (vm *VM) abort(err error) {
	vm.log.Infof("abort: %s", err)
	vm.stack.clear()
	vm.rstack.clear()
	vm.compiling = false
	vm.latest = nil
	vm.cf = vm.cf[:0]
	vm.defText.Reset()
	vm.nest = 0
}

func (vm *VM) write(s string) error {
	if _, err := io.WriteString(vm.out, s); err != nil {
		return vm.newIOError(err)
	}
	return nil
}

func (vm *VM) report(err error) {
	msg := err.Error()
	if vm.color {
		msg = "\033[31m" + msg + "\033[0m"
	}
	vm.write(msg + "\n")
}

// Run interprets the input line by line until BYE or the end
// of input.  Traps are reported to the output and interpretation
// continues with the next line.  Input that ends inside a colon
// definition discards it and returns an EOF error.
func (vm *VM) Run() error {
	for {
		line, rerr := vm.in.ReadString('\n')
		if line != "" {
			err := vm.Evaluate(line)
			switch {
			case errors.Is(err, Bye):
				return vm.Flush()
			case err != nil:
				vm.report(err)
			case vm.prompt && !vm.compiling:
				vm.write(" ok\n")
			}
		}
		switch {
		case rerr == io.EOF:
			return vm.endOfInput()
		case rerr != nil:
			return vm.newIOError(rerr)
		}
	}
}

func (vm *VM) endOfInput() error {
	if err := vm.Flush(); err != nil {
		return err
	}
	w := vm.latest
	if w == nil {
		return nil
	}
	vm.current = w.name
	err := vm.newError(EOF)
	vm.abort(err)
	return err
}
