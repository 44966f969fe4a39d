// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

import "strconv"

// List of VM traps for Errno
const (
	Bye = Errno(iota)
	EOF
	StackOverflow
	StackUnderflow
	RStackOverflow
	RStackUnderflow
	IllegalAddress
	UnalignedAddress
	ZeroDivision
	UndefinedWord
	CompileOnly
	ControlMismatch
	IOError
)

var strError = []string{
	"BYE",
	"EOF",
	"stack overflow",
	"stack underflow",
	"return stack overflow",
	"return stack underflow",
	"illegal address",
	"unaligned address",
	"division by zero",
	"undefined word",
	"compile-only word",
	"unbalanced control structure",
	"I/O error",
}

// Errno describes the reason for a VM trap.
type Errno int

func (e Errno) Error() string {
	if e < 0 || int(e) >= len(strError) {
		return "errno " + strconv.Itoa(int(e))
	}
	return strError[e]
}

func rstackError(e error) error {
	if e == nil {
		return nil
	}
	return e.(Errno) + (RStackOverflow - StackOverflow)
}

// Error describes the cause and the context of a VM trap.
type Error struct {
	Errno  Errno  // nature of the trap
	Err    error  // I/O error when Errno is IOError
	Word   string // word being executed or interpreted
	Addr   Cell   // address when Errno is IllegalAddress or UnalignedAddress
	Stack  []Cell // data stack
	RStack []Cell // return stack
}

func (e *Error) Error() string {
	var msg string
	if e.Err != nil {
		msg = e.Err.Error()
	} else {
		msg = e.Errno.Error()
		switch e.Errno {
		case IllegalAddress, UnalignedAddress:
			msg += " " + strconv.FormatUint(uint64(uCell(e.Addr)), 16)
		}
	}
	if e.Word != "" {
		msg = e.Word + ": " + msg
	}
	return msg
}

// Unwrap lets errors.Is match both the Errno and a wrapped I/O error.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Errno, e.Err}
	}
	return []error{e.Errno}
}

func (vm *VM) newErrorFull(errno Errno, err error, addr Cell) error {
	return &Error{
		Errno:  errno,
		Err:    err,
		Word:   vm.current,
		Addr:   addr,
		Stack:  append([]Cell(nil), vm.stack...),
		RStack: append([]Cell(nil), vm.rstack...),
	}
}

func (vm *VM) newErrorAddr(errno Errno, addr Cell) error {
	return vm.newErrorFull(errno, nil, addr)
}

func (vm *VM) newError(errno Errno) error {
	return vm.newErrorAddr(errno, 0)
}

func (vm *VM) newIOError(e error) error {
	return vm.newErrorFull(IOError, e, 0)
}

// trap converts an error returned by a word into an *Error
// carrying the VM context, leaving *Error values alone.
func (vm *VM) trap(err error) error {
	switch e := err.(type) {
	case nil, *Error:
		return err
	case Errno:
		return vm.newError(e)
	default:
		return vm.newIOError(err)
	}
}
