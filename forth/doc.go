// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

// Package forth implements the PiFORTH virtual machine.
//
// The PiFORTH VM is a FORTH machine with 32-bit signed cells,
// two 32-cell stacks and 64 KB of big-endian, byte-addressed
// memory.  The first memory cell holds BASE.
//
// Numbers wider than a cell are double-cell values: two cells
// on the stack, the low cell below the high cell.  The Double
// type and the Compose and Decompose functions convert between
// a cell pair and the int64 it represents; the arithmetic
// methods of Double compose both operands, operate on 64 bits
// and decompose the result.  Addition, subtraction,
// multiplication and negation wrap around silently.  Division
// truncates toward zero and traps with ZeroDivision when the
// divisor is zero; dividing the most negative value by -1
// wraps to the most negative value, with a zero remainder.
//
// The outer interpreter reads a line at a time.  A number
// ending in a dot is a double-cell literal: "1000000000000."
// pushes two cells.  Traps other than BYE are printed, both
// stacks are cleared and interpretation resumes with the next
// line.
//
// Colon definitions compile to a list of instructions, run by
// an inner interpreter that keeps return addresses on the Go
// stack, not on the return stack.  Only DO loops and >R use
// the return stack.
//
// The built-in words.  Most operate as described in DPANS,
// others are commented.
//
//	Stack
//	DUP DROP SWAP OVER ROT -ROT NIP TUCK PICK ROLL DEPTH ?DUP
//	2DUP 2DROP 2SWAP 2OVER >R R> R@ RDROP I J
//
//	Memory
//	@ ! C@ C! 2@ 2! +! HERE ALLOT , C, BASE
//
//	Single cell
//	= <> < > U< U> 0< 0> 0= 0<> INVERT AND OR XOR
//	LSHIFT RSHIFT 2* 2/ 1+ 1- + - * / MOD /MOD
//	NEGATE ABS MIN MAX
//
//	Mixed precision
//	S>D D>S M* UM* SM/REM FM/MOD UM/MOD */ */MOD
//
//	Double cell
//	D+      ( d1 d2 -- d3 )
//	D-      ( d1 d2 -- d3 )
//	D*      ( d1 d2 -- d3 )
//	D/      ( d1 d2 -- d3 )			\ truncating
//	DMOD    ( d1 d2 -- d3 )			\ sign of d1
//	D/MOD   ( d1 d2 -- d-rem d-quot )
//	DNEGATE DABS D2* D2/ DMAX DMIN D< D> D= D0= D0<
//
//	I/O
//	. U. D. UD. .S EMIT TYPE KEY WORDS
//	TRACE    ( flag -- )			\ log each word executed
//	BYE
//
//	Compiling
//	: ; IMMEDIATE [ ] LITERAL ['] ' EXECUTE RECURSE EXIT
//	CREATE VARIABLE 2VARIABLE CONSTANT 2CONSTANT
//	IF ELSE THEN BEGIN UNTIL AGAIN WHILE REPEAT
//	DO ?DO LOOP +LOOP LEAVE ( \ .( ."
//
// Further words are defined in FORTH at start-up.
package forth
