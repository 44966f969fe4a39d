// Copyright 2011 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package forth

var softcore = `
: true -1 ;
: false 0 ;
: bl 32 ;
: cr 10 emit ;
: space bl emit ;
: spaces 0 max 0 ?do space loop ;

: hex 16 base ! ;
: decimal 10 base ! ;

: cell+ 4 + ;
: cells 2 lshift ;
: aligned 3 + -4 and ;

: <= > 0= ;
: >= < 0= ;
: u<= u> 0= ;
: u>= u< 0= ;
: within ( u ul uh -- flag ) over - >r - r> u< ;
: ?negate ( n1 n2 -- n3 ) 0< if negate then ;
: ? @ . ;

\ calls keep no return address on the rstack
: 2>r swap >r >r ;
: 2r> r> r> swap ;
: 2r@ r> r> 2dup >r >r swap ;

: 2rot ( x1 x2 x3 x4 x5 x6 -- x3 x4 x5 x6 x1 x2 ) 5 roll 5 roll ;
: 2nip ( x1 x2 x3 x4 -- x3 x4 ) 2swap 2drop ;

\ double cell
: m+ ( d1 n -- d2 ) s>d d+ ;
: d0<> d0= 0= ;
: d<> d= 0= ;
: d>= d< 0= ;
: d<= d> 0= ;
: du< ( ud1 ud2 -- flag )
   rot 2dup = if 2drop u< else u> nip nip then ;
`
