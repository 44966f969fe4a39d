// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

/*
Bootstrap seeds a dictionary database from FORTH source.

Usage:

	./bootstrap piforth.db <boot.4th
*/
package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/RobJames44035/piforth/forth"
	"github.com/RobJames44035/piforth/store"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalln("usage: bootstrap db <source")
	}
	code, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalln(err)
	}
	db, err := store.Open(context.Background(), os.Args[1])
	if err != nil {
		log.Fatalln(err)
	}
	defer db.Close()

	vm := forth.NewVM(os.Stdin, os.Stdout, forth.WithRecorder(db))
	if err := vm.Evaluate(string(code)); err != nil {
		db.Close()
		log.Fatalln(err)
	}
	if err := vm.Flush(); err != nil {
		db.Close()
		log.Fatalln(err)
	}
	log.Println(len(vm.Snapshot().Words), "definitions")
}
