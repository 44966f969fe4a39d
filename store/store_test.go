// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package store

import (
	"bytes"
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/RobJames44035/piforth/forth"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "words.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecord(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sq := forth.WordSource{Name: "sq", Source: ": sq dup * ;", Base: 10}
	k := forth.WordSource{Name: "k", Source: "1f constant k", Base: 16}
	for _, w := range []forth.WordSource{sq, sq, k} {
		if err := s.Record(ctx, w); err != nil {
			t.Fatal(err)
		}
	}
	defs, err := s.Definitions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(defs) != 2 {
		t.Fatalf("unchanged definition was stored twice:\n%s", spew.Sdump(defs))
	}
	if defs[0].Hash != Fingerprint(sq) || defs[1].Base != 16 {
		t.Errorf("definitions:\n%s", spew.Sdump(defs))
	}

	// a redefinition is appended even if an older one matches
	sq2 := forth.WordSource{Name: "SQ", Source: ": SQ dup * 1+ ;", Base: 10}
	for _, w := range []forth.WordSource{sq2, sq} {
		if err := s.RecordWord(w); err != nil {
			t.Fatal(err)
		}
	}
	words, err := s.Words(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := []forth.WordSource{sq, k, sq2, sq}; !reflect.DeepEqual(words, want) {
		t.Errorf("words:\n%s\nwant:\n%s", spew.Sdump(words), spew.Sdump(want))
	}

	n, err := s.Forget(ctx, "sq")
	if err != nil || n != 3 {
		t.Errorf("Forget = %d, %v, want 3", n, err)
	}
	if words, _ = s.Words(ctx); !reflect.DeepEqual(words, []forth.WordSource{k}) {
		t.Errorf("after Forget:\n%s", spew.Sdump(words))
	}
}

func TestFingerprint(t *testing.T) {
	a := forth.WordSource{Name: "k", Source: "10 constant k", Base: 10}
	b := a
	b.Base = 16
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("fingerprint ignores the base")
	}
	c := a
	c.Name = "other"
	if Fingerprint(a) != Fingerprint(c) {
		t.Error("fingerprint depends on the name")
	}
}

func TestRecordFromVM(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var out bytes.Buffer
	vm := forth.NewVM(strings.NewReader(""), &out, forth.WithRecorder(s))
	if err := vm.Evaluate(": sq dup * ;\nhex : ff+ ff + ; decimal 3 constant three"); err != nil {
		t.Fatal(err)
	}
	words, err := s.Words(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 3 {
		t.Fatalf("stored:\n%s", spew.Sdump(words))
	}

	out.Reset()
	vm2 := forth.NewVM(strings.NewReader(""), &out, forth.WithRecorder(s))
	if err := vm2.Replay(words); err != nil {
		t.Fatal(err)
	}
	if err := vm2.Evaluate("three ff+ sq ."); err != nil {
		t.Fatal(err)
	}
	if out.String() != "66564 " {
		t.Errorf("output %q", out.String())
	}
	// replay is not recorded again
	if defs, _ := s.Definitions(ctx); len(defs) != 3 {
		t.Errorf("replay added definitions:\n%s", spew.Sdump(defs))
	}
}

func TestCreateTableFromVM(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var out bytes.Buffer
	vm := forth.NewVM(strings.NewReader("create t 11 , 22 ,\nt cell+ @ .\n"), &out, forth.WithRecorder(s))
	if err := vm.Run(); err != nil {
		t.Fatal(err)
	}
	words, err := s.Words(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 1 || words[0].Source != "create t 11 , 22 ," {
		t.Fatalf("stored:\n%s", spew.Sdump(words))
	}

	var out2 bytes.Buffer
	vm2 := forth.NewVM(strings.NewReader(""), &out2, forth.WithRecorder(s))
	if err := vm2.Replay(words); err != nil {
		t.Fatal(err)
	}
	if err := vm2.Evaluate("t cell+ @ ."); err != nil {
		t.Fatal(err)
	}
	if out.String() != "22 " || out2.String() != "22 " {
		t.Errorf("output %q, after replay %q", out.String(), out2.String())
	}
}

func TestSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "piforth.snap")
	if s, err := LoadSnapshot(path); s != nil || err != nil {
		t.Fatalf("LoadSnapshot of a missing file = %v, %v", s, err)
	}

	want := forth.State{
		Base:  16,
		Stack: []forth.Cell{1, -1, 0x7fffffff, -0x80000000},
		Words: []forth.WordSource{
			{Name: "sq", Source: ": sq dup * ;", Base: 10},
		},
	}
	if err := SaveSnapshot(path, want); err != nil {
		t.Fatal(err)
	}
	got, err := LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("loaded:\n%s\nwant:\n%s", spew.Sdump(got), spew.Sdump(want))
	}

	// canonical encoding is stable
	var b1, b2 bytes.Buffer
	WriteSnapshot(&b1, want)
	WriteSnapshot(&b2, *got)
	if !bytes.Equal(b1.Bytes(), b2.Bytes()) {
		t.Error("re-encoded snapshot differs")
	}

	if _, err := ReadSnapshot(strings.NewReader("not cbor")); err == nil {
		t.Error("ReadSnapshot accepted garbage")
	}
}

func TestSnapshotRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "piforth.snap")
	var out bytes.Buffer
	vm := forth.NewVM(strings.NewReader(""), &out)
	if err := vm.Evaluate(": cube dup dup * * ; 3 12345678901. "); err != nil {
		t.Fatal(err)
	}
	if err := SaveSnapshot(path, vm.Snapshot()); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSnapshot(path)
	if err != nil || s == nil {
		t.Fatalf("LoadSnapshot = %v, %v", s, err)
	}
	out.Reset()
	vm2 := forth.NewVM(strings.NewReader(""), &out)
	if err := vm2.Restore(*s); err != nil {
		t.Fatal(err)
	}
	if err := vm2.Evaluate("d. cube ."); err != nil {
		t.Fatal(err)
	}
	if out.String() != "12345678901 27 " {
		t.Errorf("output %q", out.String())
	}
}
