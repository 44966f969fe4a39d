// Copyright 2011 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/RobJames44035/piforth/store"
)

func writeConfig(t *testing.T, dbPath string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "piforth.toml")
	conf := fmt.Sprintf("[log]\nlevel = \"none\"\n\n[store]\npath = %q\n", dbPath)
	if err := os.WriteFile(path, []byte(conf), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestForgetFlag(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "words.db")
	conf := writeConfig(t, dbPath)
	if err := run(conf, "", ": sq dup * ; 3 constant three", "", ""); err != nil {
		t.Fatal(err)
	}
	if err := run(conf, "", "three drop", "SQ", ""); err != nil {
		t.Fatal(err)
	}

	db, err := store.Open(context.Background(), dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	words, err := db.Words(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 1 || words[0].Name != "three" {
		t.Errorf("words after -f sq: %v", words)
	}
}

func TestForgetFlagWithoutStore(t *testing.T) {
	if err := run(writeConfig(t, ""), "", "", "sq", ""); err == nil {
		t.Error("-f without a store succeeded")
	}
}
