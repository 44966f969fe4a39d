// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/RobJames44035/piforth/forth"
)

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("store: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// WriteSnapshot encodes s to w.
func WriteSnapshot(w io.Writer, s forth.State) error {
	return encMode.NewEncoder(w).Encode(s)
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (forth.State, error) {
	var s forth.State
	if err := cbor.NewDecoder(r).Decode(&s); err != nil {
		return forth.State{}, fmt.Errorf("store: decode snapshot: %w", err)
	}
	return s, nil
}

// SaveSnapshot writes s to the file at path, replacing it.
func SaveSnapshot(path string, s forth.State) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := WriteSnapshot(f, s); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	log.Debugf("snapshot: %d cells, %d words", len(s.Stack), len(s.Words))
	return os.Rename(tmp, path)
}

// LoadSnapshot reads the snapshot at path.  It returns nil
// if there is no such file.
func LoadSnapshot(path string) (*forth.State, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := ReadSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}
