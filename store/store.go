// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

// Package store keeps the dictionary of a PiFORTH VM in an
// SQLite database.
//
// Definitions are only ever appended, so replaying them in
// order rebuilds the dictionary with the same shadowing the
// user saw.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/jmoiron/sqlx"
	"github.com/tliron/commonlog"

	"github.com/RobJames44035/piforth/forth"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS words (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	name   TEXT    NOT NULL,
	source TEXT    NOT NULL,
	base   INTEGER NOT NULL DEFAULT 10,
	hash   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS words_name ON words (name COLLATE NOCASE, id);
`

var log = commonlog.GetLogger("piforth.store")

// Definition is one stored definition.
type Definition struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	Source string `db:"source"`
	Base   int32  `db:"base"`
	Hash   int64  `db:"hash"`
}

// WordSource returns d in the form the VM replays.
func (d Definition) WordSource() forth.WordSource {
	return forth.WordSource{Name: d.Name, Source: d.Source, Base: forth.Cell(d.Base)}
}

// Store is a dictionary database.  It implements forth.Recorder.
type Store struct {
	db *sqlx.DB
}

var _ forth.Recorder = (*Store)(nil)

// Open opens or creates the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create schema in %s: %w", path, err)
	}
	log.Debugf("opened %s", path)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Fingerprint hashes the source of w together with its base.
func Fingerprint(w forth.WordSource) int64 {
	d := xxhash.New()
	d.WriteString(w.Source)
	d.Write([]byte{byte(w.Base)})
	return int64(d.Sum64())
}

// RecordWord appends w unless the newest definition of the
// same name is identical.
func (s *Store) RecordWord(w forth.WordSource) error {
	return s.Record(context.Background(), w)
}

func (s *Store) Record(ctx context.Context, w forth.WordSource) error {
	h := Fingerprint(w)
	var last int64
	err := s.db.GetContext(ctx, &last,
		`SELECT hash FROM words WHERE name = ? COLLATE NOCASE ORDER BY id DESC LIMIT 1`,
		w.Name)
	switch {
	case err == nil && last == h:
		log.Debugf("%s unchanged", w.Name)
		return nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("cannot look up %s: %w", w.Name, err)
	}
	_, err = s.db.NamedExecContext(ctx,
		`INSERT INTO words (name, source, base, hash) VALUES (:name, :source, :base, :hash)`,
		Definition{Name: w.Name, Source: w.Source, Base: int32(w.Base), Hash: h})
	if err != nil {
		return fmt.Errorf("cannot store %s: %w", w.Name, err)
	}
	log.Infof("stored %s", w.Name)
	return nil
}

// Definitions returns all definitions, oldest first.
func (s *Store) Definitions(ctx context.Context) ([]Definition, error) {
	var defs []Definition
	err := s.db.SelectContext(ctx, &defs,
		`SELECT id, name, source, base, hash FROM words ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("cannot list definitions: %w", err)
	}
	return defs, nil
}

// Words returns all definitions in replay order.
func (s *Store) Words(ctx context.Context) ([]forth.WordSource, error) {
	defs, err := s.Definitions(ctx)
	if err != nil {
		return nil, err
	}
	words := make([]forth.WordSource, len(defs))
	for i, d := range defs {
		words[i] = d.WordSource()
	}
	return words, nil
}

// Forget deletes every definition of name and returns how
// many there were.
func (s *Store) Forget(ctx context.Context, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM words WHERE name = ? COLLATE NOCASE`, name)
	if err != nil {
		return 0, fmt.Errorf("cannot forget %s: %w", name, err)
	}
	return res.RowsAffected()
}
