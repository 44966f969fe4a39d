// Copyright 2011, 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

// Package config handles piforth.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"
)

// Config is the contents of piforth.toml.
type Config struct {
	Log   Log   `toml:"log"`
	VM    VM    `toml:"vm"`
	Store Store `toml:"store"`
}

type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // empty: stderr
}

type VM struct {
	StackDepth int  `toml:"stack-depth"`
	Base       int  `toml:"base"`
	Prompt     bool `toml:"prompt"`
}

type Store struct {
	Path     string `toml:"path"`     // empty: no dictionary database
	Snapshot string `toml:"snapshot"` // empty: no snapshot
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{
		Log: Log{Level: "warning"},
		VM: VM{
			StackDepth: 32,
			Base:       10,
			Prompt:     true,
		},
		Store: Store{Path: "piforth.db"},
	}
}

// Load reads the file at path over the defaults.  A missing
// file is not an error.
func Load(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	} else if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

var levels = map[string]commonlog.Level{
	"none":     commonlog.None,
	"critical": commonlog.Critical,
	"error":    commonlog.Error,
	"warning":  commonlog.Warning,
	"notice":   commonlog.Notice,
	"info":     commonlog.Info,
	"debug":    commonlog.Debug,
}

// ParseLevel maps a level name to a commonlog level.
func ParseLevel(s string) (commonlog.Level, error) {
	l, ok := levels[strings.ToLower(s)]
	if !ok {
		return commonlog.None, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}

// Validate checks the values that the VM cannot fix up.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.VM.StackDepth < 4 {
		return fmt.Errorf("vm.stack-depth: %d is too small", c.VM.StackDepth)
	}
	if c.VM.Base < 2 || c.VM.Base > 36 {
		return fmt.Errorf("vm.base: %d is not between 2 and 36", c.VM.Base)
	}
	return nil
}
