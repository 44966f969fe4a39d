// Copyright 2011 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/tliron/commonlog"

	"github.com/RobJames44035/piforth/config"
	"github.com/RobJames44035/piforth/forth"
	"github.com/RobJames44035/piforth/store"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("piforth")

func main() {
	configPath := flag.String("c", "piforth.toml", "Configuration file")
	dictionary := flag.String("d", "", "Load dictionary from a FORTH source file")
	execute := flag.String("e", "", "Execute FORTH words and exit")
	forget := flag.String("f", "", "Forget a word's stored definitions before replaying")
	logLevel := flag.String("l", "", "Set log level (none, critical, error, warning, notice, info, debug)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: piforth [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*configPath, *dictionary, *execute, *forget, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "piforth: %v\n", err)
		os.Exit(1)
	}
}

func configureLog(cfg config.Log, override string) error {
	name := cfg.Level
	if override != "" {
		name = override
	}
	level, err := config.ParseLevel(name)
	if err != nil {
		return err
	}
	var path *string
	if cfg.File != "" {
		path = &cfg.File
	}
	commonlog.Configure(0, path)
	commonlog.SetMaxLevel(level)
	return nil
}

func run(configPath, dictionary, execute, forget, logLevel string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := configureLog(cfg.Log, logLevel); err != nil {
		return err
	}

	ctx := context.Background()
	var db *store.Store
	if cfg.Store.Path != "" {
		if db, err = store.Open(ctx, cfg.Store.Path); err != nil {
			return err
		}
		defer db.Close()
	}
	if forget != "" {
		if db == nil {
			return fmt.Errorf("-f %s: no store configured", forget)
		}
		n, err := db.Forget(ctx, forget)
		if err != nil {
			return err
		}
		log.Infof("forgot %d definitions of %s", n, forget)
	}

	interactive := execute == "" && isatty.IsTerminal(os.Stdin.Fd())
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	var in io.Reader = os.Stdin
	if execute != "" {
		in = strings.NewReader(execute + "\n")
	}
	opts := []forth.Option{
		forth.WithStackDepth(cfg.VM.StackDepth),
		forth.WithBase(cfg.VM.Base),
		forth.WithPrompt(cfg.VM.Prompt && interactive),
		forth.WithColor(color),
	}
	if db != nil {
		opts = append(opts, forth.WithRecorder(db))
	}
	vm := forth.NewVM(in, colorable.NewColorableStdout(), opts...)

	if db != nil {
		words, err := db.Words(ctx)
		if err != nil {
			return err
		}
		if err := vm.Replay(words); err != nil {
			return fmt.Errorf("replaying %s: %w", cfg.Store.Path, err)
		}
		log.Infof("replayed %d definitions from %s", len(words), cfg.Store.Path)
	}
	if cfg.Store.Snapshot != "" {
		s, err := store.LoadSnapshot(cfg.Store.Snapshot)
		if err != nil {
			return err
		}
		if s != nil {
			if db != nil {
				s.Words = nil // already replayed from the database
			}
			if err := vm.Restore(*s); err != nil {
				return fmt.Errorf("restoring %s: %w", cfg.Store.Snapshot, err)
			}
			log.Infof("restored %s", cfg.Store.Snapshot)
		}
	}
	if dictionary != "" {
		src, err := os.ReadFile(dictionary)
		if err != nil {
			return err
		}
		if err := vm.Evaluate(string(src)); err != nil && !errors.Is(err, forth.Bye) {
			return fmt.Errorf("%s: %w", dictionary, err)
		}
		log.Infof("loaded %s", dictionary)
	}

	if err := vm.Run(); err != nil {
		return err
	}
	if cfg.Store.Snapshot != "" {
		if err := store.SaveSnapshot(cfg.Store.Snapshot, vm.Snapshot()); err != nil {
			return err
		}
	}
	log.Info("bye")
	return nil
}
