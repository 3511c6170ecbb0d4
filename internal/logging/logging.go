// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the global zerolog logger.
//
// The chat screen owns the terminal, so by default everything goes to a
// log file. Subcommands run with --verbose log to stderr instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls Setup.
type Options struct {
	// Level is trace, debug, info, warn or error. Empty means info.
	Level string
	// File is the log file path. Ignored when Console is set.
	File string
	// Console writes human-readable output to stderr.
	Console bool
}

// Setup installs the global logger and returns a closer for the sink.
func Setup(opts Options) (io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(level)

	if opts.Console {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
		return nopCloser{}, nil
	}

	if opts.File == "" {
		log.Logger = zerolog.Nop()
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

// ParseLevel maps a config string to a zerolog level. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// SetLevel changes the global level at runtime, for config reloads.
func SetLevel(s string) error {
	level, err := ParseLevel(s)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
