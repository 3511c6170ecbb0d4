// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/jeranaias/doctalk/internal/assistant"
	"github.com/jeranaias/doctalk/internal/config"
	"github.com/jeranaias/doctalk/internal/gemini"
	"github.com/jeranaias/doctalk/internal/keystore"
	"github.com/jeranaias/doctalk/internal/logging"
	"github.com/jeranaias/doctalk/internal/reply"
	"github.com/jeranaias/doctalk/internal/storage"
)

// Key sources reported by `key status`.
const (
	KeySourceFile        = "file"
	KeySourceEnvironment = "environment"
	KeySourceSession     = "session"
)

// Assistant answers one message. Failures arrive as reply kinds.
type Assistant interface {
	Send(ctx context.Context, text, image, apiKey string) reply.Reply
}

// App bundles everything a command needs. Tests build it directly.
type App struct {
	Config *config.Config

	// Keys is the store the commands read and write. KeyFile is the
	// on-disk store, nil in ephemeral mode.
	Keys      keystore.KeyStore
	KeyFile   *keystore.FileKeyStore
	KeySource string

	Assistant Assistant

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Interactive is true when stdin is a terminal.
	Interactive bool
	// Pretty is true when stdout is a terminal and gets rendered markdown.
	Pretty bool

	closers []io.Closer
}

// LogMode picks where NewApp sends logs.
type LogMode int

const (
	// LogToFile writes JSON lines to the configured log file.
	LogToFile LogMode = iota
	// LogToConsole writes human-readable lines to stderr.
	LogToConsole
)

// NewApp loads config, installs the logger and builds the key store and
// assistant for args. The chat screen always logs to file since it owns
// the terminal.
func NewApp(args Args, mode LogMode) (*App, error) {
	loaded, err := config.Load()
	if err != nil {
		return nil, commandError("", ExitConfigError, err)
	}
	cfg := args.Apply(loaded)
	if err := cfg.Validate(); err != nil {
		return nil, commandError("", ExitConfigError, fmt.Errorf("invalid flags: %w", err))
	}

	app := &App{
		Config:      cfg,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: IsTTY(),
		Pretty:      IsStdoutTTY(),
	}

	if err := app.setupLogging(mode); err != nil {
		return nil, commandError("", ExitConfigError, err)
	}
	if err := app.setupKeys(args.Ephemeral); err != nil {
		app.Close()
		return nil, commandError("", ExitConfigError, err)
	}

	app.Assistant = NewAssistant(cfg)

	log.Debug().
		Str("config", cfg.String()).
		Str("key_source", app.KeySource).
		Bool("ephemeral", args.Ephemeral).
		Msg("doctalk starting")
	return app, nil
}

// NewAssistant builds the Gemini-backed assistant for cfg's model and
// request timeout.
func NewAssistant(cfg *config.Config) *assistant.Service {
	composer := gemini.NewComposer(gemini.NewClientFactory(nil)).WithModel(cfg.Gemini.Model)
	return assistant.New(composer).WithTimeout(cfg.RequestTimeout())
}

func (a *App) setupLogging(mode LogMode) error {
	opts := logging.Options{Level: a.Config.Log.Level}
	if mode == LogToConsole {
		opts.Console = true
	} else {
		path, err := a.Config.LogPath()
		if err != nil {
			return err
		}
		opts.File = path
	}
	closer, err := logging.Setup(opts)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, closer)
	return nil
}

// setupKeys chooses the key store. A key from the environment is never
// written to disk; ephemeral mode keeps any typed key in memory.
func (a *App) setupKeys(ephemeral bool) error {
	envKey := a.Config.Gemini.APIKey
	if !ephemeral {
		path, err := keystore.DefaultPath()
		if err != nil {
			return err
		}
		a.KeyFile = keystore.NewFileKeyStore(path)
	}

	switch {
	case envKey != "":
		a.Keys = keystore.NewMemoryKeyStore(envKey)
		a.KeySource = KeySourceEnvironment
	case ephemeral:
		a.Keys = keystore.NewMemoryKeyStore("")
		a.KeySource = KeySourceSession
	default:
		a.Keys = a.KeyFile
		a.KeySource = KeySourceFile
	}
	return nil
}

// OpenHistory opens the transcript store, or returns nil when history is
// disabled.
func (a *App) OpenHistory() (*storage.HistoryStore, error) {
	if !a.Config.Storage.HistoryEnabled {
		return nil, nil
	}
	path, err := a.Config.HistoryPath()
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store)
	return store, nil
}

// LoadKey returns the current key, or ErrNoKey.
func (a *App) LoadKey() (string, error) {
	key, err := a.Keys.Load()
	if errors.Is(err, keystore.ErrNoKey) {
		return "", ErrNoKey
	}
	return key, err
}

// Close releases the log file and any opened stores, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
