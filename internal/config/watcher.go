// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 150 * time.Millisecond

// Watch reloads the config file at path whenever it changes and passes the
// result to onChange. Invalid files are reported through onChange as an
// error and the previous configuration stays in effect for the caller.
//
// The parent directory is watched rather than the file so atomic
// rename-into-place saves are seen. Watch returns once the watcher is
// running; it stops when ctx is cancelled.
func Watch(ctx context.Context, path string, debounce time.Duration, onChange func(*Config, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	go func() {
		defer watcher.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		target := filepath.Clean(path)

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				cfg, err := LoadFromPath(path)
				if err != nil {
					log.Warn().Err(err).Str("path", path).Msg("config reload failed")
				} else {
					log.Info().Str("path", path).Msg("config reloaded")
				}
				onChange(cfg, err)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("config watcher error")
			}
		}
	}()

	return nil
}
