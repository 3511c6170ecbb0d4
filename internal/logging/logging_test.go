// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()
	prev, level := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(level)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{" WARN ", zerolog.WarnLevel, false},
		{"trace", zerolog.TraceLevel, false},
		{"chatty", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetup_File(t *testing.T) {
	restore(t)
	path := filepath.Join(t.TempDir(), "logs", "doctalk.log")

	closer, err := Setup(Options{Level: "debug", File: path})
	require.NoError(t, err)
	log.Debug().Str("key_id", "key_sha256_deadbeef").Msg("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), "key_sha256_deadbeef")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSetup_LevelFilters(t *testing.T) {
	restore(t)
	path := filepath.Join(t.TempDir(), "doctalk.log")

	closer, err := Setup(Options{Level: "warn", File: path})
	require.NoError(t, err)
	log.Info().Msg("dropped")
	log.Warn().Msg("kept")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestSetup_BadLevel(t *testing.T) {
	restore(t)
	_, err := Setup(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestSetLevel(t *testing.T) {
	restore(t)
	require.NoError(t, SetLevel("error"))
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
	assert.Error(t, SetLevel("nope"))
}
