// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the data directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DOCTALK_HOME", dir)
	for _, name := range []string{
		"DOCTALK_MODEL", "DOCTALK_API_KEY", "GEMINI_API_KEY",
		"DOCTALK_LOG_LEVEL", "DOCTALK_HISTORY", "DOCTALK_REQUEST_TIMEOUT",
	} {
		t.Setenv(name, "")
	}
	return dir
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Zero(t, cfg.RequestTimeout())
	assert.True(t, cfg.Storage.HistoryEnabled)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Gemini, cfg.Gemini)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := isolate(t)

	cfg := Default()
	cfg.Gemini.Model = "gemini-2.0-flash"
	cfg.Gemini.RequestTimeoutSecs = 45
	cfg.Gemini.APIKey = "must-not-be-written"
	cfg.UI.ShowTimestamps = false
	require.NoError(t, Save(cfg))

	path := filepath.Join(dir, "config.toml")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "must-not-be-written")

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", loaded.Gemini.Model)
	assert.Equal(t, 45*time.Second, loaded.RequestTimeout())
	assert.False(t, loaded.UI.ShowTimestamps)
	assert.Empty(t, loaded.Gemini.APIKey)
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Storage.HistoryEnabled)
	assert.Equal(t, "auto", cfg.UI.Theme)
}

func TestLoadFromPath_UnknownKey(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[gemini]\nmodle = \"x\"\n"), 0600))

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini.modle")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty model", func(c *Config) { c.Gemini.Model = " " }, "gemini.model"},
		{"negative timeout", func(c *Config) { c.Gemini.RequestTimeoutSecs = -1 }, "gemini.request_timeout_secs"},
		{"huge timeout", func(c *Config) { c.Gemini.RequestTimeoutSecs = 601 }, "gemini.request_timeout_secs"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"negative restore", func(c *Config) { c.Storage.RestoreLimit = -5 }, "storage.restore_limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("DOCTALK_MODEL", "gemini-exp")
	t.Setenv("GEMINI_API_KEY", " from-gemini ")
	t.Setenv("DOCTALK_LOG_LEVEL", "warn")
	t.Setenv("DOCTALK_HISTORY", "false")
	t.Setenv("DOCTALK_REQUEST_TIMEOUT", "1m")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "gemini-exp", cfg.Gemini.Model)
	assert.Equal(t, "from-gemini", cfg.Gemini.APIKey)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Storage.HistoryEnabled)
	assert.Equal(t, 60, cfg.Gemini.RequestTimeoutSecs)

	t.Setenv("DOCTALK_API_KEY", "from-doctalk")
	t.Setenv("DOCTALK_REQUEST_TIMEOUT", "30")
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "from-doctalk", cfg.Gemini.APIKey)
	assert.Equal(t, 30, cfg.Gemini.RequestTimeoutSecs)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DOCTALK_MODEL=from-dotenv\n"), 0600))
	t.Chdir(t.TempDir())
	// godotenv never overrides variables that are already set, so unset it.
	require.NoError(t, os.Unsetenv("DOCTALK_MODEL"))
	t.Cleanup(func() { os.Unsetenv("DOCTALK_MODEL") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Gemini.Model)
}

func TestPaths(t *testing.T) {
	dir := isolate(t)
	cfg := Default()

	p, err := cfg.HistoryPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "history.db"), p)

	p, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "doctalk.log"), p)

	cfg.Storage.HistoryPath = "/tmp/custom.db"
	p, err = cfg.HistoryPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", p)
}

func TestString_NeverLeaksKey(t *testing.T) {
	cfg := Default()
	cfg.Gemini.APIKey = "secret-value"
	s := cfg.String()
	assert.NotContains(t, s, "secret-value")
	assert.Contains(t, s, `"api_key_set":true`)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, SaveTOML(Default(), path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	require.NoError(t, Watch(ctx, path, 20*time.Millisecond, func(cfg *Config, err error) {
		if err == nil {
			got <- cfg
		}
	}))

	cfg := Default()
	cfg.UI.Theme = "light"
	require.NoError(t, SaveTOML(cfg, path))

	select {
	case reloaded := <-got:
		assert.Equal(t, "light", reloaded.UI.Theme)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not observed")
	}
}
