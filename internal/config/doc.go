// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for doctalk.
//
// # Configuration Precedence
//
// Configuration is resolved from (highest first):
//   - Environment variables (DOCTALK_*, GEMINI_API_KEY)
//   - .env files in the working directory and the data directory
//   - ~/.doctalk/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	model := cfg.Gemini.Model
//
// Watch reloads the file when it changes on disk and hands the new
// configuration to a callback.
package config
