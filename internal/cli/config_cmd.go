// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/doctalk/internal/config"
)

// HandleConfig shows the effective settings, prints the file path, or
// writes a default config file.
func HandleConfig(app *App, args Args) error {
	switch args.Subcommand {
	case "path":
		return handleConfigPath(app)
	case "init":
		return handleConfigInit(app)
	default:
		return handleConfigShow(app)
	}
}

// handleConfigShow prints the effective config as TOML, with flags and
// environment applied. The API key is never part of the output.
func handleConfigShow(app *App) error {
	path, err := config.ConfigPath()
	if err != nil {
		return commandError("config", ExitConfigError, err)
	}
	fmt.Fprintln(app.Stdout, DimStyle.Render("# effective settings; file: "+path))
	if err := toml.NewEncoder(app.Stdout).Encode(app.Config); err != nil {
		return commandError("config", ExitGeneralError, err)
	}
	if app.Config.Gemini.APIKey != "" {
		fmt.Fprintln(app.Stdout, DimStyle.Render("# API key supplied by the environment"))
	}
	return nil
}

func handleConfigPath(app *App) error {
	path, err := config.ConfigPath()
	if err != nil {
		return commandError("config", ExitConfigError, err)
	}
	fmt.Fprintln(app.Stdout, path)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(app.Stderr, "%s file does not exist yet; `doctalk config init` creates it\n",
			DimStyle.Render("Note:"))
	}
	return nil
}

// handleConfigInit writes defaults without overwriting an existing file.
func handleConfigInit(app *App) error {
	path, err := config.ConfigPath()
	if err != nil {
		return commandError("config init", ExitConfigError, err)
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(app.Stdout, "%s already exists.\n", path)
		return nil
	}
	if err := config.Save(config.Default()); err != nil {
		return commandError("config init", ExitConfigError, err)
	}
	fmt.Fprintf(app.Stdout, "%s Wrote %s\n", SuccessStyle.Render("✓"), path)
	return nil
}
