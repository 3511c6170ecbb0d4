// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jeranaias/doctalk/internal/keystore"
	"github.com/jeranaias/doctalk/internal/ui/components"
)

// errEphemeralKey is returned by `key set|reset` with --ephemeral.
var errEphemeralKey = errors.New("nothing is stored with --ephemeral")

// readSecret is swapped in tests.
var readSecret = ReadSecret

// HandleKey manages the stored API key. The key itself is never printed,
// only its fingerprint.
func HandleKey(app *App, args Args) error {
	switch args.Subcommand {
	case "set":
		return keySet(app)
	case "reset":
		return keyReset(app)
	default:
		return keyStatus(app)
	}
}

func keySet(app *App) error {
	if app.KeyFile == nil {
		return commandError("key set", ExitUsageError, errEphemeralKey)
	}

	var (
		key string
		err error
	)
	if app.Interactive {
		fmt.Fprintln(app.Stderr, "Get a free API key at "+components.KeyPageURL)
		key, err = readSecret("API key: ")
	} else {
		key, err = readLine(app.Stdin)
	}
	if err != nil {
		return commandError("key set", ExitGeneralError, err)
	}

	if err := app.KeyFile.Save(key); err != nil {
		if errors.Is(err, keystore.ErrEmptyKey) {
			return &UsageError{Reason: "no key entered"}
		}
		return commandError("key set", ExitConfigError, err)
	}
	saved, _ := keystore.Normalize(key)
	log.Info().Str("key_id", keystore.Fingerprint(saved)).Msg("API key saved")

	fmt.Fprintf(app.Stdout, "%s Key %s saved to %s\n",
		SuccessStyle.Render("✓"), keystore.Fingerprint(saved), app.KeyFile.Path())
	if app.KeySource == KeySourceEnvironment {
		fmt.Fprintln(app.Stdout, WarningStyle.Render("DOCTALK_API_KEY / GEMINI_API_KEY is set and takes precedence."))
	}
	return nil
}

func keyReset(app *App) error {
	if app.KeyFile == nil {
		return commandError("key reset", ExitUsageError, errEphemeralKey)
	}
	if !app.KeyFile.Exists() {
		fmt.Fprintln(app.Stdout, "No key stored.")
		return nil
	}
	if err := app.KeyFile.Reset(); err != nil {
		return commandError("key reset", ExitConfigError, err)
	}
	log.Info().Msg("API key removed")
	fmt.Fprintf(app.Stdout, "%s Stored key removed.\n", SuccessStyle.Render("✓"))
	return nil
}

func keyStatus(app *App) error {
	key, err := app.Keys.Load()
	switch {
	case errors.Is(err, keystore.ErrNoKey):
		fmt.Fprintln(app.Stdout, "No key stored. Run `doctalk key set` or set DOCTALK_API_KEY.")
		return nil
	case err != nil:
		return commandError("key status", ExitConfigError, err)
	}

	fmt.Fprintf(app.Stdout, "%s%s\n", RenderLabel("Key"), keystore.Fingerprint(key))
	source := app.KeySource
	if source == KeySourceFile && app.KeyFile != nil {
		source += " (" + app.KeyFile.Path() + ")"
	}
	fmt.Fprintf(app.Stdout, "%s%s\n", RenderLabel("Source"), source)
	return nil
}
