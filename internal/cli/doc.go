// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-TUI commands of
// doctalk.
//
// # Key Types
//
//   - Command: enumeration of the available commands
//   - Args: parsed global and command-specific flags
//   - App: config, key store, assistant and I/O shared by every command
//
// # Usage
//
//	cmd, args, err := cli.Parse(os.Args[1:])
//	app, err := cli.NewApp(args, cli.LogToFile)
//	switch cmd {
//	case cli.CmdAsk:
//	    err = cli.HandleAsk(ctx, app, args)
//	case cli.CmdChat:
//	    err = cli.HandleChat(ctx, app, args)
//	}
//
// # Commands
//
//   - ask: one question, optionally with an image
//   - chat: line-mode chat with liner input history
//   - key: set, reset or inspect the stored API key
//   - history: print, export or clear the saved transcript
//   - config: show the effective settings or create the file
//
// Errors carry an exit code (see ExitCode) and are printed by
// DisplayError as "Error: ...".
package cli
