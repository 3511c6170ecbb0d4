// doctalk - a health chat assistant for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/doctalk/internal/cli"
	"github.com/jeranaias/doctalk/internal/config"
	"github.com/jeranaias/doctalk/internal/ui/chat"
	"github.com/jeranaias/doctalk/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	cmd, args, err := cli.Parse(argv)
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		return cli.ExitCode(err)
	}

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
		return cli.ExitSuccess
	}

	// The chat screen owns the terminal, so it always logs to file.
	mode := cli.LogToFile
	if args.Verbose && cmd != cli.CmdTUI {
		mode = cli.LogToConsole
	}
	app, err := cli.NewApp(args, mode)
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		return cli.ExitCode(err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case cli.CmdAsk:
		err = cli.HandleAsk(ctx, app, args)
	case cli.CmdChat:
		err = cli.HandleChat(ctx, app, args)
	case cli.CmdKey:
		err = cli.HandleKey(app, args)
	case cli.CmdHistory:
		err = cli.HandleHistory(app, args)
	case cli.CmdConfig:
		err = cli.HandleConfig(app, args)
	default:
		err = runTUI(ctx, app, args)
	}
	if err != nil {
		log.Error().Err(err).Str("command", cmd.String()).Msg("command failed")
		cli.DisplayError(os.Stderr, err)
		return cli.ExitCode(err)
	}
	return cli.ExitSuccess
}

// runTUI starts the full-screen chat and reloads settings when the config
// file changes.
func runTUI(ctx context.Context, app *cli.App, args cli.Args) error {
	if !cli.IsTTY() || !cli.IsStdoutTTY() {
		return &cli.TTYRequiredError{Operation: "open the chat screen"}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := app.Config
	opts := chat.Options{
		Theme:          styles.NewTheme(cfg.UI.Theme),
		Assistant:      app.Assistant,
		Keys:           app.Keys,
		RestoreLimit:   cfg.Storage.RestoreLimit,
		ShowTimestamps: cfg.UI.ShowTimestamps,
		Context:        ctx,
	}
	history, err := app.OpenHistory()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	if history != nil {
		opts.History = history
	}

	p := tea.NewProgram(chat.New(opts), tea.WithAltScreen(), tea.WithContext(ctx))

	if path, err := config.ConfigPath(); err == nil {
		err := config.Watch(ctx, path, config.DefaultDebounce, func(reloaded *config.Config, err error) {
			msg := chat.ConfigReloadedMsg{Err: err}
			if err == nil {
				reloaded = args.Apply(reloaded)
				if msg.Err = reloaded.Validate(); msg.Err == nil {
					msg.Config = reloaded
					msg.Assistant = cli.NewAssistant(reloaded)
				}
			}
			p.Send(msg)
		})
		if err != nil {
			log.Warn().Err(err).Msg("config hot reload disabled")
		}
	}

	log.Info().Str("model", cfg.Gemini.Model).Bool("history", history != nil).Msg("chat screen started")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("chat screen failed: %w", err)
	}
	return nil
}
