// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/jeranaias/doctalk/internal/export"
	"github.com/jeranaias/doctalk/internal/model"
	"github.com/jeranaias/doctalk/internal/storage"
)

// previewWidth bounds one history line.
const previewWidth = 72

// HandleHistory prints, exports or clears the saved transcript. It reads
// the file even when history is switched off, but never creates one.
func HandleHistory(app *App, args Args) error {
	path, err := app.Config.HistoryPath()
	if err != nil {
		return commandError("history", ExitConfigError, err)
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(app.Stdout, "No history yet.")
		return nil
	}

	store, err := storage.Open(path)
	if err != nil {
		return commandError("history", ExitConfigError, err)
	}
	defer store.Close()

	if args.Subcommand == "export" {
		return exportHistory(app, store, args)
	}

	if args.Subcommand == "clear" {
		n, err := store.Clear()
		if err != nil {
			return commandError("history clear", ExitGeneralError, err)
		}
		fmt.Fprintf(app.Stdout, "%s Removed %d messages.\n", SuccessStyle.Render("✓"), n)
		return nil
	}

	msgs, err := store.List(args.Limit)
	if err != nil {
		return commandError("history", ExitGeneralError, err)
	}
	if len(msgs) == 0 {
		fmt.Fprintln(app.Stdout, "No history yet.")
		return nil
	}
	for _, msg := range msgs {
		fmt.Fprintln(app.Stdout, formatHistoryLine(msg))
	}
	return nil
}

// exportHistory writes the whole transcript to a file in args.Output, or
// to stdout when Output is "-".
func exportHistory(app *App, store *storage.HistoryStore, args Args) error {
	msgs, err := store.List(0)
	if err != nil {
		return commandError("history export", ExitGeneralError, err)
	}
	if len(msgs) == 0 {
		fmt.Fprintln(app.Stdout, "No history yet.")
		return nil
	}

	opts := export.DefaultOptions()
	opts.OutputDir = args.Output
	opts.IncludeImages = args.WithImages
	exporter, err := export.ForFormat(args.Format, opts)
	if err != nil {
		return &UsageError{Reason: err.Error()}
	}
	transcript := &export.Transcript{Messages: msgs, Model: app.Config.Gemini.Model}

	if args.Output == "-" {
		content, err := exporter.Export(transcript)
		if err != nil {
			return commandError("history export", ExitGeneralError, err)
		}
		_, err = app.Stdout.Write(content)
		return err
	}

	path, err := export.ExportToFile(transcript, exporter, opts)
	if err != nil {
		return commandError("history export", ExitGeneralError, err)
	}
	log.Info().Int("messages", len(msgs)).Str("format", exporter.MimeType()).Msg("transcript exported")
	fmt.Fprintf(app.Stdout, "%s Exported %d messages to %s\n", SuccessStyle.Render("✓"), len(msgs), path)
	return nil
}

// formatHistoryLine renders "03:04 PM  You: text ✓✓".
func formatHistoryLine(msg *model.Message) string {
	speaker := AssistantStyle.Render(msg.Role.DisplayName())
	if msg.Role == model.RoleUser {
		speaker = UserStyle.Render(msg.Role.DisplayName())
	}
	line := DimStyle.Render(msg.FormatTime()) + "  " + speaker + ": " + msg.Preview(previewWidth)
	if msg.HasImage() && msg.Text != "" {
		line += " 📷"
	}
	if msg.Role == model.RoleUser {
		line += " " + DimStyle.Render(msg.Status.Ticks())
	}
	return line
}
