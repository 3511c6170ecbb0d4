// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/doctalk/internal/attachment"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// renderMarkdown renders a reply for the terminal at width. It falls back
// to the raw text when glamour fails.
func renderMarkdown(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		log.Debug().Err(err).Msg("markdown renderer unavailable")
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayReply prints a reply, rendered only when stdout is a terminal so
// piped output stays plain.
func (a *App) displayReply(text string) {
	if a.Pretty {
		fmt.Fprint(a.Stdout, renderMarkdown(text, TerminalWidth()))
		return
	}
	fmt.Fprintln(a.Stdout, strings.TrimRight(text, "\n"))
}

// =============================================================================
// ASK HANDLER
// =============================================================================

// HandleAsk sends one question, optionally with an image, and prints the
// reply. Failed replies become errors with an exit code per kind.
func HandleAsk(ctx context.Context, app *App, args Args) error {
	apiKey, err := app.LoadKey()
	if err != nil {
		return commandError("ask", ExitAuthError, err)
	}

	var image string
	if args.Image != "" {
		image, err = attachment.FromFile(args.Image)
		if err != nil {
			return &UsageError{Reason: fmt.Sprintf("cannot attach %s: %v", args.Image, err)}
		}
		log.Debug().Str("image", attachment.Describe(image)).Msg("ask with image")
	}

	r := app.Assistant.Send(ctx, args.Query, image, apiKey)
	if err := replyError("ask", r); err != nil {
		return err
	}
	app.displayReply(r.Text)
	return nil
}
