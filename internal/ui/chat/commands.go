// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/doctalk/internal/attachment"
)

// Command describes one slash command.
type Command struct {
	Name  string
	Args  string
	Usage string
}

// Commands lists the slash commands in help order.
var Commands = []Command{
	{Name: "/attach", Args: "PATH", Usage: "attach an image to the next message"},
	{Name: "/detach", Usage: "drop the pending image"},
	{Name: "/reset", Usage: "forget the stored API key"},
	{Name: "/clear", Usage: "clear the transcript"},
	{Name: "/copy", Usage: "copy the last reply"},
	{Name: "/help", Usage: "show commands"},
	{Name: "/quit", Usage: "exit"},
}

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// ParseCommand splits "/name arg..." input. Text that does not start with
// a slash, or a lone "/", is not a command.
func ParseCommand(input string) (name, arg string, ok bool) {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") || len(trimmed) == 1 {
		return "", "", false
	}
	name, arg, _ = strings.Cut(trimmed, " ")
	return strings.ToLower(name), strings.TrimSpace(arg), true
}

// HelpText is the single-line command summary.
func HelpText() string {
	parts := make([]string, 0, len(Commands))
	for _, c := range Commands {
		if c.Args != "" {
			parts = append(parts, c.Name+" "+c.Args)
		} else {
			parts = append(parts, c.Name)
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) runCommand(name, arg string) (tea.Model, tea.Cmd) {
	log.Debug().Str("command", name).Msg("slash command")

	switch name {
	case "/attach":
		if arg == "" {
			m.notice = "Usage: /attach PATH"
			return m, nil
		}
		m.notice = "Attaching " + arg + "..."
		return m, attachCmd(arg)

	case "/detach":
		if m.input.Image() == "" {
			m.notice = "No image attached."
			return m, nil
		}
		m.input.Detach()
		m.notice = "Image removed."
		m.layout()
		return m, nil

	case "/reset":
		if err := m.store.Reset(); err != nil {
			m.notice = "Could not remove key: " + err.Error()
			return m, nil
		}
		m.apiKey = ""
		m.input.SetDisabled(true)
		m.notice = ""
		return m, m.keyModal.Open("", false)

	case "/clear":
		m.conversation.Clear()
		if m.history != nil {
			if _, err := m.history.Clear(); err != nil {
				m.notice = "Transcript cleared on screen only: " + err.Error()
				m.refreshViewport()
				return m, nil
			}
		}
		m.notice = "Transcript cleared."
		m.refreshViewport()
		return m, nil

	case "/copy":
		last := m.conversation.LastAssistant()
		if last == nil {
			m.notice = "Nothing to copy yet."
			return m, nil
		}
		return m, copyCmd(last.Text)

	case "/help":
		m.notice = HelpText()
		return m, nil

	case "/quit", "/exit":
		return m, tea.Quit
	}

	m.notice = "Unknown command " + name + " (try /help)"
	return m, nil
}

func attachCmd(path string) tea.Cmd {
	return func() tea.Msg {
		uri, err := attachment.FromFile(path)
		return AttachResultMsg{Path: path, Image: uri, Err: err}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(text) == "" {
			return ClipboardMsg{Err: errors.New("last reply is empty")}
		}
		return ClipboardMsg{Err: writeClipboard(text)}
	}
}
