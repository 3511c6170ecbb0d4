// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/peterh/liner"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/doctalk/internal/attachment"
	"github.com/jeranaias/doctalk/internal/config"
	"github.com/jeranaias/doctalk/internal/keystore"
	"github.com/jeranaias/doctalk/internal/model"
	"github.com/jeranaias/doctalk/internal/reply"
	"github.com/jeranaias/doctalk/internal/storage"
	"github.com/jeranaias/doctalk/internal/ui/chat"
	"github.com/jeranaias/doctalk/internal/ui/components"
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// =============================================================================
// LINE INPUT
// =============================================================================

// lineReader is the part of liner.State the REPL uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	PasswordPrompt(prompt string) (string, error)
	AppendHistory(item string)
}

// ChatCLI wraps liner with input history persisted in the data dir.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a line editor. An empty historyFile keeps history in
// memory only.
func NewChatCLI(historyFile string) *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	c := &ChatCLI{line: line, historyFile: historyFile}
	c.LoadHistory()
	return c
}

// LoadHistory loads input history from file.
func (c *ChatCLI) LoadHistory() {
	if c.historyFile == "" {
		return
	}
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// SaveHistory persists input history with 0600 permissions.
func (c *ChatCLI) SaveHistory() {
	if c.historyFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		log.Debug().Err(err).Msg("could not save input history")
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// SESSION
// =============================================================================

// chatSession is one line-mode conversation. It mirrors the chat screen:
// same slash commands, same status updates, same transcript store.
type chatSession struct {
	app     *App
	in      lineReader
	out     io.Writer
	conv    *model.Conversation
	history *storage.HistoryStore
	apiKey  string
	image   string
}

// HandleChat runs the line-mode chat until /quit, Ctrl+C or Ctrl+D.
func HandleChat(ctx context.Context, app *App, args Args) error {
	history, err := app.OpenHistory()
	if err != nil {
		return commandError("chat", ExitConfigError, err)
	}

	var historyFile string
	if !args.Ephemeral {
		if dir, err := config.DataDir(); err == nil {
			historyFile = filepath.Join(dir, "chat_history")
		}
	}
	input := NewChatCLI(historyFile)
	defer input.Close()

	s := &chatSession{
		app:     app,
		in:      input.line,
		out:     app.Stdout,
		conv:    model.NewConversation(),
		history: history,
	}
	return s.run(ctx)
}

func (s *chatSession) run(ctx context.Context) error {
	fmt.Fprintln(s.out, TitleStyle.Render("Doc Talk 🩺"))
	fmt.Fprintln(s.out, DimStyle.Render("Ask a health question. /help for commands, Ctrl+D to leave."))

	if err := s.ensureKey(""); err != nil {
		return err
	}

	for {
		prompt := "you> "
		if s.image != "" {
			prompt = "you [📷]> "
		}
		line, err := s.in.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return commandError("chat", ExitGeneralError, err)
		}
		if strings.TrimSpace(line) != "" {
			s.in.AppendHistory(line)
		}

		cont, err := s.handleLine(ctx, line)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

// ensureKey loads the key, prompting with hidden input when none is
// stored. notice is printed before the prompt.
func (s *chatSession) ensureKey(notice string) error {
	if notice == "" {
		key, err := s.app.LoadKey()
		if err == nil {
			s.apiKey = key
			return nil
		}
		if !errors.Is(err, ErrNoKey) {
			return commandError("chat", ExitConfigError, err)
		}
	} else {
		fmt.Fprintln(s.out, WarningStyle.Render(notice))
	}

	fmt.Fprintln(s.out, "Get a free API key at "+components.KeyPageURL)
	for {
		key, err := s.in.PasswordPrompt("API key: ")
		if err != nil {
			return commandError("chat", ExitAuthError, ErrNoKey)
		}
		key, err = keystore.Normalize(key)
		if err != nil {
			continue
		}
		s.apiKey = key
		if err := s.app.Keys.Save(key); err != nil {
			fmt.Fprintln(s.out, WarningStyle.Render("Key kept for this session only: "+err.Error()))
		}
		return nil
	}
}

// handleLine processes one input line. It returns false to end the chat.
func (s *chatSession) handleLine(ctx context.Context, line string) (bool, error) {
	if name, arg, ok := chat.ParseCommand(line); ok {
		return s.runCommand(name, arg)
	}
	if strings.TrimSpace(line) == "" && s.image == "" {
		return true, nil
	}
	return true, s.send(ctx, line)
}

func (s *chatSession) send(ctx context.Context, text string) error {
	image := s.image
	s.image = ""

	userMsg := s.conv.AddUserMessage(text, image)
	s.conv.MarkDelivered(userMsg.ID)
	s.persist(userMsg)
	fmt.Fprintln(s.out, DimStyle.Render("Doc Talk is typing..."))

	r := s.app.Assistant.Send(ctx, text, image, s.apiKey)

	s.conv.MarkRead(userMsg.ID)
	s.persistStatus(userMsg.ID, model.StatusRead)
	s.conv.SetConnected(r.Kind != reply.KindConnectivity)

	if r.IsQuota() {
		if err := s.app.Keys.Reset(); err != nil {
			log.Warn().Err(err).Msg("could not remove exhausted API key")
		}
		s.apiKey = ""
		return s.ensureKey("Quota exhausted for this key. Enter a different key to continue.")
	}

	bot := s.conv.AddAssistantMessage(r.Text)
	s.persist(bot)
	fmt.Fprint(s.out, AssistantStyle.Render("Doc Talk")+" "+DimStyle.Render(bot.FormatTime())+"\n")
	s.app.displayReply(r.Text)
	return nil
}

func (s *chatSession) runCommand(name, arg string) (bool, error) {
	switch name {
	case "/attach":
		if arg == "" {
			fmt.Fprintln(s.out, "Usage: /attach PATH")
			return true, nil
		}
		uri, err := attachment.FromFile(arg)
		if err != nil {
			fmt.Fprintln(s.out, WarningStyle.Render("Could not attach "+arg+": "+err.Error()))
			return true, nil
		}
		s.image = uri
		fmt.Fprintln(s.out, "📷 "+attachment.Describe(uri)+" attached. Type a caption or press enter.")

	case "/detach":
		if s.image == "" {
			fmt.Fprintln(s.out, "No image attached.")
		} else {
			s.image = ""
			fmt.Fprintln(s.out, "Image removed.")
		}

	case "/reset":
		if err := s.app.Keys.Reset(); err != nil {
			fmt.Fprintln(s.out, WarningStyle.Render("Could not remove key: "+err.Error()))
			return true, nil
		}
		s.apiKey = ""
		return true, s.ensureKey("Stored key removed.")

	case "/clear":
		s.conv.Clear()
		if s.history != nil {
			if _, err := s.history.Clear(); err != nil {
				fmt.Fprintln(s.out, WarningStyle.Render("Could not clear saved history: "+err.Error()))
				return true, nil
			}
		}
		fmt.Fprintln(s.out, "Transcript cleared.")

	case "/copy":
		last := s.conv.LastAssistant()
		if last == nil {
			fmt.Fprintln(s.out, "Nothing to copy yet.")
			return true, nil
		}
		if err := writeClipboard(last.Text); err != nil {
			fmt.Fprintln(s.out, WarningStyle.Render("Clipboard unavailable: "+err.Error()))
			return true, nil
		}
		fmt.Fprintln(s.out, "Last reply copied to clipboard.")

	case "/help":
		fmt.Fprintln(s.out, chat.HelpText())

	case "/quit", "/exit":
		return false, nil

	default:
		fmt.Fprintln(s.out, "Unknown command "+name+" (try /help)")
	}
	return true, nil
}

func (s *chatSession) persist(msg *model.Message) {
	if s.history == nil {
		return
	}
	if err := s.history.Append(msg); err != nil {
		log.Warn().Err(err).Str("id", msg.ID).Msg("could not save message")
	}
}

func (s *chatSession) persistStatus(id string, status model.Status) {
	if s.history == nil {
		return
	}
	if _, err := s.history.UpdateStatus(id, status); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("could not save message status")
	}
}
