// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/doctalk/internal/keystore"
	"github.com/jeranaias/doctalk/internal/logging"
	"github.com/jeranaias/doctalk/internal/model"
	"github.com/jeranaias/doctalk/internal/reply"
	"github.com/jeranaias/doctalk/internal/ui/components"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// SendCmd performs one round-trip for a user message and reports it as a
// ReplyMsg. The assistant never fails; errors arrive as reply kinds.
func (m Model) SendCmd(userMessageID, text, image string) tea.Cmd {
	assistant, ctx, apiKey := m.assistant, m.ctx, m.apiKey
	return func() tea.Msg {
		if assistant == nil {
			return ReplyMsg{UserMessageID: userMessageID, Reply: reply.Map("", nil)}
		}
		return ReplyMsg{
			UserMessageID: userMessageID,
			Reply:         assistant.Send(ctx, text, image, apiKey),
		}
	}
}

func (m Model) loadHistoryCmd() tea.Cmd {
	if m.history == nil || m.restoreLimit <= 0 {
		return nil
	}
	history, limit := m.history, m.restoreLimit
	return func() tea.Msg {
		msgs, err := history.List(limit)
		return HistoryLoadedMsg{Messages: msgs, Err: err}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case HistoryLoadedMsg:
		return m.handleHistory(msg)

	case AttachResultMsg:
		if msg.Err != nil {
			m.notice = "Could not attach " + msg.Path + ": " + msg.Err.Error()
			return m, nil
		}
		m.input.Attach(msg.Image)
		m.notice = ""
		m.layout()
		return m, nil

	case ClipboardMsg:
		if msg.Err != nil {
			m.notice = "Clipboard unavailable: " + msg.Err.Error()
		} else {
			m.notice = "Last reply copied to clipboard."
		}
		return m, nil

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg)

	case spinner.TickMsg:
		if !m.conversation.Typing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.keyModal.IsOpen() {
		var cmd tea.Cmd
		m.keyModal, cmd = m.keyModal.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.theme.SetSize(msg.Width, msg.Height)
	m.header.Width = msg.Width
	m.input.SetWidth(msg.Width)
	m.layout()
	m.refreshViewport()
	return m, nil
}

// layout sizes the viewport to whatever the header, notice line and
// input bar leave over.
func (m *Model) layout() {
	h := m.height - lipgloss.Height(m.header.View()) - 1 - m.input.Height()
	if h < 3 {
		h = 3
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.keyModal.IsOpen() {
		return m.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Key):
		return m, m.keyModal.Open("", m.apiKey != "")

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case m.keys.isScroll(msg):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		if !m.keyModal.CanSubmit() {
			return m, nil
		}
		return m.saveKey(m.keyModal.Value())

	case key.Matches(msg, m.keys.Cancel):
		if m.keyModal.Dismissable() {
			m.keyModal.Close()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.keyModal, cmd = m.keyModal.Update(msg)
	return m, cmd
}

// saveKey stores a submitted key and unlocks the input. A store failure
// keeps the key for this session only.
func (m Model) saveKey(apiKey string) (tea.Model, tea.Cmd) {
	m.apiKey = apiKey
	m.keyModal.Close()
	m.input.SetDisabled(m.conversation.Typing)
	m.notice = ""
	if err := m.store.Save(apiKey); err != nil {
		log.Warn().Err(err).Msg("could not persist API key")
		m.notice = "Key kept for this session only: " + err.Error()
	} else {
		log.Info().Str("key_id", keystore.Fingerprint(apiKey)).Msg("API key saved")
	}
	return m, nil
}

// submit handles Enter in the input bar: a /command or a message.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.input.Disabled() {
		return m, nil
	}
	text := m.input.Value()
	if cmdName, arg, ok := ParseCommand(text); ok {
		m.input.SetValue("")
		return m.runCommand(cmdName, arg)
	}
	return m.send(text, m.input.Image())
}

// send appends the user message and dispatches the request. Empty text
// with no image is ignored.
func (m Model) send(text, image string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(text) == "" && image == "" {
		return m, nil
	}
	if m.conversation.Typing {
		return m, nil
	}

	userMsg := m.conversation.AddUserMessage(text, image)
	m.conversation.MarkDelivered(userMsg.ID)
	m.conversation.SetTyping(true)
	m.persist(userMsg)

	m.header.Typing = true
	m.input.Reset()
	m.input.SetDisabled(true)
	m.notice = ""
	m.layout()
	m.refreshViewport()

	return m, tea.Batch(m.spinner.Tick, m.SendCmd(userMsg.ID, text, image))
}

// handleReply settles a round-trip. Quota exhaustion drops the key and
// reopens the key form instead of adding a bubble.
func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	if m.conversation.MarkRead(msg.UserMessageID) {
		m.persistStatus(msg.UserMessageID, model.StatusRead)
	}
	m.conversation.SetTyping(false)
	m.header.Typing = false

	var cmd tea.Cmd
	r := msg.Reply
	switch {
	case r.IsQuota():
		if err := m.store.Reset(); err != nil {
			log.Warn().Err(err).Msg("could not remove exhausted API key")
		}
		m.apiKey = ""
		cmd = m.keyModal.Open(components.QuotaNotice, false)
		m.input.SetDisabled(true)

	default:
		bot := m.conversation.AddAssistantMessage(r.Text)
		m.persist(bot)
		m.input.SetDisabled(false)
	}

	connected := r.Kind != reply.KindConnectivity
	m.conversation.SetConnected(connected)
	m.header.Connected = connected

	m.refreshViewport()
	return m, cmd
}

func (m Model) handleHistory(msg HistoryLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		log.Warn().Err(msg.Err).Msg("could not restore history")
		m.notice = "Could not restore history: " + msg.Err.Error()
		return m, nil
	}
	if len(msg.Messages) == 0 {
		return m, nil
	}

	// Restored messages go before anything typed since start.
	current := m.conversation.Messages
	m.conversation.Messages = nil
	for _, stored := range msg.Messages {
		m.conversation.AddMessage(stored)
	}
	for _, live := range current {
		m.conversation.AddMessage(live)
	}
	m.refreshViewport()
	return m, nil
}

func (m Model) handleConfigReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.notice = "Config not reloaded: " + msg.Err.Error()
		return m, nil
	}
	cfg := msg.Config
	m.showTimestamps = cfg.UI.ShowTimestamps
	if msg.Assistant != nil {
		m.assistant = msg.Assistant
		log.Info().Str("model", cfg.Gemini.Model).Int("timeout_secs", cfg.Gemini.RequestTimeoutSecs).Msg("assistant rebuilt from reloaded config")
	}
	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		log.Warn().Err(err).Msg("ignoring log level from reloaded config")
	}
	m.notice = "Config reloaded."
	m.refreshViewport()
	return m, nil
}

// =============================================================================
// PERSISTENCE
// =============================================================================

func (m Model) persist(msg *model.Message) {
	if m.history == nil {
		return
	}
	if err := m.history.Append(msg); err != nil {
		log.Warn().Err(err).Str("id", msg.ID).Msg("could not save message")
	}
}

func (m Model) persistStatus(id string, status model.Status) {
	if m.history == nil {
		return
	}
	if _, err := m.history.UpdateStatus(id, status); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("could not save message status")
	}
}
