// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/jeranaias/doctalk/internal/keystore"
	"github.com/jeranaias/doctalk/internal/model"
	"github.com/jeranaias/doctalk/internal/reply"
	"github.com/jeranaias/doctalk/internal/ui/components"
	"github.com/jeranaias/doctalk/internal/ui/styles"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Assistant answers one user turn. *assistant.Service implements it.
type Assistant interface {
	Send(ctx context.Context, text, image, apiKey string) reply.Reply
}

// History persists the transcript. *storage.HistoryStore implements it.
type History interface {
	Append(msg *model.Message) error
	UpdateStatus(id string, status model.Status) (bool, error)
	List(limit int) ([]*model.Message, error)
	Clear() (int64, error)
}

// Options configures a chat Model.
type Options struct {
	Theme     *styles.Theme
	Assistant Assistant
	Keys      keystore.KeyStore
	// History may be nil to disable persistence.
	History History
	// RestoreLimit is how many stored messages to load on start.
	RestoreLimit   int
	ShowTimestamps bool
	// Context bounds every request; defaults to context.Background.
	Context context.Context
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	ctx context.Context

	// Styling
	theme *styles.Theme
	md    *components.MarkdownRenderer
	keys  KeyMap

	// Dimensions
	width  int
	height int
	ready  bool

	// Conversation
	conversation *model.Conversation

	// Components
	header   *components.Header
	input    components.InputBar
	keyModal components.KeyModal
	viewport viewport.Model
	spinner  spinner.Model

	// Services
	assistant Assistant
	store     keystore.KeyStore
	history   History
	apiKey    string

	// Settings
	restoreLimit   int
	showTimestamps bool

	// notice is a one-line status shown above the input.
	notice string
}

// New creates the chat model. The key modal opens immediately when the
// key store is empty.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme("auto")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(theme.Spinner),
	)

	m := Model{
		ctx:            ctx,
		theme:          theme,
		md:             components.NewMarkdownRenderer(theme.GlamourStyle()),
		keys:           DefaultKeyMap(),
		width:          80,
		height:         24,
		conversation:   model.NewConversation(),
		header:         components.NewHeader(theme),
		input:          components.NewInputBar(theme),
		keyModal:       components.NewKeyModal(theme),
		viewport:       viewport.New(80, 18),
		spinner:        sp,
		assistant:      opts.Assistant,
		store:          opts.Keys,
		history:        opts.History,
		restoreLimit:   opts.RestoreLimit,
		showTimestamps: opts.ShowTimestamps,
	}
	if m.store == nil {
		m.store = keystore.NewMemoryKeyStore("")
	}

	key, err := m.store.Load()
	switch {
	case err == nil:
		m.apiKey = key
	case errors.Is(err, keystore.ErrNoKey):
	default:
		log.Warn().Err(err).Msg("could not load stored API key")
		m.notice = "Could not read the stored API key: " + err.Error()
	}
	if m.apiKey == "" {
		m.keyModal.Open("", false)
		m.input.SetDisabled(true)
	}
	return m
}

// Init starts the cursor blink and restores history.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadHistoryCmd())
}

// Conversation returns the current conversation state.
func (m Model) Conversation() *model.Conversation {
	return m.conversation
}

// APIKey returns the credential the next send will use.
func (m Model) APIKey() string {
	return m.apiKey
}

// KeyModalOpen reports whether the key form is showing.
func (m Model) KeyModalOpen() bool {
	return m.keyModal.IsOpen()
}

// Notice returns the current status line.
func (m Model) Notice() string {
	return m.notice
}

// PendingImage returns the attachment waiting to be sent.
func (m Model) PendingImage() string {
	return m.input.Image()
}

// InputDisabled reports whether the input bar is locked.
func (m Model) InputDisabled() bool {
	return m.input.Disabled()
}
