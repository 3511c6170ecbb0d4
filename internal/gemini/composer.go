// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/jeranaias/doctalk/internal/attachment"
	"github.com/jeranaias/doctalk/internal/keystore"
)

// Static request configuration.
const (
	// DefaultModel is the Gemini model Doc Talk talks to.
	DefaultModel = "gemini-2.5-flash"

	// DefaultTemperature is the fixed sampling temperature.
	DefaultTemperature float32 = 0.7
)

// SystemInstruction is the Doc Talk persona sent with every request.
const SystemInstruction = `You are Doc Talk, a multilingual AI health assistant.
Answer health questions, explain medicine images, and provide vaccination schedules based on birth dates.
Always identify the user's language and reply in that same language.
If the user provides an image, analyze it medically but cautiously.
Always include a disclaimer that you are an AI and not a substitute for professional medical advice.`

// Composer turns one user turn into one provider call.
// It is safe for concurrent use; concurrent Sends are not serialized.
type Composer struct {
	factory     ClientFactory
	model       string
	temperature float32
	system      string

	// The most recent client is reused while the key stays the same.
	mu        sync.Mutex
	cachedKey string
	cached    Generator
}

// NewComposer creates a composer with the default model, temperature and
// system instruction.
func NewComposer(factory ClientFactory) *Composer {
	return &Composer{
		factory:     factory,
		model:       DefaultModel,
		temperature: DefaultTemperature,
		system:      SystemInstruction,
	}
}

// WithModel overrides the model name. Blank names are ignored.
func (c *Composer) WithModel(model string) *Composer {
	if model = strings.TrimSpace(model); model != "" {
		c.model = model
	}
	return c
}

// Model returns the model requests are sent to.
func (c *Composer) Model() string {
	return c.model
}

// Segments builds the content parts for a turn: a text part when text is
// non-empty, then an inline-data part when image parses as a data URI.
// An image that does not parse is skipped. Returns ErrEmptyContent when
// nothing is left.
func Segments(text, image string) ([]*genai.Part, error) {
	parts := make([]*genai.Part, 0, 2)

	if text != "" {
		parts = append(parts, genai.NewPartFromText(text))
	}

	if image != "" {
		img, err := attachment.Parse(image)
		if err != nil {
			log.Warn().Err(err).Msg("skipping unparseable image attachment")
		} else {
			parts = append(parts, genai.NewPartFromBytes(img.Data, img.MediaType))
		}
	}

	if len(parts) == 0 {
		return nil, &Error{Kind: KindEmptyContent, Err: ErrEmptyContent}
	}
	return parts, nil
}

// Send issues exactly one GenerateContent call for the turn and returns the
// provider's text, which may be empty. Failures are returned as *Error.
//
// An empty apiKey fails with ErrMissingCredential and an empty turn with
// ErrEmptyContent; neither touches the network.
func (c *Composer) Send(ctx context.Context, text, image, apiKey string) (string, error) {
	if apiKey == "" {
		return "", &Error{Kind: KindMissingCredential, Err: ErrMissingCredential}
	}

	parts, err := Segments(text, image)
	if err != nil {
		return "", err
	}

	gen, err := c.generator(ctx, apiKey)
	if err != nil {
		return "", classified(err)
	}

	temperature := c.temperature
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(c.system, genai.RoleUser),
		Temperature:       &temperature,
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	log.Debug().
		Str("model", c.model).
		Int("segments", len(parts)).
		Str("key_id", keystore.Fingerprint(apiKey)).
		Msg("sending generate content request")

	resp, err := gen.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", classified(err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

// generator returns a client for apiKey, reusing the last one when the key
// is unchanged.
func (c *Composer) generator(ctx context.Context, apiKey string) (Generator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && c.cachedKey == apiKey {
		return c.cached, nil
	}
	gen, err := c.factory(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	c.cachedKey = apiKey
	c.cached = gen
	return gen, nil
}
