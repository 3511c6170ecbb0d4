// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assistant is the single entry point the UI uses to talk to the
// model: compose one request, send it, and map the outcome to a Reply.
package assistant

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jeranaias/doctalk/internal/keystore"
	"github.com/jeranaias/doctalk/internal/reply"
)

// Sender is the request composer contract. *gemini.Composer implements it.
type Sender interface {
	Send(ctx context.Context, text, image, apiKey string) (string, error)
}

// Service sends user turns and always returns something renderable.
type Service struct {
	sender  Sender
	timeout time.Duration
}

// New creates a service around sender.
func New(sender Sender) *Service {
	return &Service{sender: sender}
}

// WithTimeout bounds each request. Zero, the default, applies no bound of
// its own and relies on the caller's context.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Send issues one request for (text, image) with apiKey and maps the
// outcome. It never returns an error: failures come back as a Reply whose
// Kind says what went wrong.
func (s *Service) Send(ctx context.Context, text, image, apiKey string) reply.Reply {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := s.sender.Send(ctx, text, image, apiKey)
	r := reply.Map(out, err)

	event := log.Info()
	if err != nil {
		event = log.Warn().Err(err)
	}
	event.
		Str("kind", r.Kind.String()).
		Bool("has_text", text != "").
		Bool("has_image", image != "").
		Str("key_id", keystore.Fingerprint(apiKey)).
		Dur("duration", time.Since(start)).
		Msg("assistant reply")

	return r
}
