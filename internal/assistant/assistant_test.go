// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/doctalk/internal/gemini"
	"github.com/jeranaias/doctalk/internal/reply"
)

type stubSender struct {
	text     string
	err      error
	calls    int
	deadline bool
}

func (s *stubSender) Send(ctx context.Context, text, image, apiKey string) (string, error) {
	s.calls++
	_, s.deadline = ctx.Deadline()
	return s.text, s.err
}

func TestService_Success(t *testing.T) {
	sender := &stubSender{text: "Rest and hydrate."}
	r := New(sender).Send(context.Background(), "I have a cold", "", "abc")
	assert.Equal(t, reply.Reply{Text: "Rest and hydrate.", Kind: reply.KindOK}, r)
	assert.Equal(t, 1, sender.calls)
	assert.False(t, sender.deadline, "no timeout unless configured")
}

func TestService_AbsorbsFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want reply.Kind
	}{
		{"quota", errors.New("RESOURCE_EXHAUSTED: quota"), reply.KindQuotaExceeded},
		{"auth", errors.New("API key not valid"), reply.KindInvalidCredential},
		{"network", errors.New("connection refused"), reply.KindConnectivity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&stubSender{err: tt.err}).Send(context.Background(), "hi", "", "abc")
			assert.Equal(t, tt.want, r.Kind)
			assert.NotEmpty(t, r.Text)
		})
	}
}

func TestService_WithComposerFailsFast(t *testing.T) {
	composer := gemini.NewComposer(func(ctx context.Context, apiKey string) (gemini.Generator, error) {
		t.Fatal("client must not be built without a key")
		return nil, nil
	})
	r := New(composer).Send(context.Background(), "Hello", "", "")
	require.Equal(t, reply.KindMissingCredential, r.Kind)
	assert.Equal(t, reply.AuthMessage, r.Text)
}

func TestService_Timeout(t *testing.T) {
	sender := &stubSender{text: "ok"}
	New(sender).WithTimeout(time.Minute).Send(context.Background(), "hi", "", "abc")
	assert.True(t, sender.deadline)

	sender = &stubSender{text: "ok"}
	New(sender).WithTimeout(0).Send(context.Background(), "hi", "", "abc")
	assert.False(t, sender.deadline)
}
