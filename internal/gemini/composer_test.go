// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeGenerator records every call and replies with a canned outcome.
type fakeGenerator struct {
	mu       sync.Mutex
	calls    int
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig

	resp *genai.GenerateContentResponse
	err  error
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(text, genai.RoleModel),
		}},
	}
}

// newTestComposer returns a composer whose factory hands out gen and counts
// how many clients were built.
func newTestComposer(gen *fakeGenerator) (*Composer, *atomic.Int32) {
	var built atomic.Int32
	factory := func(ctx context.Context, apiKey string) (Generator, error) {
		built.Add(1)
		return gen, nil
	}
	return NewComposer(factory), &built
}

const jpegURI = "data:image/jpeg;base64,/9j/4AAQSkZJRgABAQ=="

// =============================================================================
// FAIL-FAST TESTS
// =============================================================================

func TestSend_EmptyCredentialFailsBeforeNetwork(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse("unused")}
	composer, built := newTestComposer(gen)

	for _, tc := range []struct{ text, image string }{
		{"Hello", ""},
		{"", jpegURI},
		{"", ""},
	} {
		_, err := composer.Send(context.Background(), tc.text, tc.image, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingCredential)
		assert.Equal(t, KindMissingCredential, KindOf(err))
	}

	assert.Equal(t, 0, gen.calls, "no provider call may be made")
	assert.Equal(t, int32(0), built.Load(), "no client may be built")
}

func TestSend_EmptyContentFailsBeforeNetwork(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse("unused")}
	composer, _ := newTestComposer(gen)

	_, err := composer.Send(context.Background(), "", "", "abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Equal(t, KindEmptyContent, KindOf(err))
	assert.Equal(t, 0, gen.calls)
}

func TestSend_UnparseableImageAloneIsEmptyContent(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse("unused")}
	composer, _ := newTestComposer(gen)

	_, err := composer.Send(context.Background(), "", "not-a-data-uri", "abc")
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Equal(t, 0, gen.calls)
}

// =============================================================================
// PAYLOAD TESTS
// =============================================================================

func TestSend_TextOnly(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse("Hi! I'm Doc Talk.")}
	composer, _ := newTestComposer(gen)

	text, err := composer.Send(context.Background(), "Hello", "", "abc")
	require.NoError(t, err)
	assert.Equal(t, "Hi! I'm Doc Talk.", text)

	require.Equal(t, 1, gen.calls)
	require.Len(t, gen.contents, 1)
	assert.Equal(t, genai.RoleUser, gen.contents[0].Role)
	parts := gen.contents[0].Parts
	require.Len(t, parts, 1)
	assert.Equal(t, "Hello", parts[0].Text)
	assert.Nil(t, parts[0].InlineData)
}

func TestSend_ImageOnly(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse("That looks like paracetamol.")}
	composer, _ := newTestComposer(gen)

	_, err := composer.Send(context.Background(), "", jpegURI, "abc")
	require.NoError(t, err)

	require.Equal(t, 1, gen.calls)
	parts := gen.contents[0].Parts
	require.Len(t, parts, 1)
	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, "image/jpeg", parts[0].InlineData.MIMEType)
	assert.NotEmpty(t, parts[0].InlineData.Data)
	assert.Empty(t, parts[0].Text)
}

func TestSend_TextAndImageOrder(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse("ok")}
	composer, _ := newTestComposer(gen)

	_, err := composer.Send(context.Background(), "What is this?", jpegURI, "abc")
	require.NoError(t, err)

	parts := gen.contents[0].Parts
	require.Len(t, parts, 2)
	assert.Equal(t, "What is this?", parts[0].Text)
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "image/jpeg", parts[1].InlineData.MIMEType)
}

func TestSend_StaticConfiguration(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse("ok")}
	composer, _ := newTestComposer(gen)

	_, err := composer.Send(context.Background(), "Hello", "", "abc")
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, gen.model)
	require.NotNil(t, gen.config)
	require.NotNil(t, gen.config.Temperature)
	assert.InDelta(t, 0.7, *gen.config.Temperature, 1e-6)
	require.NotNil(t, gen.config.SystemInstruction)
	require.NotEmpty(t, gen.config.SystemInstruction.Parts)
	assert.Contains(t, gen.config.SystemInstruction.Parts[0].Text, "Doc Talk")
	assert.Contains(t, gen.config.SystemInstruction.Parts[0].Text, "not a substitute for professional medical advice")
}

func TestSend_WithModel(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse("ok")}
	composer, _ := newTestComposer(gen)
	composer.WithModel("gemini-2.5-pro").WithModel("  ")

	_, err := composer.Send(context.Background(), "Hello", "", "abc")
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", gen.model)
	assert.Equal(t, "gemini-2.5-pro", composer.Model())
}

func TestSend_EmptyProviderText(t *testing.T) {
	gen := &fakeGenerator{resp: &genai.GenerateContentResponse{}}
	composer, _ := newTestComposer(gen)

	text, err := composer.Send(context.Background(), "Hello", "", "abc")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestSend_OneCallPerInvocationNoRetry(t *testing.T) {
	gen := &fakeGenerator{err: genai.APIError{Code: 503, Message: "backend unavailable", Status: "UNAVAILABLE"}}
	composer, _ := newTestComposer(gen)

	_, err := composer.Send(context.Background(), "Hello", "", "abc")
	require.Error(t, err)
	assert.Equal(t, KindConnectivity, KindOf(err))
	assert.Equal(t, 1, gen.calls, "failures are not retried")
}

func TestSend_ReusesClientPerKey(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse("ok")}
	composer, built := newTestComposer(gen)

	for i := 0; i < 3; i++ {
		_, err := composer.Send(context.Background(), "Hello", "", "abc")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), built.Load())

	_, err := composer.Send(context.Background(), "Hello", "", "other-key")
	require.NoError(t, err)
	assert.Equal(t, int32(2), built.Load())
}

func TestSend_FactoryErrorIsClassified(t *testing.T) {
	composer := NewComposer(func(ctx context.Context, apiKey string) (Generator, error) {
		return nil, errors.New("dial tcp: no route to host")
	})
	_, err := composer.Send(context.Background(), "Hello", "", "abc")
	require.Error(t, err)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, KindConnectivity, gerr.Kind)
}
