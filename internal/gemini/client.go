// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// Generator is the part of the provider SDK the composer uses.
// *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ClientFactory builds a Generator authenticated with apiKey.
// The key is always passed in; factories must not read it from anywhere else.
type ClientFactory func(ctx context.Context, apiKey string) (Generator, error)

// NewClientFactory returns a factory backed by the Gemini API.
// A nil httpClient uses the SDK default.
func NewClientFactory(httpClient *http.Client) ClientFactory {
	return func(ctx context.Context, apiKey string) (Generator, error) {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:     apiKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("creating Gemini client: %w", err)
		}
		return client.Models, nil
	}
}
