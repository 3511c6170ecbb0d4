// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini composes and sends Doc Talk requests to Google Gemini.
//
// A request is one user turn: an optional text segment, an optional inline
// image segment, the fixed Doc Talk system instruction and a fixed sampling
// temperature. Each Send issues exactly one GenerateContent call; there is
// no retry or backoff at this layer and no timeout beyond the caller's
// context.
//
// # Key Types
//
//   - Composer: validates input, builds segments and issues the call
//   - Generator: the provider surface (satisfied by *genai.Models)
//   - ClientFactory: builds a Generator for an explicit API key
//   - Error / Kind: structured failure classification
//
// # Usage
//
//	composer := gemini.NewComposer(gemini.NewClientFactory(nil))
//	text, err := composer.Send(ctx, "What is this pill?", imageURI, apiKey)
//	if err != nil {
//	    switch gemini.KindOf(err) { ... }
//	}
package gemini
