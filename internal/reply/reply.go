// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reply maps provider outcomes to the text shown in the chat.
//
// Map never fails: every outcome becomes a Reply the caller can render as
// an assistant bubble. The Kind field tells callers what happened so they
// never have to inspect the text; QuotaSentinel is kept as the text of
// quota replies for callers that only look at strings.
package reply

import (
	"github.com/jeranaias/doctalk/internal/gemini"
)

// Fixed display strings.
const (
	// Fallback replaces an empty successful response.
	Fallback = "I'm sorry, I couldn't process that."

	// QuotaSentinel marks quota exhaustion. It is consumed by the caller
	// (which asks for a different key) and not shown verbatim.
	QuotaSentinel = "QUOTA_EXCEEDED"

	// AuthMessage is shown when the key is missing or rejected.
	AuthMessage = "⚠️ Authentication Error: The API Key provided is invalid."

	// ConnectivityMessage is shown for every other failure.
	ConnectivityMessage = "⚠️ I'm having trouble connecting to the server. Please check your connection."
)

// Kind tells the caller how to treat a Reply.
type Kind int

const (
	KindOK Kind = iota
	KindMissingCredential
	KindEmptyContent
	KindQuotaExceeded
	KindInvalidCredential
	KindConnectivity
)

// String returns a short name for logs.
func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindMissingCredential:
		return "missing_credential"
	case KindEmptyContent:
		return "empty_content"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindInvalidCredential:
		return "invalid_credential"
	default:
		return "connectivity"
	}
}

// Reply is the display outcome of one request.
type Reply struct {
	Text string
	Kind Kind
}

// OK reports whether the provider answered.
func (r Reply) OK() bool {
	return r.Kind == KindOK
}

// IsQuota reports whether the key's quota is exhausted.
func (r Reply) IsQuota() bool {
	return r.Kind == KindQuotaExceeded
}

// IsAuthFailure reports whether the key was missing or rejected.
func (r Reply) IsAuthFailure() bool {
	return r.Kind == KindMissingCredential || r.Kind == KindInvalidCredential
}

// Map converts a provider outcome into a Reply. A nil err means success:
// text is returned unchanged, or Fallback when it is empty.
func Map(text string, err error) Reply {
	if err == nil {
		if text == "" {
			return Reply{Text: Fallback, Kind: KindOK}
		}
		return Reply{Text: text, Kind: KindOK}
	}

	switch gemini.KindOf(err) {
	case gemini.KindQuotaExceeded:
		return Reply{Text: QuotaSentinel, Kind: KindQuotaExceeded}
	case gemini.KindMissingCredential:
		return Reply{Text: AuthMessage, Kind: KindMissingCredential}
	case gemini.KindInvalidCredential:
		return Reply{Text: AuthMessage, Kind: KindInvalidCredential}
	case gemini.KindEmptyContent:
		return Reply{Text: ConnectivityMessage, Kind: KindEmptyContent}
	default:
		return Reply{Text: ConnectivityMessage, Kind: KindConnectivity}
	}
}

// Text is Map reduced to the display string.
func Text(text string, err error) string {
	return Map(text, err).Text
}
