// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Error variables for failures detected before any network I/O.
var (
	// ErrMissingCredential indicates Send was called without an API key.
	ErrMissingCredential = errors.New("API key is missing")

	// ErrEmptyContent indicates there was neither text nor a usable image.
	ErrEmptyContent = errors.New("no content to send")
)

// Kind classifies a failed request.
type Kind int

const (
	// KindConnectivity covers everything not classified below:
	// network failures, provider 5xx, malformed responses.
	KindConnectivity Kind = iota
	KindMissingCredential
	KindEmptyContent
	KindQuotaExceeded
	KindInvalidCredential
)

// String returns a short name for logs.
func (k Kind) String() string {
	switch k {
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

// Error is a classified request failure.
type Error struct {
	Kind Kind
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return "gemini: " + e.Kind.String()
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// classified wraps err with its Kind. Errors that already carry one are
// returned unchanged.
func classified(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: Classify(err), Err: err}
}

// KindOf returns the Kind carried by err, classifying it if necessary.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Classify(err)
}

// quotaMarkers are matched case-insensitively against error descriptions.
var quotaMarkers = []string{"429", "exhausted", "quota"}

// Classify maps an error to a Kind. The first matching rule wins:
//
//  1. quota: HTTP 429 / RESOURCE_EXHAUSTED from the provider, or a
//     description containing "429", "exhausted" or "quota"
//  2. credential: a missing key, HTTP 401/403 / UNAUTHENTICATED /
//     PERMISSION_DENIED, or a description mentioning "API key"
//  3. empty content
//  4. connectivity (everything else)
//
// Structured provider errors are checked before the description so a quota
// failure is recognised even when its message names neither word.
func Classify(err error) Kind {
	if err == nil {
		return KindConnectivity
	}

	apiErr, hasAPIErr := asAPIError(err)
	desc := strings.ToLower(err.Error())

	if hasAPIErr && (apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED") {
		return KindQuotaExceeded
	}
	for _, marker := range quotaMarkers {
		if strings.Contains(desc, marker) {
			return KindQuotaExceeded
		}
	}

	if errors.Is(err, ErrMissingCredential) {
		return KindMissingCredential
	}
	if hasAPIErr {
		switch {
		case apiErr.Code == http.StatusUnauthorized,
			apiErr.Code == http.StatusForbidden,
			apiErr.Status == "UNAUTHENTICATED",
			apiErr.Status == "PERMISSION_DENIED":
			return KindInvalidCredential
		}
	}
	if strings.Contains(desc, "api key") {
		return KindInvalidCredential
	}

	if errors.Is(err, ErrEmptyContent) {
		return KindEmptyContent
	}
	return KindConnectivity
}

// asAPIError extracts a genai.APIError whether it was returned by value or
// by pointer.
func asAPIError(err error) (genai.APIError, bool) {
	var v genai.APIError
	if errors.As(err, &v) {
		return v, true
	}
	var p *genai.APIError
	if errors.As(err, &p) && p != nil {
		return *p, true
	}
	return genai.APIError{}, false
}
