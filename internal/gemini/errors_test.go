// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"structured 429", genai.APIError{Code: 429, Message: "slow down"}, KindQuotaExceeded},
		{"structured resource exhausted", genai.APIError{Code: 400, Status: "RESOURCE_EXHAUSTED"}, KindQuotaExceeded},
		{"pointer api error", &genai.APIError{Code: 429}, KindQuotaExceeded},
		{"wrapped api error", fmt.Errorf("call failed: %w", genai.APIError{Code: 429}), KindQuotaExceeded},
		{"text 429", errors.New("got status 429 from upstream"), KindQuotaExceeded},
		{"text exhausted", errors.New("Resource has been EXHAUSTED"), KindQuotaExceeded},
		{"text quota mixed case", errors.New("You exceeded your current QuOtA"), KindQuotaExceeded},
		{"quota wins over api key", errors.New("API key quota exceeded"), KindQuotaExceeded},
		{"missing credential", ErrMissingCredential, KindMissingCredential},
		{"structured 401", genai.APIError{Code: 401, Message: "unauthorized"}, KindInvalidCredential},
		{"structured 403", genai.APIError{Code: 403, Status: "PERMISSION_DENIED"}, KindInvalidCredential},
		{"invalid key 400", genai.APIError{Code: 400, Message: "API key not valid. Please pass a valid API key.", Status: "INVALID_ARGUMENT"}, KindInvalidCredential},
		{"text api key", errors.New("the API key is invalid"), KindInvalidCredential},
		{"empty content", ErrEmptyContent, KindEmptyContent},
		{"network", errors.New("dial tcp: lookup generativelanguage.googleapis.com: no such host"), KindConnectivity},
		{"server error", genai.APIError{Code: 500, Message: "internal"}, KindConnectivity},
		{"canceled", context.Canceled, KindConnectivity},
		{"nil", nil, KindConnectivity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestKindOf_PrefersCarriedKind(t *testing.T) {
	err := &Error{Kind: KindInvalidCredential, Err: errors.New("whatever")}
	assert.Equal(t, KindInvalidCredential, KindOf(fmt.Errorf("outer: %w", err)))
}

func TestClassified_DoesNotDoubleWrap(t *testing.T) {
	inner := &Error{Kind: KindQuotaExceeded, Err: errors.New("quota")}
	assert.Same(t, inner, classified(inner))
	assert.Nil(t, classified(nil))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "API key is missing", (&Error{Kind: KindMissingCredential, Err: ErrMissingCredential}).Error())
	assert.Equal(t, "gemini: quota_exceeded", (&Error{Kind: KindQuotaExceeded}).Error())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "connectivity", KindConnectivity.String())
	assert.Equal(t, "missing_credential", KindMissingCredential.String())
	assert.Equal(t, "empty_content", KindEmptyContent.String())
	assert.Equal(t, "quota_exceeded", KindQuotaExceeded.String())
	assert.Equal(t, "invalid_credential", KindInvalidCredential.String())
}
