// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/doctalk/internal/reply"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates a config file or settings error
	ExitConfigError = 3
	// ExitAuthError indicates a missing, rejected or exhausted API key
	ExitAuthError = 4
	// ExitNetworkError indicates the provider could not be reached
	ExitNetworkError = 5
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError reports bad arguments. Suggestion, when set, names the
// command the user probably meant.
type UsageError struct {
	Reason     string
	Suggestion string
}

func (e *UsageError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (did you mean %q?)", e.Reason, e.Suggestion)
	}
	return e.Reason
}

// CommandError wraps a failure with the command and exit code it maps to.
type CommandError struct {
	Command string
	Code    int
	Err     error
}

func (e *CommandError) Error() string {
	if e.Command == "" {
		return e.Err.Error()
	}
	return e.Command + ": " + e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Reason: fmt.Sprintf(format, args...)}
}

func commandError(command string, code int, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{Command: command, Code: code, Err: err}
}

// ErrQuotaExhausted is returned by ask and chat when the stored key ran
// out of quota.
var ErrQuotaExhausted = errors.New("quota exhausted for this key; store a different one with `doctalk key set`")

// ErrNoKey is returned when no API key is available from any source.
var ErrNoKey = errors.New("no API key; run `doctalk key set` or set DOCTALK_API_KEY")

// replyError turns a failed reply into an error with a matching exit code.
func replyError(command string, r reply.Reply) error {
	switch r.Kind {
	case reply.KindOK:
		return nil
	case reply.KindQuotaExceeded:
		return commandError(command, ExitAuthError, ErrQuotaExhausted)
	case reply.KindMissingCredential, reply.KindInvalidCredential:
		return commandError(command, ExitAuthError, errors.New(r.Text))
	default:
		return commandError(command, ExitNetworkError, errors.New(r.Text))
	}
}

// =============================================================================
// DISPLAY
// =============================================================================

// ExitCode determines the process exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsageError
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code != 0 {
		return cmdErr.Code
	}
	return ExitGeneralError
}

// DisplayError prints err in the "Error: ..." form used by every command.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), err.Error())
	var usage *UsageError
	if errors.As(err, &usage) {
		fmt.Fprintln(w, DimStyle.Render("Run `doctalk help` for usage."))
	}
}
