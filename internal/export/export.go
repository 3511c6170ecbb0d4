// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/doctalk/internal/model"
	"github.com/jeranaias/doctalk/internal/util"
)

// ErrEmptyTranscript is returned when there is nothing to export.
var ErrEmptyTranscript = errors.New("transcript has no messages")

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for transcript exporters.
type Exporter interface {
	// Export converts a transcript to the target format.
	Export(t *Transcript) ([]byte, error)

	// FileExtension returns the file extension, e.g. ".md".
	FileExtension() string

	// MimeType returns the MIME type of the output.
	MimeType() string
}

// Transcript is a saved conversation in chronological order.
type Transcript struct {
	Messages []*model.Message
	Model    string
}

// Title is the first user message as a single line, or "Doc Talk".
func (t *Transcript) Title() string {
	for _, m := range t.Messages {
		if m.Role == model.RoleUser && strings.TrimSpace(m.Text) != "" {
			return util.TruncateWidth(util.SingleLine(m.Text), 60)
		}
	}
	return "Doc Talk"
}

// Started returns the time of the first message.
func (t *Transcript) Started() time.Time {
	if len(t.Messages) == 0 {
		return time.Time{}
	}
	return t.Messages[0].Timestamp
}

func (t *Transcript) validate() error {
	if t == nil || len(t.Messages) == 0 {
		return ErrEmptyTranscript
	}
	return nil
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is where files are written. Default: current directory.
	OutputDir string

	// IncludeTimestamps adds per-message times to Markdown output.
	IncludeTimestamps bool

	// IncludeImages embeds image data URIs in JSON output.
	IncludeImages bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeTimestamps: true,
	}
}

// ForFormat returns the exporter for a format name: "md", "markdown" or
// "json".
func ForFormat(format string, opts *Options) (Exporter, error) {
	switch strings.ToLower(format) {
	case "", "md", "markdown":
		return NewMarkdownExporter(opts), nil
	case "json":
		return NewJSONExporter(opts), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (want md or json)", format)
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile exports a transcript into opts.OutputDir and returns the
// path written. The file is created with 0600 since it holds health
// questions.
func ExportToFile(t *Transcript, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(t)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := fmt.Sprintf("doctalk_%s_%s%s",
		sanitizeFilename(t.Title()),
		time.Now().Format("20060102_150405"),
		exporter.FileExtension(),
	)
	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	outputPath := filepath.Join(dir, filename)
	if err := util.AtomicWriteFile(outputPath, content, 0600); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename replaces characters that are invalid in filenames on
// Windows or Unix and caps the length.
func sanitizeFilename(s string) string {
	const maxLen = 40
	runes := []rune(s)
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}

	result := make([]rune, 0, len(runes))
	for _, r := range runes {
		switch {
		case strings.ContainsRune(`/\:*?"<>|.`, r):
			result = append(result, '-')
		case r == ' ' || r == '\t':
			result = append(result, '_')
		case r < 32 || r == 127:
			result = append(result, '-')
		default:
			result = append(result, r)
		}
	}

	out := strings.Trim(string(result), "-_")
	if out == "" {
		return "conversation"
	}
	return out
}

func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
