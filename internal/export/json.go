// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/doctalk/internal/attachment"
	"github.com/jeranaias/doctalk/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports transcripts to JSON.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

type jsonTranscript struct {
	Title    string        `json:"title"`
	Model    string        `json:"model,omitempty"`
	Started  time.Time     `json:"started"`
	Messages []jsonMessage `json:"messages"`
}

type jsonMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status,omitempty"`
	ImageType string    `json:"image_type,omitempty"`
	Image     string    `json:"image,omitempty"`
}

// Export converts a transcript to indented JSON. Image data is included
// only with Options.IncludeImages.
func (e *JSONExporter) Export(t *Transcript) ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	out := jsonTranscript{
		Title:    t.Title(),
		Model:    t.Model,
		Started:  t.Started(),
		Messages: make([]jsonMessage, 0, len(t.Messages)),
	}
	for _, m := range t.Messages {
		jm := jsonMessage{
			ID:        m.ID,
			Role:      string(m.Role),
			Text:      m.Text,
			Timestamp: m.Timestamp,
		}
		if m.Role == model.RoleUser {
			jm.Status = string(m.Status)
		}
		if m.HasImage() {
			if img, err := attachment.Parse(m.Image); err == nil {
				jm.ImageType = img.MediaType
			}
			if e.options.IncludeImages {
				jm.Image = m.Image
			}
		}
		out.Messages = append(out.Messages, jm)
	}
	return json.MarshalIndent(out, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
