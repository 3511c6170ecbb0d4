// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a saved Doc Talk transcript to a shareable file.
//
// # Key Types
//
//   - Transcript: the messages plus the model that answered them
//   - Exporter: converts a transcript into one output format
//   - Options: output directory and content switches
//
// # Supported Formats
//
//   - Markdown: readable, images summarized as a line
//   - JSON: one record per message, image data only on request
//
// # Usage
//
//	exp, err := export.ForFormat("md", opts)
//	path, err := export.ExportToFile(transcript, exp, opts)
package export
