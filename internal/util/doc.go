// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the doctalk packages.
//
// # Key Functions
//
//   - AtomicWriteFile: crash-safe file writes used for config and key files
//   - TruncateWidth: display-width aware truncation for terminal layout
//   - HumanSize: compact byte counts for attachment labels
package util
