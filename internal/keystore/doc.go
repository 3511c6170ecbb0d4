// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package keystore holds the user's Gemini API key between sessions.
//
// The key is collected once (key modal, "doctalk key set" or environment)
// and then passed explicitly to every request; nothing in doctalk reads it
// from a global. Two stores are provided:
//
//   - FileKeyStore: ~/.doctalk/credential, written atomically with 0600
//   - MemoryKeyStore: session-only storage for --ephemeral runs and tests
//
// Keys are never logged. Use Fingerprint to identify a key in logs.
package keystore
