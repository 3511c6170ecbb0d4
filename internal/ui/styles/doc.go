// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the doctalk chat
// screen.
//
// Colors are Lip Gloss AdaptiveColors in a messenger palette: green user
// bubbles, white (or slate, on dark terminals) assistant bubbles, a teal
// header and blue read receipts. Theme bundles the derived styles and the
// detected terminal capabilities.
package styles
