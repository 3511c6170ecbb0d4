// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// BRAND COLORS
// =============================================================================

// Teal - Header bar and primary buttons
var Teal = lipgloss.AdaptiveColor{Light: "#075E54", Dark: "#202C33"}

// TealBright - Accent for focus rings and the online dot
var TealBright = lipgloss.AdaptiveColor{Light: "#128C7E", Dark: "#00A884"}

// Green - Presence and success
var Green = lipgloss.AdaptiveColor{Light: "#25D366", Dark: "#25D366"}

// Blue - Read receipts and links
var Blue = lipgloss.AdaptiveColor{Light: "#34B7F1", Dark: "#53BDEB"}

// Rose - Errors and the quota notice
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings such as a skipped attachment
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACES AND TEXT
// =============================================================================

var Overlay = lipgloss.AdaptiveColor{Light: "#D1D7DB", Dark: "#2A3942"}

var TextPrimary = lipgloss.AdaptiveColor{Light: "#111B21", Dark: "#E9EDEF"}
var TextSecondary = lipgloss.AdaptiveColor{Light: "#54656F", Dark: "#AEBAC1"}
var TextMuted = lipgloss.AdaptiveColor{Light: "#667781", Dark: "#8696A0"}
var TextOnTeal = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#E9EDEF"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// User bubble - green, right side
var UserBubbleBg = lipgloss.AdaptiveColor{Light: "#DCF8C6", Dark: "#005C4B"}
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#111B21", Dark: "#E9EDEF"}

// Assistant bubble - white, left side
var AssistantBubbleBg = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#202C33"}
var AssistantBubbleFg = lipgloss.AdaptiveColor{Light: "#111B21", Dark: "#E9EDEF"}
