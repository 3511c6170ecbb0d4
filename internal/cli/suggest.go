// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
)

// validCommands lists every command name and alias.
var validCommands = []string{
	"tui",
	"ask",
	"chat",
	"key",
	"history",
	"config",
	"version",
	"help",
	// Aliases
	"keys",
	"log",
}

// SuggestCommand returns the closest valid command for a typo, or "".
// The allowed edit distance grows with the input length.
func SuggestCommand(input string) string {
	input = strings.ToLower(input)

	if len(input) < 2 {
		return ""
	}

	maxDistance := 1
	if len(input) >= 4 {
		maxDistance = 2
	}

	bestMatch := ""
	bestDistance := -1
	for _, cmd := range validCommands {
		distance := levenshteinDistance(input, cmd)
		if distance == 0 {
			return ""
		}
		if distance <= maxDistance && (bestDistance == -1 || distance < bestDistance) {
			bestDistance = distance
			bestMatch = cmd
		}
	}
	return bestMatch
}

// levenshteinDistance is the single-character edit distance between s1
// and s2, using two rolling rows.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	cols := len(s2) + 1
	prev := make([]int, cols)
	curr := make([]int, cols)
	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j < cols; j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[cols-1]
}
