// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser splits raw arguments into flags and positionals.
// It handles:
//   - Long flags: --flag value or --flag=value
//   - Short flags: -f value
//   - Boolean flags: declared names never consume the next argument
//   - "--" ends flag parsing; everything after it is positional
type ArgParser struct {
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
	declared   map[string]bool
}

// NewArgParser parses raw. boolNames lists flags that take no value, so
// "--verbose ask" keeps "ask" as a positional.
//
// Example:
//
//	p := NewArgParser([]string{"history", "--limit", "5", "--verbose"}, "verbose")
//	p.Positional(0)      // "history"
//	p.Flag("limit")      // "5"
//	p.BoolFlag("verbose") // true
func NewArgParser(raw []string, boolNames ...string) *ArgParser {
	p := &ArgParser{
		flags:      make(map[string]string),
		boolFlags:  make(map[string]bool),
		positional: make([]string, 0, len(raw)),
		declared:   make(map[string]bool, len(boolNames)),
	}
	for _, name := range boolNames {
		p.declared[name] = true
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		if arg == "--" {
			p.positional = append(p.positional, raw[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			p.positional = append(p.positional, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		switch {
		case hasValue && p.declared[name]:
			b, err := strconv.ParseBool(value)
			p.boolFlags[name] = err == nil && b
		case hasValue:
			p.flags[name] = value
		case p.declared[name]:
			p.boolFlags[name] = true
		case i+1 < len(raw) && (!strings.HasPrefix(raw[i+1], "-") || raw[i+1] == "-"):
			p.flags[name] = raw[i+1]
			i++
		default:
			// Undeclared flag at the end or before another flag.
			p.boolFlags[name] = true
		}
	}
	return p
}

// Flag returns the first non-empty value among names.
func (p *ArgParser) Flag(names ...string) string {
	for _, name := range names {
		if val, ok := p.flags[strings.TrimLeft(name, "-")]; ok && val != "" {
			return val
		}
	}
	return ""
}

// FlagOrDefault returns the flag value or a default if not found.
func (p *ArgParser) FlagOrDefault(name, defaultValue string) string {
	if val := p.Flag(name); val != "" {
		return val
	}
	return defaultValue
}

// BoolFlag reports whether any of names was set.
func (p *ArgParser) BoolFlag(names ...string) bool {
	for _, name := range names {
		if p.boolFlags[strings.TrimLeft(name, "-")] {
			return true
		}
	}
	return false
}

// HasFlag returns true if any of names was given, with or without a value.
func (p *ArgParser) HasFlag(names ...string) bool {
	for _, name := range names {
		name = strings.TrimLeft(name, "-")
		_, hasString := p.flags[name]
		_, hasBool := p.boolFlags[name]
		if hasString || hasBool {
			return true
		}
	}
	return false
}

// Positional returns the positional argument at index, or "".
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalFrom returns all positional arguments starting from index.
func (p *ArgParser) PositionalFrom(index int) []string {
	if index < 0 || index >= len(p.positional) {
		return []string{}
	}
	return p.positional[index:]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}

// Unknown returns the sorted flag names not in allowed.
func (p *ArgParser) Unknown(allowed ...string) []string {
	ok := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		ok[name] = true
	}
	var unknown []string
	for name := range p.flags {
		if !ok[name] {
			unknown = append(unknown, name)
		}
	}
	for name := range p.boolFlags {
		if !ok[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// =============================================================================
// HELPERS
// =============================================================================

// ParseIntWithValidation parses a positive integer.
func ParseIntWithValidation(s string, fieldName string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%s is required", fieldName)
	}

	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", fieldName, err)
	}

	if val <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", fieldName, val)
	}

	return val, nil
}

// JoinPositionalArgs joins positional arguments from startIndex into one
// string, for multi-word questions.
func JoinPositionalArgs(parser *ArgParser, startIndex int) string {
	return strings.Join(parser.PositionalFrom(startIndex), " ")
}
