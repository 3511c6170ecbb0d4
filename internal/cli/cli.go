// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/doctalk/internal/config"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdKey
	CmdHistory
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name as typed.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdAsk:
		return "ask"
	case CmdChat:
		return "chat"
	case CmdKey:
		return "key"
	case CmdHistory:
		return "history"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Ephemeral bool // keep the key in memory and write no history
	NoHistory bool
	Verbose   bool
	Model     string
	LogLevel  string

	// Command-specific
	Query      string
	Image      string
	Subcommand string
	Limit      int
	Format     string // history export: md or json
	Output     string // history export: directory, or "-" for stdout
	WithImages bool   // history export: embed images in JSON
}

// DefaultHistoryLimit is how many messages `history` prints by default.
const DefaultHistoryLimit = 20

var (
	globalBools = []string{"ephemeral", "no-history", "verbose", "v", "help", "h", "version"}
	globalFlags = append([]string{"model", "m", "log-level"}, globalBools...)
	boolFlags   = append([]string{"images"}, globalBools...)
)

const usageText = `doctalk - a terminal chat with Doc Talk, a multilingual AI health assistant

Doc Talk answers health questions in plain language and can look at
photos (a rash, a label, a prescription). Replies come straight from
Google Gemini using your own API key; there is no backend server.

Usage:
  doctalk                          Start the chat screen (default)
  doctalk ask [--image P] TEXT     Ask one question and print the reply
  doctalk chat                     Line-mode chat with input history
  doctalk key [set|reset|status]   Manage the stored API key
  doctalk history [clear]          Show or clear the saved transcript
    -n, --limit N                  Show the last N messages (default: 20)
  doctalk history export           Write the transcript to a file
    --format md|json               Output format (default: md)
    -o, --output DIR               Target directory, or - for stdout
    --images                       Embed images in JSON output
  doctalk config [show|path|init]  Show the effective settings or create the file
  doctalk version                  Show version information
  doctalk help                     Show this help

Global Flags:
  --ephemeral          Keep the key in memory only and save no history
  --no-history         Do not save or restore the transcript
  -m, --model NAME     Override the Gemini model
  --log-level LEVEL    trace, debug, info, warn or error
  -v, --verbose        Log to stderr at debug level

Chat screen:
  enter                Send the message (text, image or both)
  ctrl+k               Change the API key
  /attach PATH         Attach an image to the next message
  /detach /reset /clear /copy /help /quit

Environment:
  DOCTALK_API_KEY, GEMINI_API_KEY   API key (not written to disk)
  DOCTALK_MODEL                     Gemini model
  DOCTALK_HOME                      Data directory (default: ~/.doctalk)
  DOCTALK_LOG_LEVEL, DOCTALK_HISTORY, DOCTALK_REQUEST_TIMEOUT

Examples:
  doctalk ask "Is it safe to take ibuprofen with coffee?"
  doctalk ask --image ~/rash.jpg "What could this be?"
  doctalk --ephemeral chat
  doctalk history -n 50
  doctalk history export --format json -o ~/Documents

Doc Talk is not a doctor. In an emergency call your local emergency number.

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "doctalk version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments (without the program name).
func Parse(argv []string) (Command, Args, error) {
	p := NewArgParser(argv, boolFlags...)
	args := Args{
		Ephemeral: p.BoolFlag("ephemeral"),
		NoHistory: p.BoolFlag("no-history"),
		Verbose:   p.BoolFlag("verbose", "v"),
		Model:     strings.TrimSpace(p.Flag("model", "m")),
		LogLevel:  p.Flag("log-level"),
	}

	if p.BoolFlag("help", "h") {
		return CmdHelp, args, nil
	}
	if p.BoolFlag("version") {
		return CmdVersion, args, nil
	}
	if p.HasFlag("model", "m") && args.Model == "" {
		return CmdHelp, args, usageErrorf("--model needs a name")
	}

	name := strings.ToLower(p.Positional(0))
	switch name {
	case "", "tui":
		return CmdTUI, args, checkFlags(p)

	case "ask":
		args.Query = strings.TrimSpace(JoinPositionalArgs(p, 1))
		args.Image = p.Flag("image", "i")
		if args.Query == "" && args.Image == "" {
			return CmdAsk, args, usageErrorf("ask needs a question or --image")
		}
		return CmdAsk, args, checkFlags(p, "image", "i")

	case "chat":
		return CmdChat, args, checkFlags(p)

	case "key", "keys":
		args.Subcommand = strings.ToLower(p.Positional(1))
		if args.Subcommand == "" {
			args.Subcommand = "status"
		}
		switch args.Subcommand {
		case "set", "reset", "status":
		default:
			return CmdKey, args, usageErrorf("unknown key subcommand %q (want set, reset or status)", args.Subcommand)
		}
		return CmdKey, args, checkFlags(p)

	case "history", "log":
		args.Subcommand = strings.ToLower(p.Positional(1))
		switch args.Subcommand {
		case "", "clear":
		case "export":
			args.Format = strings.ToLower(p.Flag("format", "f"))
			if args.Format == "" {
				args.Format = "md"
			}
			if args.Format != "md" && args.Format != "markdown" && args.Format != "json" {
				return CmdHistory, args, usageErrorf("unknown export format %q (want md or json)", args.Format)
			}
			args.Output = p.Flag("output", "o")
			if args.Output == "" {
				args.Output = "."
			}
			args.WithImages = p.BoolFlag("images")
			return CmdHistory, args, checkFlags(p, "format", "f", "output", "o", "images")
		default:
			return CmdHistory, args, usageErrorf("unknown history subcommand %q (want clear or export)", args.Subcommand)
		}
		args.Limit = DefaultHistoryLimit
		if p.HasFlag("limit", "n") {
			n, err := ParseIntWithValidation(p.Flag("limit", "n"), "--limit")
			if err != nil {
				return CmdHistory, args, &UsageError{Reason: err.Error()}
			}
			args.Limit = n
		}
		return CmdHistory, args, checkFlags(p, "limit", "n")

	case "config":
		args.Subcommand = strings.ToLower(p.Positional(1))
		if args.Subcommand == "" {
			args.Subcommand = "show"
		}
		switch args.Subcommand {
		case "show", "path", "init":
		default:
			return CmdConfig, args, usageErrorf("unknown config subcommand %q (want show, path or init)", args.Subcommand)
		}
		return CmdConfig, args, checkFlags(p)

	case "version":
		return CmdVersion, args, nil

	case "help":
		return CmdHelp, args, nil
	}

	return CmdHelp, args, &UsageError{
		Reason:     fmt.Sprintf("unknown command %q", name),
		Suggestion: SuggestCommand(name),
	}
}

// checkFlags rejects flags the command does not understand.
func checkFlags(p *ArgParser, extra ...string) error {
	allowed := append(append([]string{}, globalFlags...), extra...)
	if unknown := p.Unknown(allowed...); len(unknown) > 0 {
		return usageErrorf("unknown flag --%s", unknown[0])
	}
	return nil
}

// Apply returns a copy of cfg with the command-line overrides applied.
// Flags win over the config file and the environment.
func (a Args) Apply(cfg *config.Config) *config.Config {
	c := cfg.Clone()
	if a.Model != "" {
		c.Gemini.Model = a.Model
	}
	switch {
	case a.LogLevel != "":
		c.Log.Level = a.LogLevel
	case a.Verbose:
		c.Log.Level = "debug"
	}
	if a.NoHistory || a.Ephemeral {
		c.Storage.HistoryEnabled = false
	}
	return c
}
