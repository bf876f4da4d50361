// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
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
	CmdCheck
	CmdPrompt
	CmdHistory
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdCheck:
		return "check"
	case CmdPrompt:
		return "prompt"
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
	Verbose bool
	Quiet   bool
	JSON    bool // machine-readable output

	// Command-specific
	Email      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	Limit      int  // history rows
	Clear      bool // history --clear

	// Raw args (remaining after the command word)
	Raw []string
}

// DefaultHistoryLimit is how many rows "history" prints without --limit.
const DefaultHistoryLimit = 20

const usageText = `mailcheck - email risk checker

Checks addresses against a mailcheck server and shows the verdict:
disposable domains, DNS/MX records, well-known providers.

Usage:
  mailcheck                       Start the TUI (default)
  mailcheck check <email>         Check one address
    --json                        Print the raw verdict as JSON
  mailcheck prompt                Interactive prompt with line editing
  mailcheck history               Show recent checks
    --limit N                     Number of rows (default: 20)
    --clear                       Delete all history
    --json                        Output as JSON
  mailcheck config [show]         Show configuration
  mailcheck config path           Show the config file path
  mailcheck config init           Write a default config file
  mailcheck config get <key>      Print one value
  mailcheck config set <key> <v>  Change one value
  mailcheck config keys           List keys
  mailcheck version               Show version information

Global flags:
  -v, --verbose                   Log debug output
  -q, --quiet                     Only print results
      --json                      Machine-readable output

TUI keys:
  enter   check             tab     suggestions
  esc     clear             ctrl+k  focus input
  ctrl+y  copy JSON         ctrl+o  toggle JSON
  f1      help              ctrl+c  quit

Exit codes:
  0 ok, 1 error, 2 usage, 3 high risk, 4 config, 5 network

Environment:
  MAILCHECK_API_URL, MAILCHECK_TIMEOUT, MAILCHECK_LOG_FILE,
  MAILCHECK_LOG_LEVEL, MAILCHECK_METRICS_ADDR override the config file.
`

// PrintUsage writes the usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// VersionInfo describes the build.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// CurrentVersion returns the build information.
func CurrentVersion() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// PrintVersion writes version information, as JSON when asJSON is set.
func PrintVersion(w io.Writer, asJSON bool) error {
	info := CurrentVersion()
	if asJSON {
		return NewJSONResponse("version", info).Write(w)
	}
	_, err := fmt.Fprintf(w, "mailcheck %s\n  commit: %s\n  built:  %s\n  go:     %s (%s)\n",
		info.Version, info.GitCommit, info.BuildDate, info.GoVersion, info.Platform)
	return err
}

// Parse parses argv (without the program name) into a command and its args.
func Parse(argv []string) (Command, Args, error) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args, nil
	}

	word := remaining[0]
	cmd := strings.ToLower(word)
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, args, nil

	case "check", "c":
		return CmdCheck, args, parseCheckArgs(&args, remaining)

	case "prompt", "repl":
		return CmdPrompt, args, nil

	case "history", "h":
		return CmdHistory, args, parseHistoryArgs(&args, remaining)

	case "config":
		parseConfigArgs(&args, remaining)
		return CmdConfig, args, nil

	case "version", "--version":
		return CmdVersion, args, nil

	case "help", "-h", "--help":
		return CmdHelp, args, nil

	default:
		// A bare address checks it directly.
		if strings.Contains(cmd, "@") {
			args.Email = word
			return CmdCheck, args, parseCheckArgs(&args, append([]string{word}, remaining...))
		}
		return CmdHelp, args, &CommandError{
			Command: cmd,
			Message: "unknown command",
			Code:    ExitUsageError,
		}
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var remaining []string
	var args Args

	for _, arg := range argv {
		switch arg {
		case "-q", "--quiet":
			args.Quiet = true
		case "-v", "--verbose":
			args.Verbose = true
		case "--json":
			args.JSON = true
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, args
}

func parseCheckArgs(args *Args, remaining []string) error {
	p := NewArgParser(remaining)
	if p.PositionalCount() != 1 {
		return &CommandError{
			Command: "check",
			Message: "expected exactly one email address",
			Code:    ExitUsageError,
		}
	}
	args.Email = p.Positional(0)
	return nil
}

func parseHistoryArgs(args *Args, remaining []string) error {
	p := NewArgParser(remaining, "clear")
	args.Clear = p.BoolFlag("clear")
	args.Limit = DefaultHistoryLimit
	if p.HasFlag("limit") {
		n, err := ParseIntWithValidation(p.Flag("limit"), "limit")
		if err != nil {
			return &CommandError{Command: "history", Message: err.Error(), Code: ExitUsageError}
		}
		args.Limit = n
	}
	return nil
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	args.Subcommand = "show"
	if len(remaining) > 0 {
		args.Subcommand = strings.ToLower(remaining[0])
	}
	if len(remaining) > 1 {
		args.ConfigKey = remaining[1]
	}
	if len(remaining) > 2 {
		args.ConfigVal = strings.Join(remaining[2:], " ")
	}
}

