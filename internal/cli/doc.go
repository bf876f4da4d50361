// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive
// commands of mailcheck.
//
// Commands:
//
//	mailcheck                     Start the TUI (default)
//	mailcheck check <email>       Check one address and print a report
//	mailcheck prompt              Line-editing prompt, one check per line
//	mailcheck history             Show recent checks
//	mailcheck config [sub]        Show or edit configuration
//	mailcheck version             Show version information
//
// Handlers return errors; main decides how to print them and which exit
// code to use via ExitCode.
package cli
