// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/mailcheck-tui/internal/config"
)

// RunConfig handles "config show|path|init|get|set|keys".
func RunConfig(env *Env, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(env, args)
	case "path":
		return configPath(env, args)
	case "init":
		return configInit(env, args)
	case "get":
		return configGet(env, args)
	case "set":
		return configSet(env, args)
	case "keys":
		for _, k := range config.GetAllKeys() {
			fmt.Fprintln(env.Out, k)
		}
		return nil
	default:
		return &CommandError{
			Command: "config",
			Message: fmt.Sprintf("unknown subcommand %q (show, path, init, get, set, keys)", args.Subcommand),
			Code:    ExitUsageError,
		}
	}
}

func configShow(env *Env, args Args) error {
	if args.JSON {
		return NewJSONResponse("config", env.Config).Write(env.Out)
	}
	_, err := fmt.Fprintln(env.Out, env.Config.String())
	return err
}

func configPath(env *Env, args Args) error {
	path, err := config.ActivePath()
	if err != nil {
		return &CommandError{Command: "config", Err: err, Code: ExitConfigError}
	}
	_, statErr := os.Stat(path)
	if args.JSON {
		return NewJSONResponse("config", map[string]any{"path": path, "exists": statErr == nil}).Write(env.Out)
	}
	if statErr != nil {
		fmt.Fprintf(env.Out, "%s (not created yet; run 'mailcheck config init')\n", path)
		return nil
	}
	fmt.Fprintln(env.Out, path)
	return nil
}

func configInit(env *Env, args Args) error {
	path, err := config.ActivePath()
	if err != nil {
		return &CommandError{Command: "config", Err: err, Code: ExitConfigError}
	}
	if _, err := os.Stat(path); err == nil {
		return &CommandError{Command: "config", Message: "config already exists: " + path, Code: ExitConfigError}
	}
	if err := config.EnsureConfigDir(); err != nil {
		return &CommandError{Command: "config", Err: err, Code: ExitConfigError}
	}
	if err := config.SaveToPath(config.Default(), path); err != nil {
		return &CommandError{Command: "config", Err: err, Code: ExitConfigError}
	}
	if !args.Quiet {
		fmt.Fprintln(env.Out, "Wrote "+path)
	}
	return nil
}

func configGet(env *Env, args Args) error {
	if args.ConfigKey == "" {
		return &CommandError{Command: "config get", Message: "key is required", Code: ExitUsageError}
	}
	v, err := env.Config.Get(args.ConfigKey)
	if err != nil {
		return &CommandError{Command: "config get", Err: err, Code: ExitUsageError}
	}
	if args.JSON {
		return NewJSONResponse("config", map[string]any{args.ConfigKey: v}).Write(env.Out)
	}
	if list, ok := v.([]string); ok {
		v = strings.Join(list, ",")
	}
	_, err = fmt.Fprintln(env.Out, v)
	return err
}

// configSet edits the file on disk, not the loaded config, so environment
// overrides are never written back.
func configSet(env *Env, args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return &CommandError{Command: "config set", Message: "usage: config set <key> <value>", Code: ExitUsageError}
	}

	path, err := config.ActivePath()
	if err != nil {
		return &CommandError{Command: "config set", Err: err, Code: ExitConfigError}
	}
	cfg := config.Default()
	if _, statErr := os.Stat(path); statErr == nil {
		if cfg, err = config.LoadFile(path); err != nil {
			return &CommandError{Command: "config set", Err: err, Code: ExitConfigError}
		}
	}

	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return &CommandError{Command: "config set", Err: err, Code: ExitUsageError}
	}
	if err := cfg.Validate(); err != nil {
		return &CommandError{Command: "config set", Message: "rejected", Err: err, Code: ExitConfigError}
	}
	if err := config.SaveToPath(cfg, path); err != nil {
		return &CommandError{Command: "config set", Err: err, Code: ExitConfigError}
	}
	if !args.Quiet {
		fmt.Fprintf(env.Out, "%s = %s\n", args.ConfigKey, args.ConfigVal)
	}
	return nil
}
