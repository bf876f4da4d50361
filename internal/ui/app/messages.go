// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import "github.com/jeranaias/mailcheck-tui/internal/config"

// ConfigReloadedMsg carries a configuration that changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// recentLoadedMsg carries the recent addresses read from history.
type recentLoadedMsg struct {
	emails []string
	err    error
}
