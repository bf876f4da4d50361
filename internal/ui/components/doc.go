// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components renders the pieces of the checker view: the result
// panel, the loading line, the error box, the suggestion list, the
// notification toast and the status bar.
//
// Components are plain render functions or small value types. They hold no
// timers and never mutate widget state; the app model owns both.
package components
