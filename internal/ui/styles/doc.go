// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the soulfull TUI.
//
// Colors are Lip Gloss AdaptiveColors so they follow the terminal's light or
// dark background. Theme bundles the styles every view uses.
//
// # Usage
//
//	theme := styles.NewTheme("auto")
//	theme.SetSize(width, height)
//	fmt.Println(theme.UserBubble.Render("hello"))
package styles
