// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components holds the pieces shared by every soulfull view: the
// navigation messages views emit, the header bar, and the markdown renderer.
package components
