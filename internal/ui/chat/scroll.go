// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

// scrollSync re-renders the timeline into the viewport and moves to the
// newest entry. It is called after every timeline change and does nothing
// until the viewport has been given a height.
func (m *Model) scrollSync() {
	if m.viewport.Height <= 0 {
		return
	}
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

// refreshContent re-renders without moving, for spinner frames and other
// changes that leave the timeline as it was.
func (m *Model) refreshContent() {
	if m.viewport.Height <= 0 {
		return
	}
	m.viewport.SetContent(m.renderMessages())
}
