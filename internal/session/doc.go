// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session gates the chat on a signed-in session and watches for the
// session going away.
//
// # Key Types
//
//   - Guard: checks the session store once per view mount
//   - Watcher: reports when the session file is removed by another process
//   - Expiry: reads the exp claim of the bearer token, if it has one
//
// # Usage
//
//	guard := session.NewGuard(store, logger)
//	res := guard.Check()
//	if !res.Allowed {
//	    return redirectToLogin
//	}
//	greeting := model.Greeting(res.DisplayName)
//
// The guard never validates the token with the server. A rejected token is
// discovered on the next request and handled by the dispatcher.
package session
