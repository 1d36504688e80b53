// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud is the HTTP client for the hosted SoulFull service.
//
// # Endpoints
//
//   - POST /api/chat: one user message in, one assistant reply out
//   - POST /api/report: chat history in, report with metrics out
//   - POST /api/login and /api/signup: credentials in, session token out
//
// # Errors
//
// Every method returns one of a small set of errors so callers can branch
// with errors.Is / errors.As:
//
//   - ErrUnauthorized: the server rejected the bearer token (HTTP 401)
//   - ErrUserNotFound: login for an unknown user (HTTP 404)
//   - ErrTransport: the request never produced an HTTP response
//   - ErrMalformedResponse: 2xx response without the expected fields
//   - *APIError: any other non-2xx status, with the server's message if any
//
// Requests are never retried. A retried chat request could make the
// assistant answer the same message twice.
package cloud
