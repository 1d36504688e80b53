// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry means the token is opaque or carries no exp claim.
var ErrNoExpiry = errors.New("token has no expiry")

// Expiry returns the exp claim of a JWT bearer token without verifying its
// signature. The client treats tokens as opaque; this is only for display
// and for warning before the server starts rejecting requests.
func Expiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, ErrNoExpiry
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// Remaining returns how long until token expires, relative to now. Tokens
// without an exp claim report ok == false.
func Remaining(token string, now time.Time) (d time.Duration, ok bool) {
	exp, err := Expiry(token)
	if err != nil {
		return 0, false
	}
	return exp.Sub(now), true
}
