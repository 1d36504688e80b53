// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest is the body of POST /api/signup.
type SignupRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthResult is what a successful login or signup yields.
type AuthResult struct {
	Token string
	User  json.RawMessage
}

type authResponse struct {
	Session *struct {
		AccessToken string `json:"access_token"`
	} `json:"session"`
	User json.RawMessage `json:"user"`
}

// Login exchanges a username and password for a session.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	status, body, err := c.post(ctx, "/api/login", "", req)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrUserNotFound
	}
	return parseAuth(status, body)
}

// Signup registers a new account. The service signs the user in directly.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	status, body, err := c.post(ctx, "/api/signup", "", req)
	if err != nil {
		return nil, err
	}
	return parseAuth(status, body)
}

func parseAuth(status int, body []byte) (*AuthResult, error) {
	if !isSuccess(status) {
		// Bad credentials also come back as 401 here; that is not a lost
		// session, so surface the server's message instead.
		if status == http.StatusUnauthorized {
			var eb errorBody
			_ = json.Unmarshal(body, &eb)
			return nil, &APIError{Status: status, Message: eb.Error}
		}
		return nil, handleErrorResponse(status, body)
	}

	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Session == nil || resp.Session.AccessToken == "" {
		return nil, fmt.Errorf("%w: no access token", ErrMalformedResponse)
	}
	user := resp.User
	if len(user) == 0 || string(user) == "null" {
		user = nil
	}
	return &AuthResult{Token: resp.Session.AccessToken, User: user}, nil
}
