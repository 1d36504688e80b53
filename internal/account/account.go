// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package account signs users in and out. It is shared by the TUI forms and
// the CLI commands, and owns the user-facing wording of every failure.
package account

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jeranaias/soulfull-tui/internal/cloud"
	"github.com/jeranaias/soulfull-tui/internal/storage"
)

// Messages shown when signing in or up fails.
const (
	MsgUserNotFound    = "User does not exist"
	MsgLoginFailed     = "Login failed"
	MsgSignupFailed    = "Signup failed"
	MsgConnection      = "Connection error. Please try again."
	MsgInvalidResponse = "Invalid response from server"
	MsgFixPassword     = "Please fix password requirements"
	MsgMissingFields   = "Please fill in all fields"
	MsgInvalidEmail    = "Please enter a valid email address"
)

// MinPasswordLen is the shortest password signup accepts.
const MinPasswordLen = 8

// Client is the subset of the API client used for authentication.
type Client interface {
	Login(ctx context.Context, req cloud.LoginRequest) (*cloud.AuthResult, error)
	Signup(ctx context.Context, req cloud.SignupRequest) (*cloud.AuthResult, error)
}

// Error is a failure carrying the message to show the user.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the user-facing text for err.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// =============================================================================
// SERVICE
// =============================================================================

// Service performs login, signup and logout against a session store.
type Service struct {
	client   Client
	store    storage.SessionStore
	validate *validator.Validate
	log      *zap.Logger
}

// NewService creates a service.
func NewService(client Client, store storage.SessionStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		client:   client,
		store:    store,
		validate: validator.New(),
		log:      log,
	}
}

// Login signs in and persists the session. Failures are *Error values.
func (s *Service) Login(ctx context.Context, req cloud.LoginRequest) (storage.Credentials, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := s.check(req); err != nil {
		return storage.Credentials{}, err
	}

	res, err := s.client.Login(ctx, req)
	if err != nil {
		s.log.Info("login failed", zap.Error(err))
		return storage.Credentials{}, &Error{Message: describe(err, MsgLoginFailed), Err: err}
	}
	return s.persist(res)
}

// Signup registers an account, which also signs it in, and persists the
// session. The password rules are checked before anything is sent.
func (s *Service) Signup(ctx context.Context, req cloud.SignupRequest) (storage.Credentials, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	if problem := PasswordProblem(req.Password); problem != "" {
		return storage.Credentials{}, &Error{Message: MsgFixPassword, Err: errors.New(problem)}
	}
	if err := s.check(req); err != nil {
		return storage.Credentials{}, err
	}

	res, err := s.client.Signup(ctx, req)
	if err != nil {
		s.log.Info("signup failed", zap.Error(err))
		return storage.Credentials{}, &Error{Message: describe(err, MsgSignupFailed), Err: err}
	}
	return s.persist(res)
}

// Logout clears the stored session.
func (s *Service) Logout() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.log.Info("logged out")
	return nil
}

func (s *Service) persist(res *cloud.AuthResult) (storage.Credentials, error) {
	if err := s.store.Write(res.Token, res.User); err != nil {
		s.log.Error("failed to store session", zap.Error(err))
		return storage.Credentials{}, &Error{Message: "Could not save session: " + err.Error(), Err: err}
	}
	creds := storage.Credentials{Token: res.Token, Profile: res.User}
	s.log.Info("signed in", zap.String("user", creds.DisplayName()))
	return creds, nil
}

// check runs the struct's validate tags.
func (s *Service) check(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "email" {
				return &Error{Message: MsgInvalidEmail, Err: err}
			}
		}
	}
	return &Error{Message: MsgMissingFields, Err: err}
}

// describe maps an API error to a message, using fallback when the server
// gave none.
func describe(err error, fallback string) string {
	var apiErr *cloud.APIError
	switch {
	case errors.Is(err, cloud.ErrUserNotFound):
		return MsgUserNotFound
	case errors.Is(err, cloud.ErrTransport):
		return MsgConnection
	case errors.Is(err, cloud.ErrMalformedResponse):
		return MsgInvalidResponse
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	default:
		return fallback
	}
}

// PasswordProblem returns the first rule password breaks, or "" when it is
// acceptable.
func PasswordProblem(password string) string {
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return "Password must be at least 8 characters long"
	}
	if !strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		return "Password must contain at least one uppercase letter"
	}
	if !strings.ContainsAny(password, "0123456789") {
		return "Password must contain at least one digit"
	}
	return ""
}
