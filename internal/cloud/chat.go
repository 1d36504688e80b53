// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jeranaias/soulfull-tui/internal/model"
)

// ChatMessage is one entry of a chat request.
type ChatMessage struct {
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat. Only the newest user message is
// sent; the service keeps its own context.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse is the success body of POST /api/chat.
type ChatResponse struct {
	Content *string `json:"content"`
}

// Chat sends one user message and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, token, text string) (string, error) {
	status, body, err := c.post(ctx, "/api/chat", token, ChatRequest{
		Messages: []ChatMessage{{Content: text}},
	})
	if err != nil {
		return "", err
	}
	if !isSuccess(status) {
		return "", handleErrorResponse(status, body)
	}

	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Content == nil || *resp.Content == "" {
		return "", fmt.Errorf("%w: reply has no content", ErrMalformedResponse)
	}
	return *resp.Content, nil
}

// ReportRequest is the body of POST /api/report.
type ReportRequest struct {
	ChatHistory []model.Message `json:"chatHistory"`
}

// Report asks the service to summarise history.
func (c *Client) Report(ctx context.Context, token string, history []model.Message) (*model.ReportPayload, error) {
	if history == nil {
		history = []model.Message{}
	}
	status, body, err := c.post(ctx, "/api/report", token, ReportRequest{ChatHistory: history})
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, handleErrorResponse(status, body)
	}

	// A body that is not a JSON object is malformed. An object with missing
	// fields is accepted as is; the report view shows its defaults for them.
	var payload *model.ReportPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: empty report body", ErrMalformedResponse)
	}
	return payload, nil
}
