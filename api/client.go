// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/versus/models"
)

// DefaultBaseURL is used when NewClient is given an empty base URL.
const DefaultBaseURL = "http://localhost:3318"

// Client talks to the versus API. Every request path is resolved against
// BaseURL.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client. A zero timeout means no client-side timeout
// beyond the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("failed to %s: %s (%d)", e.Op, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("failed to %s (%d)", e.Op, e.StatusCode)
}

// NewRequestID returns a fresh id for vote deduplication.
func NewRequestID() string {
	return uuid.NewString()
}

// do sends a JSON request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to %s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp models.ErrorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&errResp)
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Message: errResp.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to %s: decode response: %w", op, err)
	}
	return nil
}

// GetQuestion fetches a question and its tallies.
func (c *Client) GetQuestion(ctx context.Context, id int64) (models.Question, error) {
	var q models.Question
	path := "/api/question?" + url.Values{"id": {strconv.FormatInt(id, 10)}}.Encode()
	err := c.do(ctx, "fetch question", http.MethodGet, path, nil, &q)
	return q, err
}

// ListQuestions returns the ids of every question the server knows.
func (c *Client) ListQuestions(ctx context.Context) ([]int64, error) {
	var resp models.QuestionListResponse
	if err := c.do(ctx, "list questions", http.MethodGet, "/api/questions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.IDs, nil
}

// Vote adds one vote to side. An empty requestID gets a fresh one; pass the
// same id again to retry without double counting.
func (c *Client) Vote(ctx context.Context, id int64, side, requestID string) (models.Question, error) {
	if requestID == "" {
		requestID = NewRequestID()
	}
	req := models.VoteRequest{ID: id, WhichVote: side, Value: 1, RequestID: requestID}

	var q models.Question
	err := c.do(ctx, "vote", http.MethodPost, "/api/vote", req, &q)
	return q, err
}

// GetThread fetches the chat thread for a question. A null body decodes to an
// empty thread.
func (c *Client) GetThread(ctx context.Context, questionID int64) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	path := "/api/chat/" + strconv.FormatInt(questionID, 10)
	if err := c.do(ctx, "fetch messages", http.MethodGet, path, nil, &messages); err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	return messages, nil
}

// PostMessage creates a message in a question's thread.
func (c *Client) PostMessage(ctx context.Context, questionID int64, text string) (models.ChatMessage, error) {
	var msg models.ChatMessage
	req := models.PostMessageRequest{QuestionID: questionID, Text: text}
	err := c.do(ctx, "send message", http.MethodPost, "/api/chat", req, &msg)
	return msg, err
}

// Like adds a like to a message and returns the updated message.
func (c *Client) Like(ctx context.Context, messageID string) (models.ChatMessage, error) {
	var msg models.ChatMessage
	err := c.do(ctx, "like message", http.MethodPost, "/api/chat/like", models.LikeRequest{MessageID: messageID}, &msg)
	return msg, err
}

// Reply appends a reply to a message and returns the updated message.
func (c *Client) Reply(ctx context.Context, messageID, text string) (models.ChatMessage, error) {
	var msg models.ChatMessage
	req := models.ReplyRequest{MessageID: messageID, ReplyText: text}
	err := c.do(ctx, "send reply", http.MethodPost, "/api/chat/reply", req, &msg)
	return msg, err
}
