// Package api is the HTTP/JSON client for the Apocrypha backend. Wire shapes
// mirror the server exactly; nothing here interprets content beyond decoding.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// CompletionStatus is the server's aggregate completion verdict.
type CompletionStatus struct {
	CompletedCount int  `json:"completed_count"`
	TotalCount     int  `json:"total_count"`
	CanSubmit      bool `json:"can_submit"`
}

// SessionStatus is the response of GET /api/session_status.
type SessionStatus struct {
	SessionID        string           `json:"session_id"`
	CompletionStatus CompletionStatus `json:"completion_status"`
	CanSubmit        bool             `json:"can_submit"`
}

// ChatResponse is the response of POST /api/chat.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
	Error     string `json:"error"`
}

// UpdateResult is the response of POST /api/update_consideration.
type UpdateResult struct {
	Success          bool             `json:"success"`
	CompletionStatus CompletionStatus `json:"completion_status"`
	Error            string           `json:"error"`
}

// SubmitResult is the response of POST /api/submit_idea.
type SubmitResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	IdeaID  string `json:"idea_id"`
	Error   string `json:"error"`
}

// CommentResult is the response of POST /api/add_comment.
type CommentResult struct {
	Success   bool   `json:"success"`
	CommentID string `json:"comment_id"`
	Error     string `json:"error"`
}

// Client talks to one backend instance. The session is a server-side cookie
// session, so the client carries a cookie jar for its lifetime.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api: create cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}, nil
}

// SessionStatus fetches the current session id and completion counts.
func (c *Client) SessionStatus(ctx context.Context) (SessionStatus, error) {
	var out SessionStatus
	if err := c.getJSON(ctx, "/api/session_status", &out); err != nil {
		return SessionStatus{}, err
	}
	return out, nil
}

// Chat runs one chat turn. A server-reported error field becomes an AppError.
func (c *Client) Chat(ctx context.Context, message string) (ChatResponse, error) {
	var out ChatResponse
	err := c.postJSON(ctx, "/api/chat", map[string]string{"message": message}, &out)
	if err != nil {
		return ChatResponse{}, err
	}
	if out.Response == "" {
		msg := out.Error
		if msg == "" {
			msg = "empty response"
		}
		return ChatResponse{}, &AppError{Op: "chat", Message: msg}
	}
	return out, nil
}

// UpdateConsideration persists one field's content.
func (c *Client) UpdateConsideration(ctx context.Context, id, content string) (UpdateResult, error) {
	var out UpdateResult
	body := map[string]string{
		"consideration_id": id,
		"content":          content,
	}
	if err := c.postJSON(ctx, "/api/update_consideration", body, &out); err != nil {
		return UpdateResult{}, err
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "update rejected"
		}
		return UpdateResult{}, &AppError{Op: "update_consideration", Message: msg}
	}
	return out, nil
}

// SubmitIdea submits the session's idea to the public marketplace.
func (c *Client) SubmitIdea(ctx context.Context) (SubmitResult, error) {
	var out SubmitResult
	if err := c.postJSON(ctx, "/api/submit_idea", nil, &out); err != nil {
		return SubmitResult{}, err
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "submission rejected"
		}
		return SubmitResult{}, &AppError{Op: "submit_idea", Message: msg}
	}
	return out, nil
}

// AddComment posts a reader comment on a submitted idea.
func (c *Client) AddComment(ctx context.Context, ideaID, comment, author string) (CommentResult, error) {
	var out CommentResult
	body := map[string]string{
		"idea_id": ideaID,
		"comment": comment,
		"author":  author,
	}
	if err := c.postJSON(ctx, "/api/add_comment", body, &out); err != nil {
		return CommentResult{}, err
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "comment rejected"
		}
		return CommentResult{}, &AppError{Op: "add_comment", Message: msg}
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &NetworkError{Op: "GET " + path, Err: err}
	}
	return c.doJSON(req, path, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &NetworkError{Op: "POST " + path, Err: err}
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return &NetworkError{Op: "POST " + path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, path, out)
}

func (c *Client) doJSON(req *http.Request, path string, out any) error {
	op := req.Method + " " + path
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// The server reports application failures with non-2xx codes and an
		// error field; surface the message when one decodes.
		var appErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &appErr) == nil && appErr.Error != "" {
			return &AppError{Op: op, Message: appErr.Error}
		}
		return &NetworkError{Op: op, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
