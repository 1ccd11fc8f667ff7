package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "shiftware/internal/platform/errors"
)

// TokenSource supplies the current bearer token. An empty token means the
// request goes out unauthenticated (only /login qualifies).
type TokenSource interface {
	Token() string
}

// Client is a JSON client for the Shiftware REST API. It owns bearer
// injection, request correlation IDs, and the error taxonomy mapping;
// module adapters own wire types.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, nil)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, nil)
}

// PostIdempotent is Post with an Idempotency-Key header, for mutating
// calls that may be retried.
func (c *Client) PostIdempotent(ctx context.Context, path string, body, out any, key string) error {
	return c.do(ctx, http.MethodPost, path, body, out, map[string]string{"Idempotency-Key": key})
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, headers map[string]string) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("api request failed", "op", op, "request_id", requestID, "err", err)
		return &apperrors.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	slog.Debug("api request", "op", op, "request_id", requestID, "status", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", op, apperrors.ErrUnauthorized)
	case resp.StatusCode >= 400:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &apperrors.APIError{Status: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// StaticToken adapts a fixed token string to TokenSource, for probing a
// credential that is not (yet) the active session's.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }
