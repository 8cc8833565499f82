// Package sms sends text messages through the third-party HTTP gateway.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spec-kit/citizen-engagement/internal/config"
)

// ErrNotConfigured is returned when no gateway token is set.
var ErrNotConfigured = errors.New("sms gateway not configured")

// GatewayError carries the HTTP status returned by the gateway.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("sms gateway returned status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether sending again may succeed: server errors and
// rate limiting are transient, other client errors are not.
func (e *GatewayError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// Message is the gateway request body.
type Message struct {
	To      string `json:"to"`
	Message string `json:"message"`
	Sender  string `json:"sender,omitempty"`
}

// Client posts messages to the gateway with a bearer token.
type Client struct {
	apiURL     string
	token      string
	sender     string
	httpClient *http.Client
}

// NewClient builds a gateway client with the configured timeout.
func NewClient(cfg config.SMSConfig) *Client {
	return &Client{
		apiURL: cfg.APIURL,
		token:  cfg.APIToken,
		sender: cfg.Sender,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Send delivers one message. Non-2xx responses yield a *GatewayError.
func (c *Client) Send(ctx context.Context, to, text string) error {
	if c.token == "" || c.apiURL == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(Message{To: to, Message: text, Sender: c.sender})
	if err != nil {
		return fmt.Errorf("marshal sms: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &GatewayError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
