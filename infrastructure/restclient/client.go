// Package restclient provides a client for the sibling email service.
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"greencity/application/email"
	"greencity/infrastructure/persistence"
	"greencity/pkg/logger"

	"go.uber.org/zap"
)

// Email service endpoints.
const (
	AddEventPath                 = "/email/addEvent"
	EventCommentNotificationPath = "/email/sendEventCommentNotification"
	MentionedInEventCommentPath  = "/email/sendMentionedInEventCommentNotification"
)

const (
	defaultTimeout    = 10 * time.Second
	maxErrorBodyBytes = 1024
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("email service %s returned %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// =============================================================================
// Client
// =============================================================================

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("email service base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) AddEvent(ctx context.Context, msg email.EventCreatedMessage) error {
	return c.post(ctx, AddEventPath, msg)
}

func (c *Client) SendEventCommentNotification(ctx context.Context, msg email.EventCommentMessage) error {
	return c.post(ctx, EventCommentNotificationPath, msg)
}

func (c *Client) SendMentionedInEventCommentNotification(ctx context.Context, msg email.EventCommentMessage) error {
	return c.post(ctx, MentionedInEventCommentPath, msg)
}

// post sends payload as JSON, forwarding the caller's bearer token.
func (c *Client) post(ctx context.Context, endpoint string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := persistence.BearerTokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if requestID := persistence.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	logger.FromContext(ctx).Debug("Email service call succeeded",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// =============================================================================
// LoggingSender
// =============================================================================

// LoggingSender stands in for the email service when email is disabled.
type LoggingSender struct{}

func (LoggingSender) AddEvent(ctx context.Context, msg email.EventCreatedMessage) error {
	logger.FromContext(ctx).Info("Email disabled, event announcement skipped",
		zap.String("endpoint", AddEventPath),
		zap.String("title", msg.Title),
	)
	return nil
}

func (LoggingSender) SendEventCommentNotification(ctx context.Context, msg email.EventCommentMessage) error {
	logCommentMessage(ctx, EventCommentNotificationPath, msg)
	return nil
}

func (LoggingSender) SendMentionedInEventCommentNotification(ctx context.Context, msg email.EventCommentMessage) error {
	logCommentMessage(ctx, MentionedInEventCommentPath, msg)
	return nil
}

func logCommentMessage(ctx context.Context, endpoint string, msg email.EventCommentMessage) {
	logger.FromContext(ctx).Info("Email disabled, comment notification skipped",
		zap.String("endpoint", endpoint),
		zap.String("receiver", msg.ReceiverEmail),
		zap.Int64("comment_id", msg.CommentID),
	)
}

var (
	_ email.Sender = (*Client)(nil)
	_ email.Sender = LoggingSender{}
)
