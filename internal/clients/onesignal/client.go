// Package onesignal is a minimal REST client for the OneSignal push API.
package onesignal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
)

const (
	defaultBaseURL = "https://onesignal.com"
	readyTimeout   = 5 * time.Second
)

// ErrNotReady marks a failed readiness probe; callers surface it as an
// explicit error state with manual retry rather than failing silently.
type ErrNotReady struct {
	Cause error
}

func (e *ErrNotReady) Error() string {
	return fmt.Sprintf("push service not ready: %v", e.Cause)
}

func (e *ErrNotReady) Unwrap() error { return e.Cause }

// Notification is the outbound payload. Exactly one of ExternalUserID or
// PlayerID selects the recipient. SendAfter schedules delivery.
type Notification struct {
	ExternalUserID string
	PlayerID       string
	Message        string
	SendAfter      *time.Time
}

type Client interface {
	Ready(ctx context.Context) error
	Send(ctx context.Context, n Notification) error
}

type client struct {
	log        *logger.Logger
	baseURL    string
	appID      string
	apiKey     string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	appID := os.Getenv("ONESIGNAL_APP_ID")
	if appID == "" {
		return nil, fmt.Errorf("missing ONESIGNAL_APP_ID")
	}
	apiKey := os.Getenv("ONESIGNAL_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing ONESIGNAL_API_KEY")
	}
	baseURL := os.Getenv("ONESIGNAL_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &client{
		log:        log.With("service", "OneSignalClient"),
		baseURL:    baseURL,
		appID:      appID,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// Ready probes the app endpoint with a bounded timeout.
func (c *client) Ready(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/apps/"+c.appID, nil)
	if err != nil {
		return &ErrNotReady{Cause: err}
	}
	req.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ErrNotReady{Cause: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &ErrNotReady{Cause: fmt.Errorf("status %d", resp.StatusCode)}
	}
	return nil
}

type notificationRequest struct {
	AppID            string            `json:"app_id"`
	IncludeExternal  []string          `json:"include_external_user_ids,omitempty"`
	IncludePlayerIDs []string          `json:"include_player_ids,omitempty"`
	Contents         map[string]string `json:"contents"`
	SendAfter        string            `json:"send_after,omitempty"`
}

func (c *client) Send(ctx context.Context, n Notification) error {
	if n.Message == "" {
		return fmt.Errorf("notification message required")
	}
	body := notificationRequest{
		AppID:    c.appID,
		Contents: map[string]string{"en": n.Message, "he": n.Message},
	}
	switch {
	case n.PlayerID != "":
		body.IncludePlayerIDs = []string{n.PlayerID}
	case n.ExternalUserID != "":
		body.IncludeExternal = []string{n.ExternalUserID}
	default:
		return fmt.Errorf("notification recipient required")
	}
	if n.SendAfter != nil {
		body.SendAfter = n.SendAfter.UTC().Format(time.RFC3339)
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/notifications", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Basic "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("onesignal http %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
