// Package teams sends order alerts to a Microsoft Teams channel through an
// incoming webhook.
package teams

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

// WebhookSender implements ports.NotificationSender against a Teams
// incoming webhook URL. Any non-2xx response or transport error is reported
// as a failure; the caller decides how to record it.
type WebhookSender struct {
	webhookURL string
	client     *http.Client
}

// NewWebhookSender creates a sender posting to the given webhook URL.
func NewWebhookSender(webhookURL string) *WebhookSender {
	return &WebhookSender{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: requestTimeout},
	}
}

type webhookPayload struct {
	Text string `json:"text"`
}

// Send posts one message card to the channel.
func (s *WebhookSender) Send(ctx context.Context, message string) error {
	payload, err := json.Marshal(webhookPayload{Text: message})
	if err != nil {
		return fmt.Errorf("marshal Teams payload: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build Teams request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := s.client.Do(request)
	if err != nil {
		return fmt.Errorf("post Teams webhook: %w", err)
	}
	defer response.Body.Close()

	// Drain the body so the connection can be reused.
	_, _ = io.Copy(io.Discard, response.Body)

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("Teams webhook returned status %d", response.StatusCode)
	}

	return nil
}
