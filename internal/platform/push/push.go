// Package push delivers mobile push notifications through an HTTP relay.
// The relay forwards each message to the device identified by the recipient's
// registered push target.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Notification is a single push message addressed to one device.
type Notification struct {
	RecipientToken    string                 `json:"recipientToken"`
	SubscriptionToken string                 `json:"subscriptionToken"`
	Title             string                 `json:"title"`
	Message           string                 `json:"message"`
	Data              map[string]interface{} `json:"data,omitempty"`
}

// Sink delivers push notifications. Delivery failures are reported as errors
// but callers are expected to treat them as non-fatal.
type Sink interface {
	Send(ctx context.Context, n Notification) error
}

// HTTPSink posts notifications to a relay endpoint.
type HTTPSink struct {
	url    string
	client *http.Client
	logger zerolog.Logger
}

func NewHTTPSink(url string, timeout time.Duration, logger zerolog.Logger) *HTTPSink {
	return &HTTPSink{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger.With().Str("component", "push").Logger(),
	}
}

func (s *HTTPSink) Send(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshaling notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Str("recipient", n.RecipientToken).Msg("push delivery failed")
		return fmt.Errorf("POST %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Error().
			Int("status", resp.StatusCode).
			Str("recipient", n.RecipientToken).
			Str("response", string(respBody)).
			Msg("push relay rejected notification")
		return fmt.Errorf("push relay returned status %d", resp.StatusCode)
	}

	s.logger.Debug().
		Str("recipient", n.RecipientToken).
		Str("title", n.Title).
		Dur("latency", time.Since(start)).
		Msg("push delivered")
	return nil
}
