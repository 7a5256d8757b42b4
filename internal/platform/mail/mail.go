// Package mail sends transactional email through an HTTP relay service.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Message is a plain-text email handed off to the relay.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}

// HTTPSender posts messages to a mail relay endpoint.
type HTTPSender struct {
	url    string
	client *http.Client
	logger zerolog.Logger
}

func NewHTTPSender(url string, logger zerolog.Logger) *HTTPSender {
	return &HTTPSender{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger.With().Str("component", "mail").Logger(),
	}
}

func (s *HTTPSender) Send(ctx context.Context, m Message) error {
	if m.To == "" {
		return fmt.Errorf("mail message has no recipient")
	}

	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling mail message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Str("to", m.To).Msg("mail delivery failed")
		return fmt.Errorf("POST %s: %w", s.url, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Error().Int("status", resp.StatusCode).Str("to", m.To).Msg("mail relay rejected message")
		return fmt.Errorf("mail relay returned status %d", resp.StatusCode)
	}

	s.logger.Debug().Str("to", m.To).Str("subject", m.Subject).Msg("mail sent")
	return nil
}

// MockSender records messages in memory for tests.
type MockSender struct {
	mu   sync.Mutex
	sent []Message
}

func NewMockSender() *MockSender {
	return &MockSender{}
}

func (m *MockSender) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *MockSender) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
