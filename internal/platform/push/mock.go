package push

import (
	"context"
	"sync"
)

// MockSink records notifications in memory for tests.
type MockSink struct {
	mu   sync.Mutex
	sent []Notification
	err  error
}

func NewMockSink() *MockSink {
	return &MockSink{}
}

// FailWith makes every subsequent Send return err.
func (m *MockSink) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockSink) Send(_ context.Context, n Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, n)
	return nil
}

// Sent returns a copy of the notifications delivered so far.
func (m *MockSink) Sent() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.sent))
	copy(out, m.sent)
	return out
}
