package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestHTTPSender_SendsPayload(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewHTTPSender(srv.URL, zerolog.Nop())
	msg := Message{To: "paziente@example.com", Subject: "Visita confermata", Text: "La visita del 5-3-2025 alle 9:30."}
	if err := sender.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if got != msg {
		t.Errorf("relay received %+v, want %+v", got, msg)
	}
}

func TestHTTPSender_EmptyRecipient(t *testing.T) {
	sender := NewHTTPSender("http://127.0.0.1:1", zerolog.Nop())
	if err := sender.Send(context.Background(), Message{Subject: "x"}); err == nil {
		t.Fatal("expected error for missing recipient")
	}
}

func TestHTTPSender_RelayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "smtp unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	sender := NewHTTPSender(srv.URL, zerolog.Nop())
	if err := sender.Send(context.Background(), Message{To: "a@b.c"}); err == nil {
		t.Fatal("expected error for 502 response")
	}
}
