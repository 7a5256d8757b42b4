package mail

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestMailHandler_Send(t *testing.T) {
	sender := NewMockSender()
	h := NewHandler(sender)
	e := echo.New()

	body := `{"to":"paziente@example.com","subject":"Visita","text":"La visita è confermata."}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/mail", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Send(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Send handler error = %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rec.Code)
	}
	if sent := sender.Sent(); len(sent) != 1 || sent[0].To != "paziente@example.com" {
		t.Errorf("sent = %+v", sent)
	}
}

func TestMailHandler_MissingFields(t *testing.T) {
	h := NewHandler(NewMockSender())
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/mail", strings.NewReader(`{"text":"ciao"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Send(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
