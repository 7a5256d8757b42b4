package reminder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/meditrack/internal/domain/prescription"
	"github.com/meditrack/meditrack/internal/domain/summary"
	"github.com/meditrack/meditrack/pkg/datekey"
)

func postWelcome(t *testing.T, h *Handler, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/welcome", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, h.Welcome(e.NewContext(req, rec))
}

func TestWelcomeHandler_PatientSchedulesReminders(t *testing.T) {
	now := time.Now()
	d, sink, admins, sums := newFixture(now)
	sums.patient = &summary.PatientSummary{Patient: "mario", Due: 1}
	admins.records = []*prescription.Administration{
		{Patient: "mario", Medicine: "Tachipirina", Index: 0, DueDate: datekey.Format(now), DueHour: 23, Taken: false},
	}
	h := NewHandler(d)

	rec, err := postWelcome(t, h, `{"username":"mario","role":"patient"}`)
	if err != nil {
		t.Fatalf("Welcome handler error = %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}

	var resp struct {
		Scheduled int    `json:"scheduled"`
		Role      string `json:"role"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Scheduled != 1 {
		t.Errorf("scheduled = %d, want 1", resp.Scheduled)
	}
	if got := len(sink.Sent()); got != 1 {
		t.Errorf("welcome messages sent = %d, want 1", got)
	}
	d.StopAll()
}

func TestWelcomeHandler_ResolvesRoleFromDirectory(t *testing.T) {
	d, _, _, sums := newFixture(time.Now())
	sums.doctor = &summary.DoctorSummary{Doctor: "drrossi"}
	h := NewHandler(d)

	rec, err := postWelcome(t, h, `{"username":"drrossi"}`)
	if err != nil {
		t.Fatalf("Welcome handler error = %v", err)
	}

	var resp struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Role != "doctor" {
		t.Errorf("role = %q, want doctor", resp.Role)
	}
}

func TestWelcomeHandler_UnknownUser(t *testing.T) {
	d, _, _, _ := newFixture(time.Now())
	h := NewHandler(d)

	_, err := postWelcome(t, h, `{"username":"fantasma"}`)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestWelcomeHandler_RequiresUsername(t *testing.T) {
	d, _, _, _ := newFixture(time.Now())
	h := NewHandler(d)

	_, err := postWelcome(t, h, `{}`)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
