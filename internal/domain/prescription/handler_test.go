package prescription

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func seededHandler(t *testing.T) (*Handler, *Service) {
	t.Helper()
	svc := newTestService(time.Date(2025, 3, 5, 6, 0, 0, 0, time.Local))
	return NewHandler(svc), svc
}

func TestHandler_Create(t *testing.T) {
	h, _ := seededHandler(t)
	e := echo.New()

	body := `{"medicine":"Tachipirina","total_doses":3,"interval_hours":8}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patient")
	c.SetParamValues("mario")

	if err := h.Create(c); err != nil {
		t.Fatalf("Create handler error = %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var p Prescription
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if p.Medicine != "Tachipirina" || p.StartDate != "5-3-2025" {
		t.Errorf("response = %+v", p)
	}
}

func TestHandler_Create_InvalidDoses(t *testing.T) {
	h, _ := seededHandler(t)
	e := echo.New()

	body := `{"medicine":"Tachipirina","total_doses":0,"interval_hours":8}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patient")
	c.SetParamValues("mario")

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_Create_Duplicate(t *testing.T) {
	h, svc := seededHandler(t)
	e := echo.New()

	if _, err := svc.Create(context.Background(), "mario", CreateRequest{Medicine: "Tachipirina", TotalDoses: 1, IntervalHours: 8}); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	body := `{"medicine":"Tachipirina","total_doses":1,"interval_hours":8}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patient")
	c.SetParamValues("mario")

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestHandler_MarkTaken(t *testing.T) {
	h, svc := seededHandler(t)
	e := echo.New()

	if _, err := svc.Create(context.Background(), "mario", CreateRequest{Medicine: "Tachipirina", TotalDoses: 3, IntervalHours: 8}); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"taken":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patient", "medicine", "index")
	c.SetParamValues("mario", "Tachipirina", "1")

	if err := h.MarkTaken(c); err != nil {
		t.Fatalf("MarkTaken handler error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var a Administration
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !a.Taken || a.Index != 1 {
		t.Errorf("response = %+v", a)
	}
}

func TestHandler_MarkTaken_BadIndex(t *testing.T) {
	h, _ := seededHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"taken":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patient", "medicine", "index")
	c.SetParamValues("mario", "Tachipirina", "uno")

	err := h.MarkTaken(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_MarkTaken_NotFound(t *testing.T) {
	h, _ := seededHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"taken":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patient", "medicine", "index")
	c.SetParamValues("mario", "Tachipirina", "7")

	err := h.MarkTaken(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_DaySheet_RequiresDate(t *testing.T) {
	h, _ := seededHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patient")
	c.SetParamValues("mario")

	err := h.DaySheet(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
