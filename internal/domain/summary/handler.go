package summary

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/meditrack/internal/platform/docstore"
	"github.com/meditrack/meditrack/pkg/datekey"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:patient/summary", h.PatientSummary)
	api.GET("/doctors/:doctor/summary", h.DoctorSummary)
}

func (h *Handler) PatientSummary(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = datekey.Format(h.svc.now())
	}
	out, err := h.svc.SummarizeForPatient(c.Request().Context(), c.Param("patient"), date)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) DoctorSummary(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = datekey.Format(h.svc.now())
	}
	out, err := h.svc.SummarizeForDoctor(c.Request().Context(), c.Param("doctor"), date)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}
