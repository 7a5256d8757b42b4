package appointment

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/meditrack/internal/platform/auth"
	"github.com/meditrack/meditrack/internal/platform/docstore"
	"github.com/meditrack/meditrack/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/appointments", h.Create, auth.RequireRole(auth.RoleDoctor))
	api.DELETE("/appointments", h.Cancel, auth.RequireRole(auth.RoleDoctor))
	api.GET("/appointments", h.List)
}

func (h *Handler) Create(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &a); err != nil {
		switch {
		case errors.Is(err, ErrInvalidAppointment):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, docstore.ErrDuplicate):
			return echo.NewHTTPError(http.StatusConflict, "time slot already booked")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) List(c echo.Context) error {
	doctor := c.QueryParam("doctor")
	date := c.QueryParam("date")
	if doctor == "" || date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "doctor and date query parameters are required")
	}
	items, err := h.svc.ListForDoctorOnDate(c.Request().Context(), doctor, date)
	if err != nil {
		if errors.Is(err, ErrInvalidAppointment) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	pg := pagination.FromContext(c)
	start, end := pg.Slice(len(items))
	return c.JSON(http.StatusOK, pagination.NewResponse(items[start:end], len(items), pg.Limit, pg.Offset))
}

func (h *Handler) Cancel(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Cancel(c.Request().Context(), &a); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
