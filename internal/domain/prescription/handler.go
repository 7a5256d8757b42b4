package prescription

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/meditrack/internal/platform/auth"
	"github.com/meditrack/meditrack/internal/platform/docstore"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients/:patient/prescriptions", h.Create, auth.RequireRole(auth.RoleDoctor))
	api.GET("/patients/:patient/prescriptions", h.List)
	api.GET("/patients/:patient/doses", h.DaySheet)
	api.GET("/patients/:patient/medicines/:medicine/doses", h.ListForMedicine)
	api.PUT("/patients/:patient/medicines/:medicine/doses/:index", h.MarkTaken)
}

func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.Create(c.Request().Context(), c.Param("patient"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidPrescription):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrDuplicateKey):
			return echo.NewHTTPError(http.StatusConflict, "medicine already prescribed for patient")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context(), c.Param("patient"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DaySheet(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date query parameter is required")
	}
	items, err := h.svc.DaySheet(c.Request().Context(), c.Param("patient"), date)
	if err != nil {
		if errors.Is(err, ErrInvalidPrescription) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListForMedicine(c echo.Context) error {
	items, err := h.svc.ListForMedicine(c.Request().Context(), c.Param("patient"), c.Param("medicine"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) MarkTaken(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid dose index")
	}
	var body struct {
		Taken bool `json:"taken"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.svc.MarkTaken(c.Request().Context(), c.Param("patient"), c.Param("medicine"), index, body.Taken)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "administration record not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}
