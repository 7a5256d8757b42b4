package identity

import (
	"errors"
	"net/http"

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
	api.POST("/users", h.RegisterUser)
	api.GET("/users/:username", h.GetUser)
	api.PUT("/users/:username/push-target", h.SetPushTarget)

	doctorOnly := api.Group("", auth.RequireRole(auth.RoleDoctor))
	doctorOnly.POST("/patients", h.RegisterPatient)
	doctorOnly.GET("/doctors/:doctor/patients", h.ListPatientsForDoctor)

	api.GET("/patients/:patient", h.GetPatient)
}

func (h *Handler) RegisterUser(c echo.Context) error {
	var u User
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RegisterUser(c.Request().Context(), &u); err != nil {
		switch {
		case errors.Is(err, ErrInvalidUser):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, docstore.ErrDuplicate):
			return echo.NewHTTPError(http.StatusConflict, "user already exists")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) GetUser(c echo.Context) error {
	u, err := h.svc.GetUser(c.Request().Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) SetPushTarget(c echo.Context) error {
	var target PushTarget
	if err := c.Bind(&target); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	err := h.svc.SetPushTarget(c.Request().Context(), c.Param("username"), target)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidUser):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, docstore.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RegisterPatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RegisterPatient(c.Request().Context(), &p); err != nil {
		switch {
		case errors.Is(err, ErrInvalidUser):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, docstore.ErrNotFound):
			return echo.NewHTTPError(http.StatusBadRequest, "doctor not found")
		case errors.Is(err, docstore.ErrDuplicate):
			return echo.NewHTTPError(http.StatusConflict, "patient already exists")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.svc.GetPatient(c.Request().Context(), c.Param("patient"))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPatientsForDoctor(c echo.Context) error {
	patients, err := h.svc.ListPatientsForDoctor(c.Request().Context(), c.Param("doctor"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, patients)
}
