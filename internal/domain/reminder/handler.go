package reminder

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/meditrack/internal/platform/auth"
	"github.com/meditrack/meditrack/internal/platform/docstore"
)

type Handler struct {
	dispatcher *Dispatcher
}

func NewHandler(dispatcher *Dispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/sessions/welcome", h.Welcome)
}

// Welcome is the login hook: it sends the user's welcome summary and, for
// patients, arms today's dose reminders.
func (h *Handler) Welcome(c echo.Context) error {
	var body struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if body.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}

	ctx := c.Request().Context()
	role := body.Role
	if role == "" {
		user, err := h.dispatcher.directory.GetUser(ctx, body.Username)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "user not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		role = user.Role
	}

	if err := h.dispatcher.SendWelcomeSummary(ctx, body.Username, role); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	scheduled := 0
	if role == auth.RolePatient {
		n, err := h.dispatcher.ScheduleRemindersForToday(ctx, body.Username)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		scheduled = n
	}

	return c.JSON(http.StatusAccepted, map[string]interface{}{
		"username":  body.Username,
		"role":      role,
		"scheduled": scheduled,
	})
}
