package mail

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the relay over the API so the client apps can send
// courtesy emails without talking to the relay directly.
type Handler struct {
	sender Sender
}

func NewHandler(sender Sender) *Handler {
	return &Handler{sender: sender}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/mail", h.Send)
}

func (h *Handler) Send(c echo.Context) error {
	var m Message
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if m.To == "" || m.Subject == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "to and subject are required")
	}
	if err := h.sender.Send(c.Request().Context(), m); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "mail relay unavailable")
	}
	return c.JSON(http.StatusAccepted, map[string]string{"status": "sent"})
}
