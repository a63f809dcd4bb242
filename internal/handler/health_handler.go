package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.status)
}

func (h *HealthHandler) status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"Status": "Up and running"})
}
