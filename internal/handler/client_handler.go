package handler

import (
	"net/http"

	"lms/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /clients のAPI。認証必須。
type ClientHandler struct {
	uc *usecase.ClientUsecase
}

// DI
func NewClientHandler(uc *usecase.ClientUsecase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

func (h *ClientHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/clients", h.list)
	g.POST("/clients", h.create)
	g.GET("/clients/:id", h.get)
	g.PUT("/clients/:id", h.update)
	g.DELETE("/clients/:id", h.delete)
}

func (h *ClientHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ClientHandler) get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ClientHandler) create(c echo.Context) error {
	var in usecase.ClientInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("validation error"))
	}

	out, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *ClientHandler) update(c echo.Context) error {
	var in usecase.ClientInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("validation error"))
	}

	out, err := h.uc.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ClientHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted client"})
}
