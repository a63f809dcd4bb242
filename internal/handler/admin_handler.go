package handler

import (
	"net/http"
	"strconv"
	"time"

	"lms/internal/domain/model"
	"lms/internal/middleware"
	"lms/internal/repository"
	"lms/internal/token"
	"lms/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理者専用ルート。
type AdminHandler struct {
	codec    *token.Codec
	userRepo repository.UserRepository
	uc       *usecase.AuthUsecase
}

func NewAdminHandler(codec *token.Codec, userRepo repository.UserRepository, uc *usecase.AuthUsecase) *AdminHandler {
	return &AdminHandler{codec: codec, userRepo: userRepo, uc: uc}
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo) {
	// /admin 配下は全部「JWT必須 + admin限定」
	admin := e.Group(
		"/admin",
		middleware.AuthJWT(h.codec, h.userRepo),
		middleware.AdminRoleGuard(),
	)

	admin.POST("/users", h.CreateUser)
	admin.GET("/audit-logs", h.ListAuditLogs)
}

func (h *AdminHandler) CreateUser(c echo.Context) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
	}

	var req usecase.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("validation error"))
	}

	user, err := h.uc.CreateUser(c.Request().Context(), actor.ID, req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AdminHandler) ListAuditLogs(c echo.Context) error {
	var filter repository.AuditLogFilter

	if v := c.QueryParam("actor_user_id"); v != "" {
		filter.ActorUserID = &v
	}
	if v := c.QueryParam("action"); v != "" {
		a := model.AuditAction(v)
		filter.Action = &a
	}
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorJSON("invalid from"))
		}
		filter.CreatedFrom = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorJSON("invalid to"))
		}
		filter.CreatedTo = &t
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorJSON("invalid limit"))
		}
		filter.Limit = n
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorJSON("invalid offset"))
		}
		filter.Offset = n
	}

	logs, err := h.uc.ListAuditLogs(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, logs)
}
