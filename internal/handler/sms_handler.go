package handler

import (
	"net/http"

	"lms/internal/infra/sms"

	"github.com/labstack/echo/v4"
)

type SMSRequest struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
}

type SMSResponse struct {
	Success bool        `json:"success"`
	Result  *sms.Result `json:"result"`
}

// SMS送信API。ゲートウェイへの薄いラッパー。
type SMSHandler struct {
	client *sms.Client
}

// DI
func NewSMSHandler(client *sms.Client) *SMSHandler {
	return &SMSHandler{client: client}
}

func (h *SMSHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/sms/send-sms", h.send)
}

func (h *SMSHandler) send(c echo.Context) error {
	var req SMSRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorJSON("validation error"))
	}

	if req.PhoneNumber == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, errorJSON("validation error"))
	}

	result, err := h.client.Send(c.Request().Context(), req.PhoneNumber, req.Message)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorJSON("sms gateway unreachable"))
	}

	//ゲートウェイがfailedを返したら success=false
	return c.JSON(http.StatusOK, SMSResponse{
		Success: result.Status != "failed",
		Result:  result,
	})
}
