package handler

import (
	"errors"
	"net/http"

	"lms/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// usecaseのエラーをHTTPステータスへ変換する。
// メッセージは一般的な文言だけ返し、内部の詳細は出さない。
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return c.JSON(http.StatusBadRequest, errorJSON("validation error"))
	case errors.Is(err, usecase.ErrUnprocessable):
		return c.JSON(http.StatusUnprocessableEntity, errorJSON("unprocessable"))
	case errors.Is(err, usecase.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
	case errors.Is(err, usecase.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
	case errors.Is(err, usecase.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorJSON("not found"))
	case errors.Is(err, usecase.ErrConflict):
		return c.JSON(http.StatusConflict, errorJSON("conflict"))
	default:
		//500
		return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
	}
}
