package middleware

import (
	"net/http"

	"lms/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//contextに入っているユーザーがadminかどうかを確認します。

func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//officerは拒否、adminだけ許可
			if user.Role != model.RoleAdmin {
				return c.JSON(http.StatusForbidden, errorJSON("admin access required"))
			}

			return next(c)
		}
	}
}
