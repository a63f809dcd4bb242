package middleware

import (
	"errors"
	"net/http"
	"strings"

	"lms/internal/domain/model"
	"lms/internal/repository"
	"lms/internal/token"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserKey = "current_user" // *model.User
)

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// bearerAuth用のトークン検証ミドルウェア。
// デコードできてもtypeがaccessでなければ401（refreshトークンの流用を拒否）。
// ユーザーがDBから消えていたら404。
func AuthJWT(codec *token.Codec, userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//署名と期限を検証
			claims, err := codec.Decode(rawToken)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//accessトークンだけ通す
			if claims.Kind != token.KindAccess {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//ユーザーを解決する
			user, err := userRepo.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return c.JSON(http.StatusNotFound, errorJSON("user not found"))
				}
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			//contextへ保存
			c.Set(CtxUserKey, user)

			return next(c)
		}
	}
}

// contextからログイン中のユーザーを取り出す。
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(CtxUserKey).(*model.User)
	return user, ok && user != nil
}
