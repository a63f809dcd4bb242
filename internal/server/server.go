package server

import (
	"lms/internal/handler"
	"lms/internal/middleware"
	"lms/internal/repository"
	"lms/internal/token"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// ルーティングに必要なハンドラ一式。
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Admin     *handler.AdminHandler
	Client    *handler.ClientHandler
	Guarantor *handler.GuarantorHandler
	SMS       *handler.SMSHandler
}

// Newはechoを組み立ててルートを登録する。
// 認証不要: / と /auth/*。/admin配下はAdminHandler側でガードを付ける。
// それ以外の業務ルートは全部JWT必須。
func New(codec *token.Codec, userRepo repository.UserRepository, h Handlers, uploadDir string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	h.Health.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)
	h.Admin.RegisterRoutes(e)

	//認証必須グループ
	api := e.Group("", middleware.AuthJWT(codec, userRepo))
	h.Client.RegisterRoutes(api)
	h.Guarantor.RegisterRoutes(api)
	h.SMS.RegisterRoutes(api)

	//アップロード済み写真の配信
	e.Static("/"+uploadDir, uploadDir)

	return e
}
