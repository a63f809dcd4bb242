package main

import (
	"context"
	"time"

	"lms/internal/config"
	"lms/internal/domain/model"
	"lms/internal/handler"
	"lms/internal/infra/db"
	infraRepo "lms/internal/infra/repository"
	"lms/internal/infra/sms"
	"lms/internal/server"
	"lms/internal/token"
	"lms/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Client{},
		&model.Guarantor{},
		&model.GuarantorBusinessPhoto{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	clientRepo := infraRepo.NewClientRepository(gormDB)
	guarantorRepo := infraRepo.NewGuarantorRepository(gormDB)
	photoRepo := infraRepo.NewPhotoRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogRepository(gormDB)

	//Token codec（起動時に一度だけ作る）
	codec, err := token.NewCodec(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		panic(err)
	}

	//SMSゲートウェイ
	smsClient := sms.NewClient(cfg.ATUsername, cfg.ATAPIKey, cfg.ATSenderID)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, rtRepo, auditRepo, codec)
	clientUC := usecase.NewClientUsecase(clientRepo)
	guarantorUC := usecase.NewGuarantorUsecase(guarantorRepo, photoRepo, clientRepo, cfg.UploadDir)

	//Handler生成
	handlers := server.Handlers{
		Health:    handler.NewHealthHandler(),
		Auth:      handler.NewAuthHandler(authUC),
		Admin:     handler.NewAdminHandler(codec, userRepo, authUC),
		Client:    handler.NewClientHandler(clientUC),
		Guarantor: handler.NewGuarantorHandler(guarantorUC),
		SMS:       handler.NewSMSHandler(smsClient),
	}

	e := server.New(codec, userRepo, handlers, cfg.UploadDir)

	//期限切れ・失効済みリフレッシュトークンの掃除ジョブ
	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			n, err := authUC.SweepTokens(ctx)
			cancel()

			if err != nil {
				e.Logger.Errorf("token sweep failed: %v", err)
				continue
			}
			if n > 0 {
				e.Logger.Infof("token sweep removed %d rows", n)
			}
		}
	}()

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
