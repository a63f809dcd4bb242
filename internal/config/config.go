package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret    string // JWT署名シークレット
	JWTAlgorithm string // 署名アルゴリズム（HS256）

	AccessTokenTTL  time.Duration // アクセストークン有効期限（分指定、デフォルト60）
	RefreshTokenTTL time.Duration // リフレッシュトークン有効期限（日指定、デフォルト7）

	SweepInterval time.Duration // 期限切れトークン掃除の間隔

	UploadDir string // 保証人写真の保存先

	// Africa's Talking SMSゲートウェイ
	ATUsername string
	ATAPIKey   string
	ATSenderID string
}

// Loadは環境変数から設定を読む。
// DB接続はinfra/dbが直接環境変数を見るのでここには持たない。
func Load() (Config, error) {
	accessMinutes, err := atoiDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 60)
	if err != nil {
		return Config{}, err
	}

	refreshDays, err := atoiDefault("REFRESH_TOKEN_EXPIRE_DAYS", 7)
	if err != nil {
		return Config{}, err
	}

	sweepMinutes, err := atoiDefault("TOKEN_SWEEP_INTERVAL_MINUTES", 60)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTAlgorithm: getenv("JWT_ALGORITHM", "HS256"),

		AccessTokenTTL:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenTTL: time.Duration(refreshDays) * 24 * time.Hour,

		SweepInterval: time.Duration(sweepMinutes) * time.Minute,

		UploadDir: getenv("UPLOAD_DIR", "uploads/guarantors"),

		ATUsername: os.Getenv("AFRICASTALKING_USERNAME"),
		ATAPIKey:   os.Getenv("AFRICASTALKING_API_KEY"),
		ATSenderID: os.Getenv("AFRICASTALKING_SENDER_ID"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
