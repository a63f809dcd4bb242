package repository

import (
	"context"
	"errors"
	"time"

	"lms/internal/domain/model"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// token文字列のunique制約に当たった
var ErrDuplicateToken = errors.New("refresh token already exists")

// リフレッシュトークンの保存・取得・失効・掃除
type RefreshTokenRepository interface {
	//1件保存。token重複は ErrDuplicateToken。
	Create(ctx context.Context, token *model.RefreshToken) error
	//token文字列で1件検索。
	FindByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	//revoked=true にする。呼び出し元は今のところ無いが、契約として持つ。
	Revoke(ctx context.Context, tokenID string) error
	//期限切れ・失効済みの行を削除して件数を返す（掃除ジョブ用）。
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
