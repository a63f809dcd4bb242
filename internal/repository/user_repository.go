package repository

import (
	"context"
	"errors"

	"lms/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// username重複
var ErrDuplicateUsername = errors.New("username already exists")

// スタッフユーザーの保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成。username重複は ErrDuplicateUsername。
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//usernameからユーザーを1件取得する。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}
