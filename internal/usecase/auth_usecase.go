package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lms/internal/domain/model"
	"lms/internal/repository"
	"lms/internal/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthLoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	Role         string `json:"role"`
}

type AuthRefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthRefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type AuthUsecase struct {
	users     repository.UserRepository
	rtRepo    repository.RefreshTokenRepository
	auditRepo repository.AuditLogRepository
	codec     *token.Codec
}

func NewAuthUsecase(
	users repository.UserRepository,
	rtRepo repository.RefreshTokenRepository,
	auditRepo repository.AuditLogRepository,
	codec *token.Codec,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		rtRepo:    rtRepo,
		auditRepo: auditRepo,
		codec:     codec,
	}
}

// ログイン。アクセストークンとリフレッシュトークンを両方発行し、
// リフレッシュトークンはDBに保存する。
// 「ユーザーが居ない」と「パスワード違い」はどちらもErrUnauthorizedで返し、
// usernameの存在を外に漏らさない。
func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest) (*AuthLoginResponse, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, ErrUnauthorized
	}

	//ユーザー取得
	user, err := u.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrUnauthorized
	}

	//access / refresh 発行
	accessToken, _, err := u.codec.IssueAccess(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExp, err := u.codec.IssueRefresh(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	//refresh tokenをDBに保存。
	//ここで失敗したら発行済みトークンは返さない（部分成功なし）。
	rt := &model.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: refreshExp,
		CreatedAt: time.Now().In(model.EAT),
		Revoked:   false,
	}

	if err := u.rtRepo.Create(ctx, rt); err != nil {
		if errors.Is(err, repository.ErrDuplicateToken) {
			return nil, ErrConflict
		}
		return nil, err
	}

	//監査ログ（best effort）
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID: user.ID,
		Action:      model.AuditActionLogin,
		Details:     fmt.Sprintf("User '%s' logged in", user.Username),
		CreatedAt:   time.Now().In(model.EAT),
	})

	return &AuthLoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		Role:         string(user.Role),
	}, nil
}

// リフレッシュ。保存済みトークンを検証して新しいアクセストークンだけを発行する。
// 元のリフレッシュトークンは一切触らない（ローテーションしない）。
// 見つからない・失効済み・期限切れは全部同じErrUnauthorized。
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*AuthRefreshResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrUnauthorized
	}

	rt, err := u.rtRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if rt.Revoked || !rt.ExpiresAt.After(time.Now()) {
		return nil, ErrUnauthorized
	}

	//持ち主を解決。ユーザーが消えていたら孤児トークン。
	user, err := u.users.FindByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	accessToken, _, err := u.codec.IssueAccess(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &AuthRefreshResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

// 管理者によるスタッフユーザー作成。
func (u *AuthUsecase) CreateUser(ctx context.Context, actorUserID string, req CreateUserRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, ErrValidation
	}
	if len(req.Password) < 8 {
		return nil, ErrValidation
	}

	role := model.Role(req.Role)
	switch role {
	case "":
		role = model.RoleOfficer
	case model.RoleAdmin, model.RoleOfficer:
	default:
		return nil, ErrValidation
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hashed),
		Role:         role,
		CreatedAt:    time.Now().In(model.EAT),
	}

	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrConflict
		}
		return nil, err
	}

	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID: actorUserID,
		Action:      model.AuditActionCreateUser,
		Details:     fmt.Sprintf("Created user '%s' with role '%s'", user.Username, user.Role),
		CreatedAt:   time.Now().In(model.EAT),
	})

	//返すときはハッシュを落とす
	safe := *user
	safe.PasswordHash = ""
	return &safe, nil
}

// 監査ログ一覧（管理者用）。
func (u *AuthUsecase) ListAuditLogs(ctx context.Context, filter repository.AuditLogFilter) ([]model.AuditLog, error) {
	return u.auditRepo.List(ctx, filter)
}

// 期限切れ・失効済みリフレッシュトークンの掃除。
// 自動削除ポリシーは持たず、この明示的なジョブだけが行を消す。
func (u *AuthUsecase) SweepTokens(ctx context.Context) (int64, error) {
	return u.rtRepo.DeleteExpired(ctx, time.Now())
}
