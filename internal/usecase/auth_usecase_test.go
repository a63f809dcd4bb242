package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"lms/internal/domain/model"
	"lms/internal/repository"
	"lms/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

// =====================
// Mock: RefreshTokenRepository
// =====================

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, tokenStr string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenStr)
	rt, _ := args.Get(0).(*model.RefreshToken)
	return rt, args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

var _ repository.RefreshTokenRepository = (*MockRefreshTokenRepository)(nil)

// =====================
// Mock: AuditLogRepository
// =====================

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) List(ctx context.Context, filter repository.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

var _ repository.AuditLogRepository = (*MockAuditLogRepository)(nil)

// =====================
// Helper
// =====================

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	return string(b)
}

func testCodec(t *testing.T) *token.Codec {
	t.Helper()
	c, err := token.NewCodec("test-secret", "HS256", 60*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	return c
}

func newAuthUC(t *testing.T, users *MockUserRepository, rtRepo *MockRefreshTokenRepository, audit *MockAuditLogRepository) *AuthUsecase {
	t.Helper()
	return NewAuthUsecase(users, rtRepo, audit, testCodec(t))
}

// =====================
// Login
// =====================

func TestAuthUsecase_Login_Success(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)
	audit := new(MockAuditLogRepository)

	alice := &model.User{
		ID:           "5f0c1a1e-0000-0000-0000-000000000001",
		Username:     "alice",
		PasswordHash: mustHash(t, "correct"),
		Role:         model.RoleAdmin,
	}

	users.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)

	//保存される行の形を確認：本人のID、7日後の期限、未失効
	rtRepo.On("Create", mock.Anything, mock.MatchedBy(func(rt *model.RefreshToken) bool {
		okExpiry := rt.ExpiresAt.After(time.Now().Add(7*24*time.Hour - time.Minute)) &&
			rt.ExpiresAt.Before(time.Now().Add(7*24*time.Hour+time.Minute))
		return rt.UserID == alice.ID && rt.Token != "" && !rt.Revoked && okExpiry
	})).Return(nil).Once()

	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.ActorUserID == alice.ID && l.Action == model.AuditActionLogin
	})).Return(nil).Once()

	uc := newAuthUC(t, users, rtRepo, audit)

	out, err := uc.Login(ctx, AuthLoginRequest{Username: "alice", Password: "correct"})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, "bearer", out.TokenType)
	assert.Equal(t, "admin", out.Role)

	rtRepo.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAuthUsecase_Login_UnknownUser(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)
	audit := new(MockAuditLogRepository)

	users.On("FindByUsername", mock.Anything, "ghost").Return(nil, repository.ErrUserNotFound)

	uc := newAuthUC(t, users, rtRepo, audit)

	out, err := uc.Login(ctx, AuthLoginRequest{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, out)

	//行は1つも作られない
	rtRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)
	audit := new(MockAuditLogRepository)

	users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
		ID:           "u-1",
		Username:     "alice",
		PasswordHash: mustHash(t, "correct"),
		Role:         model.RoleOfficer,
	}, nil)

	uc := newAuthUC(t, users, rtRepo, audit)

	out, err := uc.Login(ctx, AuthLoginRequest{Username: "alice", Password: "wrong"})

	//「ユーザーなし」と同じエラーで返す
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, out)

	rtRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Login_PersistFailure_NoTokensReturned(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)
	audit := new(MockAuditLogRepository)

	users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
		ID:           "u-1",
		Username:     "alice",
		PasswordHash: mustHash(t, "correct"),
		Role:         model.RoleOfficer,
	}, nil)

	//保存に失敗したら発行済みトークンも返さない
	rtRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	uc := newAuthUC(t, users, rtRepo, audit)

	out, err := uc.Login(ctx, AuthLoginRequest{Username: "alice", Password: "correct"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, out)

	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Login_DuplicateToken_Conflict(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)
	audit := new(MockAuditLogRepository)

	users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
		ID:           "u-1",
		Username:     "alice",
		PasswordHash: mustHash(t, "correct"),
		Role:         model.RoleOfficer,
	}, nil)

	rtRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateToken)

	uc := newAuthUC(t, users, rtRepo, audit)

	out, err := uc.Login(ctx, AuthLoginRequest{Username: "alice", Password: "correct"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, out)
}

// =====================
// Refresh
// =====================

func TestAuthUsecase_Refresh_Success_NoRotation(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)
	audit := new(MockAuditLogRepository)

	user := &model.User{ID: "u-1", Username: "alice", Role: model.RoleAdmin}

	stored := &model.RefreshToken{
		ID:        "rt-1",
		UserID:    user.ID,
		Token:     "stored-refresh-token",
		ExpiresAt: time.Now().Add(24 * time.Hour),
		Revoked:   false,
	}

	rtRepo.On("FindByToken", mock.Anything, "stored-refresh-token").Return(stored, nil)
	users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	uc := newAuthUC(t, users, rtRepo, audit)

	//同じトークンで2回呼んでも2回成功する（ローテーションなし）
	for i := 0; i < 2; i++ {
		out, err := uc.Refresh(ctx, "stored-refresh-token")
		require.NoError(t, err)
		require.NotNil(t, out)

		assert.NotEmpty(t, out.AccessToken)
		assert.Equal(t, "bearer", out.TokenType)

		//返ってきたのはaccess種別
		claims, derr := testCodec(t).Decode(out.AccessToken)
		require.NoError(t, derr)
		assert.Equal(t, token.KindAccess, claims.Kind)
		assert.Equal(t, user.ID, claims.UserID)
	}

	//保存済みの行には一切書き込まない
	rtRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	rtRepo.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Refresh_NotFound(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)
	audit := new(MockAuditLogRepository)

	rtRepo.On("FindByToken", mock.Anything, "missing").Return(nil, repository.ErrRefreshTokenNotFound)

	uc := newAuthUC(t, users, rtRepo, audit)

	out, err := uc.Refresh(ctx, "missing")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, out)
}

func TestAuthUsecase_Refresh_Revoked(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)
	audit := new(MockAuditLogRepository)

	rtRepo.On("FindByToken", mock.Anything, "revoked-token").Return(&model.RefreshToken{
		ID:        "rt-1",
		UserID:    "u-1",
		Token:     "revoked-token",
		ExpiresAt: time.Now().Add(24 * time.Hour),
		Revoked:   true,
	}, nil)

	uc := newAuthUC(t, users, rtRepo, audit)

	out, err := uc.Refresh(ctx, "revoked-token")

	//期限内でもrevokedなら401
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, out)

	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Refresh_Expired(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)
	audit := new(MockAuditLogRepository)

	rtRepo.On("FindByToken", mock.Anything, "old-token").Return(&model.RefreshToken{
		ID:        "rt-1",
		UserID:    "u-1",
		Token:     "old-token",
		ExpiresAt: time.Now().Add(-time.Minute),
		Revoked:   false,
	}, nil)

	uc := newAuthUC(t, users, rtRepo, audit)

	out, err := uc.Refresh(ctx, "old-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, out)
}

func TestAuthUsecase_Refresh_OrphanedToken(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)
	audit := new(MockAuditLogRepository)

	rtRepo.On("FindByToken", mock.Anything, "orphan").Return(&model.RefreshToken{
		ID:        "rt-1",
		UserID:    "deleted-user",
		Token:     "orphan",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}, nil)

	//持ち主が消えている
	users.On("FindByID", mock.Anything, "deleted-user").Return(nil, repository.ErrUserNotFound)

	uc := newAuthUC(t, users, rtRepo, audit)

	out, err := uc.Refresh(ctx, "orphan")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, out)
}

// =====================
// CreateUser
// =====================

func TestAuthUsecase_CreateUser_Success(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	rtRepo := new(MockRefreshTokenRepository)
	audit := new(MockAuditLogRepository)

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		//ハッシュ保存・平文は残さない
		return u.Username == "bob" && u.Role == model.RoleOfficer && u.PasswordHash != "" && u.PasswordHash != "secretpass"
	})).Return(nil).Once()

	audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionCreateUser && l.ActorUserID == "admin-1"
	})).Return(nil).Once()

	uc := newAuthUC(t, users, rtRepo, audit)

	out, err := uc.CreateUser(ctx, "admin-1", CreateUserRequest{Username: "bob", Password: "secretpass"})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "bob", out.Username)
	assert.Empty(t, out.PasswordHash)

	users.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAuthUsecase_CreateUser_Validation(t *testing.T) {
	ctx := context.Background()

	uc := newAuthUC(t, new(MockUserRepository), new(MockRefreshTokenRepository), new(MockAuditLogRepository))

	cases := []CreateUserRequest{
		{Username: "", Password: "secretpass"},
		{Username: "bob", Password: "short"},
		{Username: "bob", Password: "secretpass", Role: "superuser"},
	}

	for _, req := range cases {
		out, err := uc.CreateUser(ctx, "admin-1", req)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Nil(t, out)
	}
}

func TestAuthUsecase_CreateUser_DuplicateUsername(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateUsername)

	uc := newAuthUC(t, users, new(MockRefreshTokenRepository), new(MockAuditLogRepository))

	out, err := uc.CreateUser(ctx, "admin-1", CreateUserRequest{Username: "bob", Password: "secretpass"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, out)
}

// =====================
// Sweep
// =====================

func TestAuthUsecase_SweepTokens(t *testing.T) {
	ctx := context.Background()

	rtRepo := new(MockRefreshTokenRepository)
	rtRepo.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()

	uc := newAuthUC(t, new(MockUserRepository), rtRepo, new(MockAuditLogRepository))

	n, err := uc.SweepTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	rtRepo.AssertExpectations(t)
}
