package token

import (
	"errors"
	"fmt"
	"time"

	"lms/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
)

// トークン種別。access / refresh の2種類だけ。
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// 署名・形式・期限のどれかがダメ。詳細は外に出さない。
var ErrInvalidToken = errors.New("invalid token")

// デコード結果。失敗時は部分的なclaimsを返さない。
type Claims struct {
	UserID    string
	Role      model.Role
	Kind      Kind
	ExpiresAt time.Time
}

// JWTの中身。subにユーザーID。
type jwtClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
	Type string `json:"type"`
}

// Codecはアクセス/リフレッシュ両方のトークンを同じ鍵・同じアルゴリズムで発行する。
// 種別はtypeクレームだけで区別するので、使う側がKindを必ず確認すること。
type Codec struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// DI。起動時に一度だけ作り、以後は不変。
func NewCodec(secret string, algorithm string, accessTTL, refreshTTL time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret is required")
	}

	//HMAC系のみ許可
	switch algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return nil, fmt.Errorf("unsupported signing algorithm: %s", algorithm)
	}

	method := jwt.GetSigningMethod(algorithm)

	if accessTTL == 0 {
		accessTTL = 60 * time.Minute
	}
	if refreshTTL == 0 {
		refreshTTL = 7 * 24 * time.Hour
	}

	return &Codec{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

func (c *Codec) AccessTTL() time.Duration  { return c.accessTTL }
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// アクセストークン発行（デフォルト60分）。
func (c *Codec) IssueAccess(userID string, role model.Role) (string, time.Time, error) {
	return c.issue(userID, role, KindAccess, c.accessTTL)
}

// リフレッシュトークン発行（デフォルト7日）。
func (c *Codec) IssueRefresh(userID string, role model.Role) (string, time.Time, error) {
	return c.issue(userID, role, KindRefresh, c.refreshTTL)
}

func (c *Codec) issue(userID string, role model.Role, kind Kind, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: string(role),
		Type: string(kind),
	}

	tok := jwt.NewWithClaims(c.method, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Decodeは署名と期限を検証する。
// 失敗理由は区別せず ErrInvalidToken で返す。
// accessとrefreshの区別はここではしないので、呼び出し側がKindを見ること。
func (c *Codec) Decode(raw string) (Claims, error) {
	var jc jwtClaims

	tok, err := jwt.ParseWithClaims(raw, &jc, func(t *jwt.Token) (interface{}, error) {
		//設定したアルゴリズム以外は拒否
		if t.Method.Alg() != c.method.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil || tok == nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}

	if jc.Subject == "" {
		return Claims{}, ErrInvalidToken
	}

	//typeは閉じた集合。知らない値は不正扱い。
	kind := Kind(jc.Type)
	switch kind {
	case KindAccess, KindRefresh:
	default:
		return Claims{}, ErrInvalidToken
	}

	if jc.ExpiresAt == nil {
		return Claims{}, ErrInvalidToken
	}

	return Claims{
		UserID:    jc.Subject,
		Role:      model.Role(jc.Role),
		Kind:      kind,
		ExpiresAt: jc.ExpiresAt.Time,
	}, nil
}
