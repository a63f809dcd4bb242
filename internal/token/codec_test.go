package token

import (
	"strings"
	"testing"
	"time"

	"lms/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()

	c, err := NewCodec("test-secret", "HS256", 60*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	return c
}

func TestNewCodec_RequiresSecret(t *testing.T) {
	_, err := NewCodec("", "HS256", time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestNewCodec_RejectsNonHMACAlgorithm(t *testing.T) {
	for _, alg := range []string{"RS256", "ES256", "none", ""} {
		_, err := NewCodec("secret", alg, time.Minute, time.Hour)
		assert.Error(t, err, alg)
	}
}

func TestCodec_IssueAccess_RoundTrip(t *testing.T) {
	c := newTestCodec(t)

	before := time.Now()
	raw, expiresAt, err := c.IssueAccess("user-1", model.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := c.Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, KindAccess, claims.Kind)

	// exp は発行時刻+60分（丸め誤差は数秒許容）
	want := before.Add(60 * time.Minute)
	assert.WithinDuration(t, want, claims.ExpiresAt, 5*time.Second)
	assert.WithinDuration(t, want, expiresAt, 5*time.Second)
}

func TestCodec_IssueRefresh_HasRefreshKind(t *testing.T) {
	c := newTestCodec(t)

	raw, expiresAt, err := c.IssueRefresh("user-1", model.RoleOfficer)
	require.NoError(t, err)

	claims, err := c.Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, KindRefresh, claims.Kind)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, 5*time.Second)
}

func TestCodec_Decode_Expired(t *testing.T) {
	//期限を過去にして発行する
	c, err := NewCodec("test-secret", "HS256", -time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	raw, _, err := c.IssueAccess("user-1", model.RoleOfficer)
	require.NoError(t, err)

	_, err = c.Decode(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Decode_TamperedSignature(t *testing.T) {
	c := newTestCodec(t)

	raw, _, err := c.IssueAccess("user-1", model.RoleOfficer)
	require.NoError(t, err)

	//署名部分の1バイトを変える
	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = c.Decode(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Decode_WrongSecret(t *testing.T) {
	c := newTestCodec(t)

	other, err := NewCodec("other-secret", "HS256", time.Minute, time.Hour)
	require.NoError(t, err)

	raw, _, err := other.IssueAccess("user-1", model.RoleOfficer)
	require.NoError(t, err)

	_, err = c.Decode(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Decode_DifferentHMACVariant(t *testing.T) {
	// HS512で署名したトークンはHS256設定のcodecでは通らない
	hs512, err := NewCodec("test-secret", "HS512", time.Minute, time.Hour)
	require.NoError(t, err)

	raw, _, err := hs512.IssueAccess("user-1", model.RoleOfficer)
	require.NoError(t, err)

	hs256 := newTestCodec(t)
	_, err = hs256.Decode(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Decode_Garbage(t *testing.T) {
	c := newTestCodec(t)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := c.Decode(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}
