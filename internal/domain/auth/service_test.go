package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/outfit-studio/pkg/errors"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(now time.Time) *service {
	svc := NewService(Config{Secret: testSecret, Issuer: "outfit-studio", TokenTTL: time.Hour}).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func TestIssueAndValidate(t *testing.T) {
	now := time.Now()
	svc := newTestService(now)
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, "user-1")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt, time.Second)

	_, err = svc.IssueToken(ctx, "  ")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestValidateRejects(t *testing.T) {
	now := time.Now()
	svc := newTestService(now)
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, "user-1")
	require.NoError(t, err)

	later := newTestService(now.Add(2 * time.Hour))
	_, err = later.ValidateToken(ctx, token)
	require.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))

	other := NewService(Config{Secret: "ffffffffffffffffffffffffffffffff", Issuer: "outfit-studio"})
	_, err = other.ValidateToken(ctx, token)
	require.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.ValidateToken(ctx, foreign)
	require.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))

	_, err = svc.ValidateToken(ctx, "not-a-token")
	require.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))
}
