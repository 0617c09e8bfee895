package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func setupAuthServiceTest(t *testing.T) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService("demo@tienda.mx", string(hash), testSecret, 30*time.Minute)
}

func TestAuthService_ValidateLogin(t *testing.T) {
	svc := setupAuthServiceTest(t)

	assert.Empty(t, svc.ValidateLogin("demo@tienda.mx", "secreto123"))

	fields := svc.ValidateLogin("no-es-correo", "secreto123")
	assert.Contains(t, fields, "email")

	fields = svc.ValidateLogin("demo@tienda.mx", "abc")
	assert.Contains(t, fields, "password")

	fields = svc.ValidateLogin("", "")
	assert.Len(t, fields, 2)
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := setupAuthServiceTest(t)

	token, err := svc.Login("demo@tienda.mx", "secreto123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "demo@tienda.mx", claims.Subject)

	// Session timeout is the configured expiry.
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, (30 * time.Minute).Seconds(), remaining.Seconds(), 5)
}

func TestAuthService_Login_EmailCaseInsensitive(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, err := svc.Login("DEMO@tienda.mx", "secreto123")
	assert.NoError(t, err)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, err := svc.Login("demo@tienda.mx", "incorrecta")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownAccount(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, err := svc.Login("otro@tienda.mx", "secreto123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
