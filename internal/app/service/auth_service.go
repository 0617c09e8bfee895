package service

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tiendamx/tienda-engine/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService backs the session login demo. It is stateless form
// validation plus a single configured demo account; it shares nothing
// with the cart or catalog.
type AuthService interface {
	// ValidateLogin returns per-field messages for malformed input,
	// or an empty map when the form is acceptable. Validation never
	// touches the password hash.
	ValidateLogin(email, password string) map[string]string

	// Login checks the credentials and issues a session token with
	// the configured expiry.
	Login(email, password string) (string, error)
}

type authService struct {
	demoEmail string
	demoHash  string
	secret    string
	expiry    time.Duration
}

func NewAuthService(demoEmail, demoPasswordHash, jwtSecret string, sessionExpiry time.Duration) AuthService {
	return &authService{
		demoEmail: demoEmail,
		demoHash:  demoPasswordHash,
		secret:    jwtSecret,
		expiry:    sessionExpiry,
	}
}

func (s *authService) ValidateLogin(email, password string) map[string]string {
	fields := map[string]string{}
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		fields["email"] = "Ingresa un correo electrónico válido"
	}
	if len(password) < 6 {
		fields["password"] = "La contraseña debe tener al menos 6 caracteres"
	}
	return fields
}

func (s *authService) Login(email, password string) (string, error) {
	if !strings.EqualFold(strings.TrimSpace(email), s.demoEmail) {
		logger.Warn("Login rejected: unknown account", map[string]interface{}{
			"email": email,
		})
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.demoHash), []byte(password)); err != nil {
		logger.Warn("Login rejected: wrong password", map[string]interface{}{
			"email": email,
		})
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   s.demoEmail,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		logger.Error("Failed to sign session token", err, nil)
		return "", err
	}

	logger.Info("Demo session issued", map[string]interface{}{
		"email":   s.demoEmail,
		"expires": now.Add(s.expiry).Format(time.RFC3339),
	})
	return token, nil
}
