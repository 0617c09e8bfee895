package controller

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiendamx/tienda-engine/internal/app/service"
	apperrors "github.com/tiendamx/tienda-engine/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthControllerTest(t *testing.T) *gin.Engine {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	authService := service.NewAuthService("demo@tienda.mx", string(hash), "test-secret", 30*time.Minute)
	ctrl := NewAuthController(authService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/auth/login", ctrl.Login)
	return router
}

func TestAuthController_Login_Success(t *testing.T) {
	router := setupAuthControllerTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "demo@tienda.mx",
		"password": "secreto123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestAuthController_Login_FieldValidation(t *testing.T) {
	router := setupAuthControllerTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "no-es-correo",
		"password": "abc",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp apperrors.ValidationError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.ValidationInvalidInput, resp.Error)
	assert.Contains(t, resp.Fields, "email")
	assert.Contains(t, resp.Fields, "password")
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	router := setupAuthControllerTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "demo@tienda.mx",
		"password": "incorrecta",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.AuthInvalidCredentials, resp.Error)
}

func TestAuthController_Login_MissingFields(t *testing.T) {
	router := setupAuthControllerTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
