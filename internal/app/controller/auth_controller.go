package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tiendamx/tienda-engine/internal/app/service"
	apperrors "github.com/tiendamx/tienda-engine/internal/errors"
	"github.com/tiendamx/tienda-engine/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login validates the demo login form and issues a session token
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Correo y contraseña son obligatorios")
		return
	}

	if fields := ctrl.authService.ValidateLogin(req.Email, req.Password); len(fields) > 0 {
		log.Warn("Login form rejected", map[string]interface{}{
			"fields": len(fields),
		})
		apperrors.RespondWithValidationError(c, fields)
		return
	}

	token, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.Unauthorized(c, "Correo o contraseña incorrectos")
			return
		}
		log.Error("Login failed", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}
