package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qkart/storefront/internal/api"
	"github.com/qkart/storefront/internal/app/service"
	apperrors "github.com/qkart/storefront/internal/errors"
	"github.com/qkart/storefront/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
	cookieName  string
}

func NewAuthController(authService service.AuthService, cookieName string) *AuthController {
	return &AuthController{
		authService: authService,
		cookieName:  cookieName,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// inputMessage maps credential validation errors to the messages the
// storefront UI shows.
func inputMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrUsernameRequired):
		return "Username is a required field", true
	case errors.Is(err, service.ErrUsernameTooShort):
		return "Username must be at least 6 characters", true
	case errors.Is(err, service.ErrPasswordRequired):
		return "Password is a required field", true
	case errors.Is(err, service.ErrPasswordTooShort):
		return "Password must be at least 6 characters", true
	case errors.Is(err, service.ErrPasswordMismatch):
		return "Passwords do not match", true
	}
	return "", false
}

// Login authenticates against the backend and starts a session.
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	sid, sess, err := ctrl.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if msg, ok := inputMessage(err); ok {
			apperrors.BadRequest(c, apperrors.ValidationRequired, msg)
			return
		}
		var backendErr *api.Error
		if errors.As(err, &backendErr) && backendErr.Validation() {
			log.Warn("Login rejected by backend", map[string]interface{}{
				"username": req.Username,
				"message":  backendErr.Message,
			})
			apperrors.BadRequest(c, apperrors.AuthInvalidCredentials, backendErr.Message)
			return
		}
		respondBackendError(c, err)
		return
	}

	c.SetCookie(ctrl.cookieName, sid, 0, "/", "", false, true)

	log.Info("Login succeeded", map[string]interface{}{
		"username": sess.Username,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"username": sess.Username,
		"balance":  sess.Balance,
	})
}

// Register creates a new account.
// POST /api/v1/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid register request payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	err := ctrl.authService.Register(c.Request.Context(), req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		if msg, ok := inputMessage(err); ok {
			apperrors.BadRequest(c, apperrors.ValidationRequired, msg)
			return
		}
		var backendErr *api.Error
		if errors.As(err, &backendErr) && backendErr.StatusCode == http.StatusConflict {
			apperrors.Conflict(c, apperrors.AuthUsernameExists, backendErr.Message)
			return
		}
		respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registered Successfully",
	})
}

// Logout clears the session.
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sid := middleware.GetSessionID(c)
	if sid != "" {
		if err := ctrl.authService.Logout(c.Request.Context(), sid); err != nil {
			log.Error("Logout failed", err, nil)
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalSessionError, "Could not log out. Please try again")
			return
		}
	}

	c.SetCookie(ctrl.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// respondBackendError maps client errors from the backend API to
// storefront responses: structured 4xx messages pass through, server
// faults and transport failures get generic messages.
func respondBackendError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	var backendErr *api.Error
	if errors.As(err, &backendErr) && backendErr.Validation() {
		apperrors.BadRequest(c, apperrors.ValidationFailed, backendErr.Message)
		return
	}
	if errors.Is(err, api.ErrUnreachable) {
		log.Error("Backend unreachable", err, nil)
		apperrors.BadGateway(c, apperrors.BackendUnreachable, api.UserMessage(err))
		return
	}

	log.Error("Backend fault", err, nil)
	apperrors.BadGateway(c, apperrors.BackendFault, api.UserMessage(err))
}
