// Package http contains the gin handlers translating the HTTP surface into
// service calls and service errors into status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Sujith0604/Blog/internal/middleware"
	"github.com/Sujith0604/Blog/internal/service"
)

// AuthHandler serves registration, login, logout and profile.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /register: 201 with the created user, 409 when the
// email is already registered.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Register: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "invalid input: username, email and password required")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			ErrorResponse(c, http.StatusConflict, err.Error())
			return
		}
		logrus.WithError(err).Error("Handler.Register: registration failed")
		ErrorResponse(c, http.StatusInternalServerError, "registration failed due to server error")
		return
	}

	SuccessResponse(c, http.StatusCreated, user)
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /login: verifies credentials, sets the token cookie
// and answers {id, user}. Unknown email is 404, wrong password 401.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Login: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "invalid input: email and password required")
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			ErrorResponse(c, http.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrInvalidCredentials):
			ErrorResponse(c, http.StatusUnauthorized, err.Error())
		default:
			logrus.WithError(err).Error("Handler.Login: login failed")
			ErrorResponse(c, http.StatusInternalServerError, "login failed due to server error")
		}
		return
	}

	h.setTokenCookie(c, token, h.authService.TokenExpiry())
	SuccessResponse(c, http.StatusOK, gin.H{"id": user.ID, "user": user})
}

// Logout handles POST /logout by clearing the token cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -time.Second)
	SuccessResponse(c, http.StatusOK, "ok")
}

// Profile handles GET /profile; the auth middleware already validated the
// cookie, so this just returns the decoded claims without a store lookup.
func (h *AuthHandler) Profile(c *gin.Context) {
	claimsVal, ok := c.Get(middleware.CtxClaims)
	if !ok {
		logrus.Error("Handler.Profile: claims missing from context")
		ErrorResponse(c, http.StatusInternalServerError, "token processing error")
		return
	}
	claims := claimsVal.(*service.Claims)

	SuccessResponse(c, http.StatusOK, gin.H{
		"id":       claims.UserID,
		"username": claims.Username,
		"email":    claims.Email,
		"iat":      claims.IssuedAt,
		"exp":      claims.ExpiresAt,
	})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string, maxAge time.Duration) {
	c.SetCookie(middleware.TokenCookie, token, int(maxAge.Seconds()), "/", "", false, true)
}
