// Package middleware holds the gin middlewares of the HTTP layer.
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/Sujith0604/Blog/internal/service"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxClaims = "claims"
)

// TokenCookie is the cookie carrying the session token.
const TokenCookie = "token"

// TokenVerifier validates a session token string.
type TokenVerifier interface {
	VerifyToken(token string) (*service.Claims, error)
}

// Auth validates the session token cookie and stores the decoded claims in
// the request context. Requests without a valid token get 401; the token
// never crashes the request path.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	if verifier == nil {
		panic("token verifier cannot be nil for Auth middleware")
	}

	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(TokenCookie)
		if err != nil || tokenStr == "" {
			logrus.Warn("Auth middleware: missing token cookie")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		claims, err := verifier.VerifyToken(tokenStr)
		if err != nil {
			logCtx := logrus.WithError(err)
			if errors.Is(err, jwt.ErrTokenExpired) {
				logCtx.Warn("Auth middleware: token expired")
			} else {
				logCtx.Warn("Auth middleware: invalid token")
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxClaims, claims)
		logrus.WithField("user_id", claims.UserID).Debug("Auth middleware: user authenticated")

		c.Next()
	}
}
