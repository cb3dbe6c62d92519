package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Sujith0604/Blog/internal/middleware"
	"github.com/Sujith0604/Blog/internal/service"
)

type stubVerifier struct {
	claims *service.Claims
	err    error
}

func (s *stubVerifier) VerifyToken(string) (*service.Claims, error) {
	return s.claims, s.err
}

func newAuthTestRouter(verifier middleware.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", middleware.Auth(verifier), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet(middleware.CtxUserID)})
	})
	return router
}

func TestAuth_MissingCookie(t *testing.T) {
	router := newAuthTestRouter(&stubVerifier{claims: &service.Claims{UserID: 1}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	router := newAuthTestRouter(&stubVerifier{err: errors.New("bad signature")})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: "tampered"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ValidTokenSetsUserID(t *testing.T) {
	router := newAuthTestRouter(&stubVerifier{claims: &service.Claims{UserID: 7}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: "good"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}
