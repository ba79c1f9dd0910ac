package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"hrms/internal/auth"
	"hrms/internal/model"
)

func newTestServer(jwtService *auth.JWTService, roleGate *model.Role) *echo.Echo {
	e := echo.New()

	handler := func(c echo.Context) error {
		claims := CurrentUser(c)
		if claims == nil {
			return c.String(http.StatusInternalServerError, "claims missing")
		}
		return c.String(http.StatusOK, claims.Email)
	}

	mws := []echo.MiddlewareFunc{Authenticate(jwtService)}
	if roleGate != nil {
		mws = append(mws, RequireRole(*roleGate))
	}
	e.GET("/protected", handler, mws...)
	return e
}

func TestAuthenticate_HeaderToken(t *testing.T) {
	jwtService := auth.NewJWTService("access-secret", "refresh-secret")
	e := newTestServer(jwtService, nil)

	token, err := jwtService.GenerateAccessToken(1, "test@example.com", "admin")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test@example.com", rec.Body.String())
}

func TestAuthenticate_CookieToken(t *testing.T) {
	jwtService := auth.NewJWTService("access-secret", "refresh-secret")
	e := newTestServer(jwtService, nil)

	token, err := jwtService.GenerateAccessToken(1, "cookie@example.com", "employee")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cookie@example.com", rec.Body.String())
}

func TestAuthenticate_MissingToken(t *testing.T) {
	jwtService := auth.NewJWTService("access-secret", "refresh-secret")
	e := newTestServer(jwtService, nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "no token provided")
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	jwtService := auth.NewJWTService("access-secret", "refresh-secret")
	e := newTestServer(jwtService, nil)

	claims := &auth.Claims{
		UserID: 1,
		Email:  "test@example.com",
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+expired)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// Expired and malformed tokens produce distinct messages so the client
	// knows when to refresh.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token expired")
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	jwtService := auth.NewJWTService("access-secret", "refresh-secret")
	e := newTestServer(jwtService, nil)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestAuthenticate_RefreshTokenRejectedAsAccess(t *testing.T) {
	jwtService := auth.NewJWTService("access-secret", "refresh-secret")
	e := newTestServer(jwtService, nil)

	refresh, err := jwtService.GenerateRefreshToken(1, "test@example.com", "admin")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+refresh)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	jwtService := auth.NewJWTService("access-secret", "refresh-secret")
	adminOnly := model.RoleAdmin
	e := newTestServer(jwtService, &adminOnly)

	t.Run("matching role passes", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(1, "admin@example.com", "admin")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other role is forbidden", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(2, "employee@example.com", "employee")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
