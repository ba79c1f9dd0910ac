package middleware

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"hrms/internal/auth"
	apperrors "hrms/internal/errors"
	"hrms/internal/model"
)

// claimsContextKey is where the decoded claims live on the echo context.
const claimsContextKey = "user"

// Authenticate verifies the access token from the Authorization header or,
// failing that, the accessToken cookie. On success the decoded claims are
// attached to the request context. Expired and malformed tokens produce
// distinct 401 messages so the client knows when to refresh.
func Authenticate(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:accessToken",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.VerifyAccessToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, echojwt.ErrJWTMissing) {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "no token provided",
					Code:  "UNAUTHORIZED",
				})
			}
			if errors.Is(err, jwt.ErrTokenExpired) {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "token expired",
					Code:  "TOKEN_EXPIRED",
				})
			}
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "invalid token",
				Code:  "UNAUTHORIZED",
			})
		},
	})
}

// RequireRole gates a route to one role. It must run after Authenticate.
func RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := CurrentUser(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "no token provided",
					Code:  "UNAUTHORIZED",
				})
			}
			if !claims.HasRole(string(role)) {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: string(role) + " access required",
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}

// CurrentUser returns the decoded claims for the request, or nil when the
// request did not pass Authenticate.
func CurrentUser(c echo.Context) *auth.Claims {
	claims, ok := c.Get(claimsContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
