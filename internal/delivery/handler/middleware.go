package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"nutritrack/internal/infrastructure"
)

const (
	ctxUserID = "userID"
	ctxEmail  = "email"
)

// RateLimit rejects requests once the shared token bucket is empty.
func RateLimit(limiter *rate.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow() {
				return sendJSONError(c, "Too many requests", http.StatusTooManyRequests)
			}
			return next(c)
		}
	}
}

// RequestLogger logs one line per request with zap.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			logger.Info("request",
				zap.String("id", res.Header().Get(echo.HeaderXRequestID)),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
			)
			return nil
		}
	}
}

// RequireSession accepts the session cookie issued at login or a bearer
// token carrying the same JWT.
func RequireSession(jwtService *infrastructure.JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				token = cookie.Value
			}
			if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}
			if token == "" {
				return sendJSONError(c, "Authentication required", http.StatusUnauthorized)
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return sendJSONError(c, "invalid token", http.StatusUnauthorized)
			}

			c.Set(ctxUserID, claims.Subject)
			c.Set(ctxEmail, claims.Email)
			return next(c)
		}
	}
}
