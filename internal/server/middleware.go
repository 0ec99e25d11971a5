package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/httpx"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessGate verifies the bearer token and stores the caller's identity in
// the request context. Requests without a valid token get 401.
func AccessGate(tokens auth.TokenMaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			httpx.Message(c, http.StatusUnauthorized, "missing or invalid token")
			return
		}

		claims, err := tokens.VerifyToken(strings.TrimSpace(token))
		if err != nil {
			httpx.Message(c, http.StatusUnauthorized, "missing or invalid token")
			return
		}
		identity, err := claims.Identity()
		if err != nil {
			httpx.Message(c, http.StatusUnauthorized, "missing or invalid token")
			return
		}

		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// RequireAdmin must run after AccessGate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := httpx.Identity(c)
		if !ok {
			return
		}
		if !identity.IsAdmin {
			httpx.Message(c, http.StatusForbidden, "admin access required")
			return
		}
		c.Next()
	}
}

func RequestLogger(log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if identity, ok := auth.FromContext(c.Request.Context()); ok {
			fields = append(fields, zap.Int64("user_id", identity.UserID))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			log.Error("http request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("http request", fields...)
		default:
			log.Info("http request", fields...)
		}
	}
}

// Recovery answers panics with the usual 500 body and logs the value.
func Recovery(log logger.ZapLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		httpx.Message(c, http.StatusInternalServerError, "internal server error")
	})
}
