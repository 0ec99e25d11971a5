// Package httpx holds the gin helpers shared by every handler: error
// rendering, body binding and path/identity extraction.
package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusFor maps an error kind to its HTTP status. Conflicts are reported as
// 400 because existing clients treat duplicates and blocked deletes that way.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.BadRequest, apperror.Conflict:
		return http.StatusBadRequest
	case apperror.Unauthorized:
		return http.StatusUnauthorized
	case apperror.Forbidden:
		return http.StatusForbidden
	case apperror.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Message(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

// Error renders err. Internal errors are logged and hidden behind a generic
// message.
func Error(c *gin.Context, log logger.ZapLogger, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Kind != apperror.Internal {
		Message(c, StatusFor(appErr.Kind), appErr.Message)
		return
	}

	log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("route", c.FullPath()),
		zap.Error(err),
	)
	Message(c, http.StatusInternalServerError, "internal server error")
}

// BindJSON decodes and validates the body into req, answering 400 itself on
// failure.
func BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		Message(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return false
	}
	return true
}

// ParamID parses a positive int64 path parameter, answering 400 itself on
// failure.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		Message(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// Identity returns the caller verified by the access gate. Routes behind the
// gate always have one; a missing identity is answered with 401.
func Identity(c *gin.Context) (auth.Identity, bool) {
	id, ok := auth.FromContext(c.Request.Context())
	if !ok {
		Message(c, http.StatusUnauthorized, "missing or invalid token")
	}
	return id, ok
}
