package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"issuehub/internal/pkg/logger"
	pkgErrors "issuehub/pkg/errors"
	"issuehub/pkg/responses"
)

// RecoveryMiddleware panic 统一转换为 internal_error
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"))
		responses.AbortWithError(c, pkgErrors.ErrInternal)
	})
}
