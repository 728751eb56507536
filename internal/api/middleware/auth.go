package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"issuehub/pkg/constants"
	pkgErrors "issuehub/pkg/errors"
	"issuehub/pkg/responses"
)

// Authenticator 将 access token 解析为用户ID
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (int64, error)
}

// AuthMiddleware JWT认证中间件
func AuthMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取Authorization header
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			responses.AbortWithError(c, pkgErrors.ErrUnauthorized.WithMessage("Not authenticated"))
			return
		}

		// 检查Bearer前缀
		if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
			responses.AbortWithError(c, pkgErrors.ErrInvalidToken)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix))
		userID, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			responses.AbortWithError(c, err)
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// CurrentUserID 读取认证中间件写入的用户ID
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(constants.ContextKeyUserID)
}
