package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"issuehub/pkg/constants"
)

// RequestIDMiddleware 为每个请求分配 ID，沿用客户端传入的 X-Request-ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(constants.HeaderRequestID)
		if rid == "" || len(rid) > 64 {
			rid = uuid.New().String()
		}
		c.Set(constants.ContextKeyRequestID, rid)
		c.Header(constants.HeaderRequestID, rid)
		c.Next()
	}
}
