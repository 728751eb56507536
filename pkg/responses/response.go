package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"issuehub/internal/pkg/logger"
	pkgErrors "issuehub/pkg/errors"
)

// ErrorBody 错误响应体
type ErrorBody struct {
	Error *pkgErrors.AppError `json:"error"`
}

// OK 通用成功响应
type OK struct {
	OK bool `json:"ok"`
}

// Success 成功响应，直接返回资源本身
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SuccessOK 无资源返回时的成功响应
func SuccessOK(c *gin.Context) {
	c.JSON(http.StatusOK, OK{OK: true})
}

// Error 错误响应
// AppError 按其 Status 返回；未知错误统一为 internal_error，不向调用方暴露内部信息
func Error(c *gin.Context, err error) {
	if appErr, ok := pkgErrors.As(err); ok {
		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("请求处理失败", zap.String("path", c.Request.URL.Path), zap.Error(appErr))
			c.JSON(appErr.Status, ErrorBody{Error: pkgErrors.ErrInternal})
			return
		}
		c.JSON(appErr.Status, ErrorBody{Error: appErr})
		return
	}

	logger.Error("未知错误", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorBody{Error: pkgErrors.ErrInternal})
}

// AbortWithError 中间件使用：写错误响应并终止后续处理
func AbortWithError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// ValidationError 参数校验失败响应
func ValidationError(c *gin.Context, details interface{}) {
	Error(c, pkgErrors.ErrValidation.WithDetails(details))
}
