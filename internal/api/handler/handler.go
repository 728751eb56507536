package handler

import (
	"github.com/gin-gonic/gin"

	"issuehub/pkg/responses"
	"issuehub/pkg/utils"
)

// bindJSON 绑定请求体，失败时写 validation_error
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		responses.ValidationError(c, utils.ValidationDetails(err))
		return false
	}
	return true
}

// bindURI 绑定路径参数
func bindURI(c *gin.Context, obj any) bool {
	if err := c.ShouldBindUri(obj); err != nil {
		responses.ValidationError(c, utils.ValidationDetails(err))
		return false
	}
	return true
}

// bindQuery 绑定查询参数
func bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		responses.ValidationError(c, utils.ValidationDetails(err))
		return false
	}
	return true
}
