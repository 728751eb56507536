package handler

import (
	"github.com/gin-gonic/gin"

	"issuehub/internal/api/middleware"
	"issuehub/internal/dto"
	"issuehub/internal/service"
	"issuehub/pkg/responses"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup 注册
// @Summary 用户注册
// @Description 注册成功后直接返回访问Token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "注册请求"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} responses.ErrorBody "email_taken"
// @Failure 422 {object} responses.ErrorBody "validation_error"
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// Login 登录
// @Summary 用户登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录请求"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} responses.ErrorBody "invalid_credentials"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}

// Logout 登出
// @Summary 用户登出
// @Description Token 无状态，客户端丢弃即可
// @Tags 认证
// @Produce json
// @Success 200 {object} responses.OK
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	responses.SuccessOK(c)
}

// Me 获取当前用户信息
// @Summary 获取当前用户信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} responses.ErrorBody
// @Router /api/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.authService.Me(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	responses.Success(c, resp)
}
