package dto

import "issuehub/internal/model"

// MemberAddRequest 按邮箱添加已有用户；已是成员时覆盖角色
type MemberAddRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=member maintainer"`
}

// MemberOnboardRequest 一步创建新用户并加入项目
type MemberOnboardRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Role     string `json:"role" binding:"omitempty,oneof=member maintainer"`
}

// MemberUpdateRequest 修改成员角色
type MemberUpdateRequest struct {
	Role string `json:"role" binding:"required,oneof=member maintainer"`
}

// MemberResponse 成员响应
type MemberResponse struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// OnboardResponse 导入成员响应
type OnboardResponse struct {
	OK     bool  `json:"ok"`
	UserID int64 `json:"user_id"`
}

func NewMemberResponse(m *model.ProjectMember) *MemberResponse {
	resp := &MemberResponse{
		UserID: m.UserID,
		Role:   string(m.Role),
	}
	if m.User != nil {
		resp.Name = m.User.Name
		resp.Email = m.User.Email
	}
	return resp
}
