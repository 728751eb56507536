package dto

import "issuehub/internal/model"

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Key         string  `json:"key" binding:"required,max=20"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// ProjectResponse 项目响应
type ProjectResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Key         string  `json:"key"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

func NewProjectResponse(p *model.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Key:         p.Key,
		Description: p.Description,
		CreatedAt:   formatTime(p.CreatedAt),
	}
}
