package dto

import (
	"strings"
	"unicode/utf8"

	"issuehub/internal/model"
	"issuehub/pkg/constants"
	"issuehub/pkg/utils"
)

// CreateIssueRequest 创建issue请求
type CreateIssueRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	AssigneeID  *int64  `json:"assignee_id"`
}

// GetPriority 未指定时为 medium
func (r *CreateIssueRequest) GetPriority() model.IssuePriority {
	if r.Priority == "" {
		return model.IssuePriorityMedium
	}
	return model.IssuePriority(r.Priority)
}

// UpdateIssueRequest 部分更新：未出现的字段不修改，可空字段显式 null 表示清空
type UpdateIssueRequest struct {
	Title       Optional[string]              `json:"title"`
	Description Optional[string]              `json:"description"`
	Status      Optional[model.IssueStatus]   `json:"status"`
	Priority    Optional[model.IssuePriority] `json:"priority"`
	AssigneeID  Optional[int64]               `json:"assignee_id"`
}

// HasChanges 是否提供了任意字段
func (r *UpdateIssueRequest) HasChanges() bool {
	return r.Title.Set || r.Description.Set || r.Status.Set || r.Priority.Set || r.AssigneeID.Set
}

// ChangesTriage 是否涉及 status / assignee_id
func (r *UpdateIssueRequest) ChangesTriage() bool {
	return r.Status.Set || r.AssigneeID.Set
}

// Validate 校验已提供字段
func (r *UpdateIssueRequest) Validate() []utils.FieldError {
	var errs []utils.FieldError
	if r.Title.Set {
		switch {
		case r.Title.Null:
			errs = append(errs, utils.FieldError{Field: "title", Message: "field 'title' cannot be null"})
		case strings.TrimSpace(r.Title.Value) == "":
			errs = append(errs, utils.FieldError{Field: "title", Message: "field 'title' is required"})
		case utf8.RuneCountInString(r.Title.Value) > 200:
			errs = append(errs, utils.FieldError{Field: "title", Message: "field 'title' must be at most 200"})
		}
	}
	if r.Description.Set && !r.Description.Null && utf8.RuneCountInString(r.Description.Value) > 2000 {
		errs = append(errs, utils.FieldError{Field: "description", Message: "field 'description' must be at most 2000"})
	}
	if r.Status.Set && (r.Status.Null || !r.Status.Value.Valid()) {
		errs = append(errs, utils.FieldError{Field: "status", Message: "field 'status' must be one of: open in_progress resolved closed"})
	}
	if r.Priority.Set && (r.Priority.Null || !r.Priority.Value.Valid()) {
		errs = append(errs, utils.FieldError{Field: "priority", Message: "field 'priority' must be one of: low medium high critical"})
	}
	if r.AssigneeID.Set && !r.AssigneeID.Null && r.AssigneeID.Value <= 0 {
		errs = append(errs, utils.FieldError{Field: "assignee_id", Message: "field 'assignee_id' must be a positive id"})
	}
	return errs
}

// IssueListQuery issue 列表过滤、排序、分页参数
type IssueListQuery struct {
	Q        string `form:"q"`
	Status   string `form:"status" binding:"omitempty,oneof=open in_progress resolved closed"`
	Priority string `form:"priority" binding:"omitempty,oneof=low medium high critical"`
	Assignee *int64 `form:"assignee"`
	Sort     string `form:"sort" binding:"omitempty,oneof=created_at priority status"`
	Limit    *int   `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset   int    `form:"offset" binding:"min=0"`
}

// GetLimit 默认20，上限100
func (q *IssueListQuery) GetLimit() int {
	if q.Limit == nil {
		return constants.DefaultIssueLimit
	}
	if *q.Limit > constants.MaxIssueLimit {
		return constants.MaxIssueLimit
	}
	if *q.Limit < 1 {
		return 1
	}
	return *q.Limit
}

// IssueResponse issue响应
type IssueResponse struct {
	ID          int64   `json:"id"`
	ProjectID   int64   `json:"project_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	ReporterID  int64   `json:"reporter_id"`
	AssigneeID  *int64  `json:"assignee_id"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewIssueResponse(i *model.Issue) *IssueResponse {
	return &IssueResponse{
		ID:          i.ID,
		ProjectID:   i.ProjectID,
		Title:       i.Title,
		Description: i.Description,
		Status:      string(i.Status),
		Priority:    string(i.Priority),
		ReporterID:  i.ReporterID,
		AssigneeID:  i.AssigneeID,
		CreatedAt:   formatTime(i.CreatedAt),
		UpdatedAt:   formatTime(i.UpdatedAt),
	}
}

// CreateCommentRequest 发表评论
type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,max=2000"`
}

// CommentResponse 评论响应
type CommentResponse struct {
	ID        int64  `json:"id"`
	IssueID   int64  `json:"issue_id"`
	AuthorID  int64  `json:"author_id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

func NewCommentResponse(c *model.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		IssueID:   c.IssueID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: formatTime(c.CreatedAt),
	}
}
