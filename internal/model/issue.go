package model

import "time"

const IssueTableName = "issues"
const CommentTableName = "comments"

// Issue 项目内的问题单；project_id 与 reporter_id 创建后不可变
type Issue struct {
	BaseModel
	ProjectID   int64         `gorm:"not null;index" json:"project_id"`
	Title       string        `gorm:"size:200;not null" json:"title"`
	Description *string       `gorm:"size:2000" json:"description"`
	Status      IssueStatus   `gorm:"size:20;not null;default:open;index" json:"status"`
	Priority    IssuePriority `gorm:"size:20;not null;default:medium;index" json:"priority"`
	ReporterID  int64         `gorm:"not null;index" json:"reporter_id"`
	AssigneeID  *int64        `gorm:"index" json:"assignee_id"`
	// 仅在字段确实被修改时由 service 显式推进
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`

	Reporter *User     `gorm:"foreignKey:ReporterID" json:"-"`
	Assignee *User     `gorm:"foreignKey:AssigneeID" json:"-"`
	Comments []Comment `gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Issue) TableName() string {
	return IssueTableName
}

// Comment 评论，只追加不修改
type Comment struct {
	BaseModel
	IssueID  int64  `gorm:"not null;index" json:"issue_id"`
	AuthorID int64  `gorm:"not null;index" json:"author_id"`
	Body     string `gorm:"size:2000;not null" json:"body"`

	Author *User `gorm:"foreignKey:AuthorID" json:"-"`
}

func (Comment) TableName() string {
	return CommentTableName
}
