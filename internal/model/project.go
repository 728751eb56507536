package model

import "issuehub/internal/pkg/auth"

const ProjectTableName = "projects"
const ProjectMemberTableName = "project_members"

// Project 项目模型；key 全局唯一，创建后不可修改
type Project struct {
	BaseModel
	Name        string  `gorm:"size:200;not null" json:"name"`
	Key         string  `gorm:"size:20;not null;uniqueIndex" json:"key"`
	Description *string `gorm:"size:500" json:"description"`

	// Relations, 删除项目级联删除成员与 issue
	Members []ProjectMember `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
	Issues  []Issue         `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Project) TableName() string {
	return ProjectTableName
}

// ProjectMember 项目成员，(project_id, user_id) 为联合主键，每个用户在每个项目至多一个角色
type ProjectMember struct {
	ProjectID int64     `gorm:"primaryKey;autoIncrement:false" json:"project_id"`
	UserID    int64     `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	Role      auth.Role `gorm:"size:20;not null;default:member;index" json:"role"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ProjectMember) TableName() string {
	return ProjectMemberTableName
}
