package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"issuehub/internal/model"
	"issuehub/internal/pkg/auth"
	"issuehub/internal/pkg/database"
	pkgErrors "issuehub/pkg/errors"
)

type ProjectRepository interface {
	WithTx(tx *gorm.DB) ProjectRepository
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id int64) (*model.Project, error)
	// LockByID 在事务内锁定项目行，串行化同一项目的成员变更
	LockByID(ctx context.Context, id int64) (*model.Project, error)
	// ListByMember 返回用户所在的项目，role 非空时只返回该角色的项目
	ListByMember(ctx context.Context, userID int64, role *auth.Role) ([]*model.Project, error)
	// Delete 级联删除评论、issue、成员后删除项目，调用方负责开启事务
	Delete(ctx context.Context, id int64) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) WithTx(tx *gorm.DB) ProjectRepository {
	return &projectRepository{db: tx}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Omit("Members", "Issues").Create(project).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return pkgErrors.ErrProjectKeyTaken
		}
		return pkgErrors.Internal("创建项目失败", err)
	}
	return nil
}

func (r *projectRepository) FindByID(ctx context.Context, id int64) (*model.Project, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *projectRepository) LockByID(ctx context.Context, id int64) (*model.Project, error) {
	return r.find(database.LockForUpdate(r.db.WithContext(ctx)), id)
}

func (r *projectRepository) find(db *gorm.DB, id int64) (*model.Project, error) {
	var project model.Project
	if err := db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Internal("查询项目失败", err)
	}
	return &project, nil
}

func (r *projectRepository) ListByMember(ctx context.Context, userID int64, role *auth.Role) ([]*model.Project, error) {
	var projects []*model.Project

	query := r.db.WithContext(ctx).Model(&model.Project{}).
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID)
	if role != nil {
		query = query.Where("project_members.role = ?", *role)
	}

	if err := query.Order("projects.id ASC").Find(&projects).Error; err != nil {
		return nil, pkgErrors.Internal("查询项目列表失败", err)
	}
	return projects, nil
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)

	issueIDs := db.Model(&model.Issue{}).Select("id").Where("project_id = ?", id)
	if err := db.Where("issue_id IN (?)", issueIDs).Delete(&model.Comment{}).Error; err != nil {
		return pkgErrors.Internal("删除项目评论失败", err)
	}
	if err := db.Where("project_id = ?", id).Delete(&model.Issue{}).Error; err != nil {
		return pkgErrors.Internal("删除项目issue失败", err)
	}
	if err := db.Where("project_id = ?", id).Delete(&model.ProjectMember{}).Error; err != nil {
		return pkgErrors.Internal("删除项目成员失败", err)
	}

	result := db.Delete(&model.Project{}, id)
	if result.Error != nil {
		return pkgErrors.Internal("删除项目失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}
