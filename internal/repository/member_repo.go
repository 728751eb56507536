package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"issuehub/internal/model"
	"issuehub/internal/pkg/auth"
	pkgErrors "issuehub/pkg/errors"
)

// MemberRepository 成员台账，(project_id, user_id) 唯一，是授权判断的唯一事实来源
type MemberRepository interface {
	WithTx(tx *gorm.DB) MemberRepository
	// Upsert 已存在则覆盖角色，不会产生重复记录
	Upsert(ctx context.Context, projectID, userID int64, role auth.Role) error
	Find(ctx context.Context, projectID, userID int64) (*model.ProjectMember, error)
	Delete(ctx context.Context, projectID, userID int64) error
	ListByProject(ctx context.Context, projectID int64, opts ...QueryOption) ([]*model.ProjectMember, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.ProjectMember, error)
	CountMaintainers(ctx context.Context, projectID int64) (int64, error)
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) WithTx(tx *gorm.DB) MemberRepository {
	return &memberRepository{db: tx}
}

func (r *memberRepository) Upsert(ctx context.Context, projectID, userID int64, role auth.Role) error {
	member := &model.ProjectMember{ProjectID: projectID, UserID: userID, Role: role}
	err := r.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role"}),
		}).
		Create(member).Error
	if err != nil {
		return pkgErrors.Internal("保存项目成员失败", err)
	}
	return nil
}

func (r *memberRepository) Find(ctx context.Context, projectID, userID int64) (*model.ProjectMember, error) {
	var member model.ProjectMember
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Internal("查询项目成员失败", err)
	}
	return &member, nil
}

func (r *memberRepository) Delete(ctx context.Context, projectID, userID int64) error {
	result := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&model.ProjectMember{})
	if result.Error != nil {
		return pkgErrors.Internal("删除项目成员失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}

func (r *memberRepository) ListByProject(ctx context.Context, projectID int64, opts ...QueryOption) ([]*model.ProjectMember, error) {
	var members []*model.ProjectMember
	query := applyOptions(r.db.WithContext(ctx), opts)
	if err := query.Where("project_id = ?", projectID).Order("user_id ASC").Find(&members).Error; err != nil {
		return nil, pkgErrors.Internal("查询项目成员失败", err)
	}
	return members, nil
}

func (r *memberRepository) ListByUser(ctx context.Context, userID int64) ([]*model.ProjectMember, error) {
	var members []*model.ProjectMember
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("project_id ASC").Find(&members).Error; err != nil {
		return nil, pkgErrors.Internal("查询用户成员关系失败", err)
	}
	return members, nil
}

func (r *memberRepository) CountMaintainers(ctx context.Context, projectID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ProjectMember{}).
		Where("project_id = ? AND role = ?", projectID, auth.RoleMaintainer).
		Count(&count).Error
	if err != nil {
		return 0, pkgErrors.Internal("统计项目维护者失败", err)
	}
	return count, nil
}
