package repository

import (
	"context"

	"gorm.io/gorm"

	"issuehub/internal/model"
	pkgErrors "issuehub/pkg/errors"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByIssue(ctx context.Context, issueID int64) ([]*model.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if err := r.db.WithContext(ctx).Omit("Author").Create(comment).Error; err != nil {
		return pkgErrors.Internal("创建评论失败", err)
	}
	return nil
}

func (r *commentRepository) ListByIssue(ctx context.Context, issueID int64) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.WithContext(ctx).
		Where("issue_id = ?", issueID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, pkgErrors.Internal("查询评论失败", err)
	}
	return comments, nil
}
