package repository

import (
	"context"

	"gorm.io/gorm"

	"issuehub/internal/model"
	pkgErrors "issuehub/pkg/errors"
)

// StatsRepository 全局计数，只读
type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountProjects(ctx context.Context) (int64, error)
	CountIssuesByStatus(ctx context.Context) (map[model.IssueStatus]int64, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.User{})
}

func (r *statsRepository) CountProjects(ctx context.Context) (int64, error) {
	return r.count(ctx, &model.Project{})
}

func (r *statsRepository) count(ctx context.Context, m interface{}) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(m).Count(&n).Error; err != nil {
		return 0, pkgErrors.Internal("统计失败", err)
	}
	return n, nil
}

func (r *statsRepository) CountIssuesByStatus(ctx context.Context) (map[model.IssueStatus]int64, error) {
	var rows []struct {
		Status model.IssueStatus
		Total  int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Issue{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, pkgErrors.Internal("统计 issue 失败", err)
	}

	// 没有 issue 的状态也返回 0，避免指标残留旧值
	result := make(map[model.IssueStatus]int64, len(model.IssueStatuses))
	for _, s := range model.IssueStatuses {
		result[s] = 0
	}
	for _, row := range rows {
		result[row.Status] = row.Total
	}
	return result, nil
}
