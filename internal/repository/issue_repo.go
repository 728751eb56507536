package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"issuehub/internal/model"
	pkgErrors "issuehub/pkg/errors"
)

// IssueSort 排序键
type IssueSort string

const (
	IssueSortCreatedAt IssueSort = "created_at" // 创建时间倒序
	IssueSortPriority  IssueSort = "priority"   // 严重程度升序 low<medium<high<critical
	IssueSortStatus    IssueSort = "status"     // 工作流升序 open<in_progress<resolved<closed
)

// IssueFilter 各条件可选，同时出现时为 AND；先过滤排序，再 offset/limit
type IssueFilter struct {
	Q          string
	Status     *model.IssueStatus
	Priority   *model.IssuePriority
	AssigneeID *int64
	Sort       IssueSort
	Limit      int
	Offset     int
}

type IssueRepository interface {
	WithTx(tx *gorm.DB) IssueRepository
	Create(ctx context.Context, issue *model.Issue) error
	FindByID(ctx context.Context, id int64) (*model.Issue, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	// Delete 先删评论再删 issue，调用方负责开启事务
	Delete(ctx context.Context, id int64) error
	ListByProject(ctx context.Context, projectID int64, filter IssueFilter) ([]*model.Issue, error)
}

type issueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{db: db}
}

func (r *issueRepository) WithTx(tx *gorm.DB) IssueRepository {
	return &issueRepository{db: tx}
}

func (r *issueRepository) Create(ctx context.Context, issue *model.Issue) error {
	if err := r.db.WithContext(ctx).Omit("Reporter", "Assignee", "Comments").Create(issue).Error; err != nil {
		return pkgErrors.Internal("创建issue失败", err)
	}
	return nil
}

func (r *issueRepository) FindByID(ctx context.Context, id int64) (*model.Issue, error) {
	var issue model.Issue
	if err := r.db.WithContext(ctx).First(&issue, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Internal("查询issue失败", err)
	}
	return &issue, nil
}

func (r *issueRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(&model.Issue{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return pkgErrors.Internal("更新issue失败", err)
	}
	return nil
}

func (r *issueRepository) Delete(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("issue_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
		return pkgErrors.Internal("删除issue评论失败", err)
	}
	result := db.Delete(&model.Issue{}, id)
	if result.Error != nil {
		return pkgErrors.Internal("删除issue失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}

func (r *issueRepository) ListByProject(ctx context.Context, projectID int64, filter IssueFilter) ([]*model.Issue, error) {
	var issues []*model.Issue

	query := r.db.WithContext(ctx).Model(&model.Issue{}).Where("project_id = ?", projectID)
	if filter.Q != "" {
		query = query.Where("LOWER(title) LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(filter.Q))+"%")
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}

	switch filter.Sort {
	case IssueSortPriority:
		query = query.Order(rankExpr("priority", priorityNames())).Order("id ASC")
	case IssueSortStatus:
		query = query.Order(rankExpr("status", statusNames())).Order("id ASC")
	default:
		query = query.Order("created_at DESC").Order("id DESC")
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&issues).Error; err != nil {
		return nil, pkgErrors.Internal("查询issue列表失败", err)
	}
	return issues, nil
}

// escapeLike 转义 LIKE 通配符，转义符为 '!'（mysql 与 sqlite 通用）
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

// rankExpr 生成按枚举顺序排序的 CASE 表达式，取值均来自常量
func rankExpr(column string, ordered []string) string {
	var b strings.Builder
	b.WriteString("CASE ")
	b.WriteString(column)
	for i, v := range ordered {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", v, i+1)
	}
	fmt.Fprintf(&b, " ELSE %d END ASC", len(ordered)+1)
	return b.String()
}

func priorityNames() []string {
	names := make([]string, len(model.IssuePriorities))
	for i, p := range model.IssuePriorities {
		names[i] = string(p)
	}
	return names
}

func statusNames() []string {
	names := make([]string, len(model.IssueStatuses))
	for i, s := range model.IssueStatuses {
		names[i] = string(s)
	}
	return names
}
