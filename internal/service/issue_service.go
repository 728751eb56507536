package service

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"issuehub/internal/dto"
	"issuehub/internal/metrics"
	"issuehub/internal/model"
	"issuehub/internal/pkg/auth"
	"issuehub/internal/repository"
	pkgErrors "issuehub/pkg/errors"
)

type IssueService interface {
	List(ctx context.Context, actorID, projectID int64, query *dto.IssueListQuery) ([]*dto.IssueResponse, error)
	Create(ctx context.Context, actorID, projectID int64, req *dto.CreateIssueRequest) (*dto.IssueResponse, error)
	Get(ctx context.Context, actorID, issueID int64) (*dto.IssueResponse, error)
	Update(ctx context.Context, actorID, issueID int64, req *dto.UpdateIssueRequest) (*dto.IssueResponse, error)
	Delete(ctx context.Context, actorID, issueID int64) error
}

type issueService struct {
	db          *gorm.DB
	repo        repository.IssueRepository
	projectRepo repository.ProjectRepository
	memberRepo  repository.MemberRepository
	authz       AuthorizationService
	log         *zap.Logger
	now         func() time.Time
}

func NewIssueService(
	db *gorm.DB,
	repo repository.IssueRepository,
	projectRepo repository.ProjectRepository,
	memberRepo repository.MemberRepository,
	authz AuthorizationService,
	log *zap.Logger,
) IssueService {
	return &issueService{
		db:          db,
		repo:        repo,
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		authz:       authz,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *issueService) List(ctx context.Context, actorID, projectID int64, query *dto.IssueListQuery) ([]*dto.IssueResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, projectError(err)
	}

	m, err := s.authz.Membership(ctx, projectID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.Enforce("issue:list", actorID, auth.CanViewIssue(m)); err != nil {
		return nil, err
	}

	filter := repository.IssueFilter{
		Q:          query.Q,
		AssigneeID: query.Assignee,
		Sort:       repository.IssueSort(query.Sort),
		Limit:      query.GetLimit(),
		Offset:     query.Offset,
	}
	if query.Status != "" {
		filter.Status = lo.ToPtr(model.IssueStatus(query.Status))
	}
	if query.Priority != "" {
		filter.Priority = lo.ToPtr(model.IssuePriority(query.Priority))
	}

	issues, err := s.repo.ListByProject(ctx, projectID, filter)
	if err != nil {
		return nil, err
	}
	return lo.Map(issues, func(i *model.Issue, _ int) *dto.IssueResponse { return dto.NewIssueResponse(i) }), nil
}

// Create 仅 maintainer 可创建；指派人必须是项目成员
func (s *issueService) Create(ctx context.Context, actorID, projectID int64, req *dto.CreateIssueRequest) (*dto.IssueResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, projectError(err)
	}

	now := s.now()
	issue := &model.Issue{
		BaseModel:   model.BaseModel{CreatedAt: now},
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.IssueStatusOpen,
		Priority:    req.GetPriority(),
		ReporterID:  actorID,
		AssigneeID:  req.AssigneeID,
		UpdatedAt:   now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		members := s.memberRepo.WithTx(tx)

		m, err := s.authz.MembershipWith(ctx, members, projectID, actorID)
		if err != nil {
			return err
		}
		if err := s.authz.Enforce("issue:create", actorID, auth.CanCreateIssue(m)); err != nil {
			return err
		}

		if req.AssigneeID != nil {
			if err := s.checkAssignee(ctx, members, projectID, *req.AssigneeID); err != nil {
				return err
			}
		}

		return s.repo.WithTx(tx).Create(ctx, issue)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordMutation("issue", "create")
	s.log.Info("issue创建成功",
		zap.Int64("issue_id", issue.ID),
		zap.Int64("project_id", projectID),
		zap.Int64("reporter_id", actorID))

	return dto.NewIssueResponse(issue), nil
}

func (s *issueService) Get(ctx context.Context, actorID, issueID int64) (*dto.IssueResponse, error) {
	issue, err := s.repo.FindByID(ctx, issueID)
	if err != nil {
		return nil, issueError(err)
	}

	m, err := s.authz.Membership(ctx, issue.ProjectID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.Enforce("issue:view", actorID, auth.CanViewIssue(m)); err != nil {
		return nil, err
	}

	return dto.NewIssueResponse(issue), nil
}

// Update 部分更新
//   - 修改 status / assignee_id 需要 maintainer
//   - 修改 title / description / priority 需要是报告人或 maintainer
//   - 只有提供了字段时才推进 updated_at
func (s *issueService) Update(ctx context.Context, actorID, issueID int64, req *dto.UpdateIssueRequest) (*dto.IssueResponse, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, pkgErrors.ErrValidation.WithDetails(errs)
	}

	var updated *model.Issue
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		issues := s.repo.WithTx(tx)
		members := s.memberRepo.WithTx(tx)

		issue, err := issues.FindByID(ctx, issueID)
		if err != nil {
			return issueError(err)
		}

		m, err := s.authz.MembershipWith(ctx, members, issue.ProjectID, actorID)
		if err != nil {
			return err
		}
		decision := auth.CanUpdateIssue(m, auth.IssueUpdate{
			IsReporter:    issue.ReporterID == actorID,
			ChangesTriage: req.ChangesTriage(),
		})
		if err := s.authz.Enforce("issue:update", actorID, decision); err != nil {
			return err
		}

		if req.AssigneeID.Set && !req.AssigneeID.Null {
			if err := s.checkAssignee(ctx, members, issue.ProjectID, req.AssigneeID.Value); err != nil {
				return err
			}
		}

		if !req.HasChanges() {
			updated = issue
			return nil
		}

		if err := issues.Update(ctx, issueID, s.buildUpdates(req)); err != nil {
			return err
		}
		updated, err = issues.FindByID(ctx, issueID)
		return issueError(err)
	})
	if err != nil {
		return nil, err
	}

	if req.HasChanges() {
		metrics.RecordMutation("issue", "update")
		s.log.Info("issue已更新", zap.Int64("issue_id", issueID), zap.Int64("operator_id", actorID))
	}
	return dto.NewIssueResponse(updated), nil
}

// buildUpdates 只包含请求中出现的字段；显式 null 写入 NULL
func (s *issueService) buildUpdates(req *dto.UpdateIssueRequest) map[string]interface{} {
	updates := make(map[string]interface{})
	if req.Title.Set {
		updates["title"] = req.Title.Value
	}
	if req.Description.Set {
		if req.Description.Null {
			updates["description"] = nil
		} else {
			updates["description"] = req.Description.Value
		}
	}
	if req.Status.Set {
		updates["status"] = string(req.Status.Value)
	}
	if req.Priority.Set {
		updates["priority"] = string(req.Priority.Value)
	}
	if req.AssigneeID.Set {
		if req.AssigneeID.Null {
			updates["assignee_id"] = nil
		} else {
			updates["assignee_id"] = req.AssigneeID.Value
		}
	}
	updates["updated_at"] = s.now()
	return updates
}

func (s *issueService) Delete(ctx context.Context, actorID, issueID int64) error {
	var projectID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		issues := s.repo.WithTx(tx)

		issue, err := issues.FindByID(ctx, issueID)
		if err != nil {
			return issueError(err)
		}
		projectID = issue.ProjectID

		m, err := s.authz.MembershipWith(ctx, s.memberRepo.WithTx(tx), issue.ProjectID, actorID)
		if err != nil {
			return err
		}
		if err := s.authz.Enforce("issue:delete", actorID, auth.CanDeleteIssue(m, issue.ReporterID == actorID)); err != nil {
			return err
		}

		return issueError(issues.Delete(ctx, issueID))
	})
	if err != nil {
		return err
	}

	metrics.RecordMutation("issue", "delete")
	s.log.Info("issue已删除",
		zap.Int64("issue_id", issueID),
		zap.Int64("project_id", projectID),
		zap.Int64("operator_id", actorID))
	return nil
}

// checkAssignee 指派人必须是同一项目的成员
func (s *issueService) checkAssignee(ctx context.Context, members repository.MemberRepository, projectID, userID int64) error {
	if _, err := members.Find(ctx, projectID, userID); err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return pkgErrors.ErrInvalidAssignee
		}
		return err
	}
	return nil
}
