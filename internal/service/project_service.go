package service

import (
	"context"
	"errors"

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

type ProjectService interface {
	Create(ctx context.Context, actorID int64, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	// List 当前用户所在的全部项目
	List(ctx context.Context, actorID int64) ([]*dto.ProjectResponse, error)
	// ListMaintained 当前用户作为 maintainer 的项目
	ListMaintained(ctx context.Context, actorID int64) ([]*dto.ProjectResponse, error)
	Get(ctx context.Context, actorID, projectID int64) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, actorID, projectID int64) error
}

type projectService struct {
	db         *gorm.DB
	repo       repository.ProjectRepository
	memberRepo repository.MemberRepository
	authz      AuthorizationService
	log        *zap.Logger
}

func NewProjectService(
	db *gorm.DB,
	repo repository.ProjectRepository,
	memberRepo repository.MemberRepository,
	authz AuthorizationService,
	log *zap.Logger,
) ProjectService {
	return &projectService{
		db:         db,
		repo:       repo,
		memberRepo: memberRepo,
		authz:      authz,
		log:        log,
	}
}

// Create 创建项目，创建者自动成为 maintainer
// 从未加入任何项目的用户可以创建第一个项目；已有成员身份但不是任何项目 maintainer 的用户不能创建
func (s *projectService) Create(ctx context.Context, actorID int64, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	memberships, err := s.memberRepo.ListByUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	roles := lo.Map(memberships, func(m *model.ProjectMember, _ int) auth.Role { return m.Role })
	if err := s.authz.Enforce("project:create", actorID, auth.CanCreateProject(roles)); err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:        req.Name,
		Key:         req.Key,
		Description: req.Description,
	}

	// 项目与创建者成员关系在同一事务中写入；key 冲突时整体回滚
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, project); err != nil {
			return err
		}
		return s.memberRepo.WithTx(tx).Upsert(ctx, project.ID, actorID, auth.RoleMaintainer)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordMutation("project", "create")
	s.log.Info("项目创建成功",
		zap.Int64("project_id", project.ID),
		zap.String("key", project.Key),
		zap.Int64("creator_id", actorID))

	return dto.NewProjectResponse(project), nil
}

func (s *projectService) List(ctx context.Context, actorID int64) ([]*dto.ProjectResponse, error) {
	projects, err := s.repo.ListByMember(ctx, actorID, nil)
	if err != nil {
		return nil, err
	}
	return lo.Map(projects, func(p *model.Project, _ int) *dto.ProjectResponse { return dto.NewProjectResponse(p) }), nil
}

func (s *projectService) ListMaintained(ctx context.Context, actorID int64) ([]*dto.ProjectResponse, error) {
	projects, err := s.repo.ListByMember(ctx, actorID, lo.ToPtr(auth.RoleMaintainer))
	if err != nil {
		return nil, err
	}
	return lo.Map(projects, func(p *model.Project, _ int) *dto.ProjectResponse { return dto.NewProjectResponse(p) }), nil
}

func (s *projectService) Get(ctx context.Context, actorID, projectID int64) (*dto.ProjectResponse, error) {
	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, projectError(err)
	}

	m, err := s.authz.Membership(ctx, projectID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.Enforce("project:view", actorID, auth.CanViewProject(m)); err != nil {
		return nil, err
	}

	return dto.NewProjectResponse(project), nil
}

// Delete 删除项目及其成员、issue、评论
func (s *projectService) Delete(ctx context.Context, actorID, projectID int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).LockByID(ctx, projectID); err != nil {
			return projectError(err)
		}

		m, err := s.authz.MembershipWith(ctx, s.memberRepo.WithTx(tx), projectID, actorID)
		if err != nil {
			return err
		}
		if err := s.authz.Enforce("project:delete", actorID, auth.CanDeleteProject(m)); err != nil {
			return err
		}

		return projectError(s.repo.WithTx(tx).Delete(ctx, projectID))
	})
	if err != nil {
		return err
	}

	metrics.RecordMutation("project", "delete")
	s.log.Info("项目已删除", zap.Int64("project_id", projectID), zap.Int64("operator_id", actorID))
	return nil
}

// projectError 仓储未命中转换为项目不存在
func projectError(err error) error {
	if errors.Is(err, pkgErrors.ErrRecordNotFound) {
		return pkgErrors.ErrProjectNotFound
	}
	return err
}

// issueError 仓储未命中转换为 issue 不存在
func issueError(err error) error {
	if errors.Is(err, pkgErrors.ErrRecordNotFound) {
		return pkgErrors.ErrIssueNotFound
	}
	return err
}
