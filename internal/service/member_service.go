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
	"issuehub/internal/pkg/crypto"
	"issuehub/internal/repository"
	pkgErrors "issuehub/pkg/errors"
)

// MemberService 维护项目成员台账
//
// 所有可能减少 maintainer 数量的变更都在锁定项目行的事务中进行，
// maintainer 数量在同一事务内读取，保证每个项目始终至少有一个 maintainer
type MemberService interface {
	Add(ctx context.Context, actorID, projectID int64, req *dto.MemberAddRequest) error
	Onboard(ctx context.Context, actorID, projectID int64, req *dto.MemberOnboardRequest) (*dto.OnboardResponse, error)
	List(ctx context.Context, actorID, projectID int64) ([]*dto.MemberResponse, error)
	UpdateRole(ctx context.Context, actorID, projectID, userID int64, req *dto.MemberUpdateRequest) error
	Remove(ctx context.Context, actorID, projectID, userID int64) error
}

type memberService struct {
	db          *gorm.DB
	projectRepo repository.ProjectRepository
	memberRepo  repository.MemberRepository
	userRepo    repository.UserRepository
	authz       AuthorizationService
	log         *zap.Logger
}

func NewMemberService(
	db *gorm.DB,
	projectRepo repository.ProjectRepository,
	memberRepo repository.MemberRepository,
	userRepo repository.UserRepository,
	authz AuthorizationService,
	log *zap.Logger,
) MemberService {
	return &memberService{
		db:          db,
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		userRepo:    userRepo,
		authz:       authz,
		log:         log,
	}
}

// memberTx 事务内可用的仓储
type memberTx struct {
	projects repository.ProjectRepository
	members  repository.MemberRepository
	users    repository.UserRepository
	actor    *auth.Membership
}

// withProjectLock 锁定项目行并加载操作者的成员身份后执行 fn
func (s *memberService) withProjectLock(ctx context.Context, actorID, projectID int64, fn func(tx *memberTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		tx := &memberTx{
			projects: s.projectRepo.WithTx(db),
			members:  s.memberRepo.WithTx(db),
			users:    s.userRepo.WithTx(db),
		}

		if _, err := tx.projects.LockByID(ctx, projectID); err != nil {
			return projectError(err)
		}

		actor, err := s.authz.MembershipWith(ctx, tx.members, projectID, actorID)
		if err != nil {
			return err
		}
		tx.actor = actor

		return fn(tx)
	})
}

// Add 按邮箱添加已注册用户；已是成员时覆盖其角色
func (s *memberService) Add(ctx context.Context, actorID, projectID int64, req *dto.MemberAddRequest) error {
	role, err := auth.ParseRole(req.Role)
	if err != nil {
		return pkgErrors.ErrValidation.WithDetails(err.Error())
	}

	var userID int64
	err = s.withProjectLock(ctx, actorID, projectID, func(tx *memberTx) error {
		if err := s.authz.Enforce("member:add", actorID, auth.CanManageMembers(tx.actor)); err != nil {
			return err
		}

		user, err := tx.users.FindByEmail(ctx, req.Email)
		if err != nil {
			if errors.Is(err, pkgErrors.ErrRecordNotFound) {
				return pkgErrors.ErrUserNotFound
			}
			return err
		}
		userID = user.ID

		existing, err := tx.members.Find(ctx, projectID, user.ID)
		if err != nil && !errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			// 覆盖角色等同于修改角色，同样受最后一个 maintainer 保护
			if err := s.checkRoleChange(ctx, tx, actorID, projectID, existing.Role, role); err != nil {
				return err
			}
		}

		return tx.members.Upsert(ctx, projectID, user.ID, role)
	})
	if err != nil {
		return err
	}

	metrics.RecordMutation("member", "add")
	s.log.Info("添加项目成员",
		zap.Int64("project_id", projectID),
		zap.Int64("user_id", userID),
		zap.String("role", string(role)),
		zap.Int64("operator_id", actorID))
	return nil
}

// Onboard 一步创建新用户并加入项目
func (s *memberService) Onboard(ctx context.Context, actorID, projectID int64, req *dto.MemberOnboardRequest) (*dto.OnboardResponse, error) {
	role := auth.RoleMember
	if req.Role != "" {
		r, err := auth.ParseRole(req.Role)
		if err != nil {
			return nil, pkgErrors.ErrValidation.WithDetails(err.Error())
		}
		role = r
	}

	// bcrypt 较慢，在事务外完成
	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, pkgErrors.Internal("密码加密失败", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	err = s.withProjectLock(ctx, actorID, projectID, func(tx *memberTx) error {
		if err := s.authz.Enforce("member:onboard", actorID, auth.CanManageMembers(tx.actor)); err != nil {
			return err
		}

		existing, err := tx.users.FindByEmail(ctx, req.Email)
		if err != nil && !errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			return pkgErrors.ErrEmailTaken.WithMessage("User already exists. Use invite by email for existing users.")
		}

		if err := tx.users.Create(ctx, user); err != nil {
			return err
		}
		return tx.members.Upsert(ctx, projectID, user.ID, role)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordMutation("member", "onboard")
	s.log.Info("导入新成员",
		zap.Int64("project_id", projectID),
		zap.Int64("user_id", user.ID),
		zap.String("role", string(role)),
		zap.Int64("operator_id", actorID))

	return &dto.OnboardResponse{OK: true, UserID: user.ID}, nil
}

func (s *memberService) List(ctx context.Context, actorID, projectID int64) ([]*dto.MemberResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, projectError(err)
	}

	m, err := s.authz.Membership(ctx, projectID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.Enforce("member:list", actorID, auth.CanManageMembers(m)); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListByProject(ctx, projectID, repository.WithPreload("User"))
	if err != nil {
		return nil, err
	}
	return lo.Map(members, func(m *model.ProjectMember, _ int) *dto.MemberResponse { return dto.NewMemberResponse(m) }), nil
}

func (s *memberService) UpdateRole(ctx context.Context, actorID, projectID, userID int64, req *dto.MemberUpdateRequest) error {
	role, err := auth.ParseRole(req.Role)
	if err != nil {
		return pkgErrors.ErrValidation.WithDetails(err.Error())
	}

	var previous auth.Role
	err = s.withProjectLock(ctx, actorID, projectID, func(tx *memberTx) error {
		if err := s.authz.Enforce("member:update", actorID, auth.CanManageMembers(tx.actor)); err != nil {
			return err
		}

		target, err := tx.members.Find(ctx, projectID, userID)
		if err != nil {
			return memberError(err)
		}
		previous = target.Role

		if err := s.checkRoleChange(ctx, tx, actorID, projectID, target.Role, role); err != nil {
			return err
		}
		return tx.members.Upsert(ctx, projectID, userID, role)
	})
	if err != nil {
		return err
	}

	metrics.RecordMutation("member", "update_role")
	s.log.Info("修改成员角色",
		zap.Int64("project_id", projectID),
		zap.Int64("user_id", userID),
		zap.String("from", string(previous)),
		zap.String("to", string(role)),
		zap.Int64("operator_id", actorID))
	return nil
}

func (s *memberService) Remove(ctx context.Context, actorID, projectID, userID int64) error {
	err := s.withProjectLock(ctx, actorID, projectID, func(tx *memberTx) error {
		if err := s.authz.Enforce("member:manage", actorID, auth.CanManageMembers(tx.actor)); err != nil {
			return err
		}

		target, err := tx.members.Find(ctx, projectID, userID)
		if err != nil {
			return memberError(err)
		}

		count, err := tx.members.CountMaintainers(ctx, projectID)
		if err != nil {
			return err
		}
		if err := s.authz.Enforce("member:remove", actorID, auth.CanRemoveMember(tx.actor, target.Role, count)); err != nil {
			return err
		}

		return memberError(tx.members.Delete(ctx, projectID, userID))
	})
	if err != nil {
		return err
	}

	metrics.RecordMutation("member", "remove")
	s.log.Info("移除项目成员",
		zap.Int64("project_id", projectID),
		zap.Int64("user_id", userID),
		zap.Int64("operator_id", actorID))
	return nil
}

// checkRoleChange 在事务内读取 maintainer 数量后判定角色变更
func (s *memberService) checkRoleChange(ctx context.Context, tx *memberTx, actorID, projectID int64, current, next auth.Role) error {
	if current != auth.RoleMaintainer || next == auth.RoleMaintainer {
		return nil
	}
	count, err := tx.members.CountMaintainers(ctx, projectID)
	if err != nil {
		return err
	}
	return s.authz.Enforce("member:demote", actorID, auth.CanChangeRole(tx.actor, current, next, count))
}

// memberError 仓储未命中转换为成员不存在
func memberError(err error) error {
	if errors.Is(err, pkgErrors.ErrRecordNotFound) {
		return pkgErrors.ErrMemberNotFound
	}
	return err
}
