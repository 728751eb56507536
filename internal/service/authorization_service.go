package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"issuehub/internal/metrics"
	"issuehub/internal/pkg/auth"
	"issuehub/internal/repository"
	pkgErrors "issuehub/pkg/errors"
)

// AuthorizationService 加载授权所需的事实并执行判定
//
//  1. Membership 从 project_members 读取 (project, user) 的角色，非成员返回 nil
//  2. 判定本身由 internal/pkg/auth 的纯函数完成
//  3. Enforce 把 Deny(reason) 转换为对外错误，并记录判定指标
type AuthorizationService interface {
	Membership(ctx context.Context, projectID, userID int64) (*auth.Membership, error)
	// MembershipWith 使用调用方事务内的仓储读取，保证与后续写入看到同一份数据
	MembershipWith(ctx context.Context, members repository.MemberRepository, projectID, userID int64) (*auth.Membership, error)
	Enforce(action string, userID int64, d auth.Decision) error
}

type authorizationService struct {
	memberRepo repository.MemberRepository
	log        *zap.Logger
}

func NewAuthorizationService(memberRepo repository.MemberRepository, log *zap.Logger) AuthorizationService {
	return &authorizationService{
		memberRepo: memberRepo,
		log:        log,
	}
}

func (s *authorizationService) Membership(ctx context.Context, projectID, userID int64) (*auth.Membership, error) {
	return s.MembershipWith(ctx, s.memberRepo, projectID, userID)
}

func (s *authorizationService) MembershipWith(ctx context.Context, members repository.MemberRepository, projectID, userID int64) (*auth.Membership, error) {
	member, err := members.Find(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &auth.Membership{Role: member.Role}, nil
}

func (s *authorizationService) Enforce(action string, userID int64, d auth.Decision) error {
	if d.Allowed {
		metrics.RecordDecision(action, "allow")
		return nil
	}

	metrics.RecordDecision(action, string(d.Reason))
	s.log.Debug("授权拒绝",
		zap.String("action", action),
		zap.Int64("user_id", userID),
		zap.String("reason", string(d.Reason)))

	return DecisionError(d)
}

// DecisionError 拒绝原因到对外错误的映射
func DecisionError(d auth.Decision) error {
	switch d.Reason {
	case auth.ReasonLastMaintainer:
		return pkgErrors.ErrLastMaintainer
	case auth.ReasonNotMember:
		return pkgErrors.ErrForbidden.
			WithMessage("Not a member of this project").
			WithDetails(map[string]string{"reason": string(d.Reason)})
	case auth.ReasonNotMaintainer:
		return pkgErrors.ErrForbidden.
			WithMessage("Maintainer role required").
			WithDetails(map[string]string{"reason": string(d.Reason)})
	case auth.ReasonNotReporterOrMaintainer:
		return pkgErrors.ErrForbidden.
			WithMessage("Only the reporter or a maintainer can modify this issue").
			WithDetails(map[string]string{"reason": string(d.Reason)})
	default:
		return pkgErrors.ErrForbidden
	}
}
