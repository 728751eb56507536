package service

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"issuehub/internal/dto"
	"issuehub/internal/metrics"
	"issuehub/internal/model"
	"issuehub/internal/pkg/auth"
	"issuehub/internal/repository"
)

type CommentService interface {
	List(ctx context.Context, actorID, issueID int64) ([]*dto.CommentResponse, error)
	Add(ctx context.Context, actorID, issueID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
}

type commentService struct {
	repo      repository.CommentRepository
	issueRepo repository.IssueRepository
	authz     AuthorizationService
	log       *zap.Logger
}

func NewCommentService(
	repo repository.CommentRepository,
	issueRepo repository.IssueRepository,
	authz AuthorizationService,
	log *zap.Logger,
) CommentService {
	return &commentService{
		repo:      repo,
		issueRepo: issueRepo,
		authz:     authz,
		log:       log,
	}
}

func (s *commentService) List(ctx context.Context, actorID, issueID int64) ([]*dto.CommentResponse, error) {
	issue, err := s.issueRepo.FindByID(ctx, issueID)
	if err != nil {
		return nil, issueError(err)
	}

	m, err := s.authz.Membership(ctx, issue.ProjectID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.Enforce("comment:list", actorID, auth.CanListComments(m)); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListByIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}
	return lo.Map(comments, func(c *model.Comment, _ int) *dto.CommentResponse { return dto.NewCommentResponse(c) }), nil
}

// Add 项目成员均可评论，作者为当前用户
func (s *commentService) Add(ctx context.Context, actorID, issueID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	issue, err := s.issueRepo.FindByID(ctx, issueID)
	if err != nil {
		return nil, issueError(err)
	}

	m, err := s.authz.Membership(ctx, issue.ProjectID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.Enforce("comment:create", actorID, auth.CanAddComment(m)); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		IssueID:  issueID,
		AuthorID: actorID,
		Body:     req.Body,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	metrics.RecordMutation("comment", "create")
	s.log.Debug("评论已发表", zap.Int64("comment_id", comment.ID), zap.Int64("issue_id", issueID))
	return dto.NewCommentResponse(comment), nil
}
