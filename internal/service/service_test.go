package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"issuehub/internal/dto"
	"issuehub/internal/model"
	"issuehub/internal/pkg/auth"
	"issuehub/internal/pkg/config"
	"issuehub/internal/pkg/crypto"
	"issuehub/internal/pkg/database/dbtest"
	"issuehub/internal/repository"
	pkgErrors "issuehub/pkg/errors"
)

func init() {
	crypto.Cost = bcrypt.MinCost
	config.GlobalConfig = &config.Config{
		Auth: config.AuthConfig{
			JWT: config.JWTConfig{Secret: "test-secret", AccessTokenExpire: 3600, Issuer: "issuehub-test"},
		},
	}
}

type testEnv struct {
	db       *gorm.DB
	users    repository.UserRepository
	members  repository.MemberRepository
	issues   repository.IssueRepository
	comments repository.CommentRepository

	auth     AuthService
	projects ProjectService
	member   MemberService
	issue    IssueService
	comment  CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := dbtest.Open(t)
	log := zap.NewNop()

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	authz := NewAuthorizationService(memberRepo, log)

	return &testEnv{
		db:       db,
		users:    userRepo,
		members:  memberRepo,
		issues:   issueRepo,
		comments: commentRepo,
		auth:     NewAuthService(userRepo, log),
		projects: NewProjectService(db, projectRepo, memberRepo, authz, log),
		member:   NewMemberService(db, projectRepo, memberRepo, userRepo, authz, log),
		issue:    NewIssueService(db, issueRepo, projectRepo, memberRepo, authz, log),
		comment:  NewCommentService(commentRepo, issueRepo, authz, log),
	}
}

// user 直接写库创建用户
func (e *testEnv) user(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{Name: name, Email: name + "@example.com", PasswordHash: "-"}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *testEnv) project(t *testing.T, owner *model.User, key string) *dto.ProjectResponse {
	t.Helper()
	p, err := e.projects.Create(context.Background(), owner.ID, &dto.CreateProjectRequest{Name: "Project " + key, Key: key})
	require.NoError(t, err)
	return p
}

func (e *testEnv) addMember(t *testing.T, actor *model.User, projectID int64, u *model.User, role auth.Role) {
	t.Helper()
	err := e.member.Add(context.Background(), actor.ID, projectID, &dto.MemberAddRequest{Email: u.Email, Role: string(role)})
	require.NoError(t, err)
}

func (e *testEnv) newIssue(t *testing.T, actor *model.User, projectID int64, title string, priority model.IssuePriority) *dto.IssueResponse {
	t.Helper()
	issue, err := e.issue.Create(context.Background(), actor.ID, projectID, &dto.CreateIssueRequest{Title: title, Priority: string(priority)})
	require.NoError(t, err)
	return issue
}

func (e *testEnv) maintainerCount(t *testing.T, projectID int64) int64 {
	t.Helper()
	n, err := e.members.CountMaintainers(context.Background(), projectID)
	require.NoError(t, err)
	return n
}

// requireCode 断言错误码
func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := pkgErrors.As(err)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code, fmt.Sprintf("error: %v", err))
}

// requireDenied 断言授权拒绝及原因
func requireDenied(t *testing.T, err error, reason auth.DenyReason) {
	t.Helper()
	requireCode(t, err, pkgErrors.CodeForbidden)
	appErr, _ := pkgErrors.As(err)
	require.Equal(t, map[string]string{"reason": string(reason)}, appErr.Details)
}
