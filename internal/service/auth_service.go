package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"issuehub/internal/dto"
	"issuehub/internal/model"
	"issuehub/internal/pkg/crypto"
	"issuehub/internal/pkg/jwt"
	"issuehub/internal/repository"
	pkgErrors "issuehub/pkg/errors"
)

const tokenTypeBearer = "bearer"

type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Authenticate 校验 access token 并确认用户仍然存在，返回用户ID
	Authenticate(ctx context.Context, token string) (int64, error)
	Me(ctx context.Context, userID int64) (*dto.UserResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		log:      log,
	}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.TokenResponse, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, pkgErrors.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, pkgErrors.ErrEmailTaken
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, pkgErrors.Internal("密码加密失败", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	// 并发注册同一邮箱时由唯一索引兜底
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("用户注册成功", zap.Int64("user_id", user.ID), zap.String("email", user.Email))
	return s.issue(user.ID)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, pkgErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(req.Password, user.PasswordHash) {
		s.log.Debug("密码错误", zap.Int64("user_id", user.ID))
		return nil, pkgErrors.ErrInvalidCredentials
	}

	return s.issue(user.ID)
}

func (s *authService) Authenticate(ctx context.Context, token string) (int64, error) {
	userID, err := jwt.VerifyAccessToken(token)
	if err != nil {
		return 0, err
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return 0, pkgErrors.ErrUnauthorized.WithMessage("User not found")
		}
		return 0, err
	}
	return userID, nil
}

func (s *authService) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, pkgErrors.ErrUnauthorized.WithMessage("User not found")
		}
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *authService) issue(userID int64) (*dto.TokenResponse, error) {
	token, err := jwt.GenerateAccessToken(userID)
	if err != nil {
		return nil, pkgErrors.Internal("生成AccessToken失败", err)
	}
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
	}, nil
}
