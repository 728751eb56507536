package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"issuehub/internal/metrics"
	"issuehub/internal/model"
	"issuehub/internal/repository"
)

// Stats 全局统计快照
type Stats struct {
	Users    int64
	Projects int64
	Issues   map[model.IssueStatus]int64
}

type StatsService interface {
	Collect(ctx context.Context) (*Stats, error)
	// Refresh 采集并写入 Prometheus gauge
	Refresh(ctx context.Context) error
}

type statsService struct {
	repo   repository.StatsRepository
	logger *zap.Logger
}

func NewStatsService(repo repository.StatsRepository, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

func (s *statsService) Collect(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.CountUsers(ctx)
		stats.Users = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountProjects(ctx)
		stats.Projects = n
		return err
	})
	g.Go(func() error {
		m, err := s.repo.CountIssuesByStatus(ctx)
		stats.Issues = m
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *statsService) Refresh(ctx context.Context) error {
	stats, err := s.Collect(ctx)
	if err != nil {
		return err
	}

	metrics.UsersTotal.Set(float64(stats.Users))
	metrics.ProjectsTotal.Set(float64(stats.Projects))
	for status, n := range stats.Issues {
		metrics.IssuesTotal.WithLabelValues(string(status)).Set(float64(n))
	}

	s.logger.Debug("业务统计已刷新",
		zap.Int64("users", stats.Users),
		zap.Int64("projects", stats.Projects))
	return nil
}
