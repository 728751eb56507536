package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"issuehub/internal/metrics"
	"issuehub/internal/model"
	"issuehub/internal/repository"
)

func TestStatsCollect(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	svc := NewStatsService(repository.NewStatsRepository(e.db), zap.NewNop())

	empty, err := svc.Collect(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.Users)
	assert.Zero(t, empty.Projects)
	assert.Len(t, empty.Issues, len(model.IssueStatuses))

	a := e.user(t, "alice")
	e.user(t, "bob")
	p := e.project(t, a, "ST")
	e.newIssue(t, a, p.ID, "one", model.IssuePriorityLow)
	closed := e.newIssue(t, a, p.ID, "two", model.IssuePriorityHigh)
	require.NoError(t, e.db.Model(&model.Issue{}).Where("id = ?", closed.ID).
		UpdateColumn("status", model.IssueStatusClosed).Error)

	stats, err := svc.Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Users)
	assert.Equal(t, int64(1), stats.Projects)
	assert.Equal(t, int64(1), stats.Issues[model.IssueStatusOpen])
	assert.Equal(t, int64(1), stats.Issues[model.IssueStatusClosed])
	assert.Equal(t, int64(0), stats.Issues[model.IssueStatusResolved])

	require.NoError(t, svc.Refresh(ctx))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ProjectsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.IssuesTotal.WithLabelValues("closed")))
}
