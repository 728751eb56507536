package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"issuehub/internal/pkg/config"
	"issuehub/internal/pkg/database/dbtest"
)

func TestSchedulerRegistersStatsJob(t *testing.T) {
	s := NewScheduler(dbtest.Open(t), zap.NewNop())
	require.NoError(t, s.Start(&config.MetricsConfig{StatsCron: "0 0 * * * *"}))
	defer s.Stop()

	assert.Contains(t, s.Entries(), jobStats)
	assert.NoError(t, s.TriggerStats())
}

func TestSchedulerRejectsBadCron(t *testing.T) {
	s := NewScheduler(dbtest.Open(t), zap.NewNop())
	assert.Error(t, s.Start(&config.MetricsConfig{StatsCron: "not a cron"}))
}
