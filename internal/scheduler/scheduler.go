package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"issuehub/internal/pkg/config"
	"issuehub/internal/repository"
	"issuehub/internal/service"
)

const jobStats = "stats"

// Scheduler 调度器
type Scheduler struct {
	cron          *cron.Cron
	logger        *zap.Logger
	statsSvc      service.StatsService
	cronSchedules map[string]cron.EntryID // 存储任务ID，便于管理
}

// NewScheduler 创建调度器
func NewScheduler(db *gorm.DB, logger *zap.Logger) *Scheduler {
	// 创建 cron 实例（带秒级支持）
	c := cron.New(cron.WithSeconds())

	return &Scheduler{
		cron:          c,
		logger:        logger,
		statsSvc:      service.NewStatsService(repository.NewStatsRepository(db), logger),
		cronSchedules: make(map[string]cron.EntryID),
	}
}

// Start 注册任务并启动调度器；启动时先同步执行一次统计
func (s *Scheduler) Start(cfg *config.MetricsConfig) error {
	log := s.logger.Sugar()

	log.Info("启动定时任务调度器...")

	// cron 表达式格式: 秒 分 时 日 月 周
	cronExpr := cfg.StatsCron
	if cronExpr == "" {
		cronExpr = "0 */5 * * * *"
		log.Warnw("未配置metrics.stats_cron，使用默认值", "cron", cronExpr)
	}

	entryID, err := s.cron.AddFunc(cronExpr, func() {
		if err := s.TriggerStats(); err != nil {
			log.Errorf("业务统计任务执行失败: %v", err)
		}
	})
	if err != nil {
		log.Errorf("注册业务统计任务: %v 失败: %v", cronExpr, err)
		return err
	}

	s.cronSchedules[jobStats] = entryID
	log.Infof("业务统计任务已注册: %s entry_id=%d", cronExpr, entryID)

	if err := s.TriggerStats(); err != nil {
		log.Warnf("首次业务统计失败: %v", err)
	}

	s.cron.Start()
	log.Info("定时任务调度器启动成功")

	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.logger.Info("正在停止定时任务调度器...")

	// 停止 cron（等待正在执行的任务完成）
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.logger.Info("定时任务调度器已停止")
}

// TriggerStats 手动触发一次业务统计
func (s *Scheduler) TriggerStats() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.statsSvc.Refresh(ctx)
}

// Entries 已注册任务
func (s *Scheduler) Entries() map[string]cron.EntryID {
	return s.cronSchedules
}
