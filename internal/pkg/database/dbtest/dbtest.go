// Package dbtest 为测试提供迁移好的内存 sqlite 数据库。
package dbtest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"issuehub/internal/pkg/config"
	"issuehub/internal/pkg/database"
)

var seq atomic.Int64

// Open 每次调用返回独立的内存库，测试结束时关闭
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &config.DatabaseConfig{
		Driver:   "sqlite",
		Database: fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1)),
		LogLevel: "silent",
	}

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
