package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vidtube/internal/pkg/config"
	"vidtube/pkg/logger"
	"vidtube/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DSN 拼接 postgres 连接串
func DSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode, cfg.TimeZone)
}

// InitDatabase 初始化数据库连接
func InitDatabase(cfg config.DatabaseConfig, env string, collector *metrics.MetricsCollector) (*gorm.DB, error) {
	level := gormlogger.Info
	if env == "prod" {
		level = gormlogger.Warn
	}

	// 配置 GORM
	gormConfig := &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(level),
		PrepareStmt:            true, // 预编译 SQL 缓存
		SkipDefaultTransaction: true, // 单语句写入不需要额外事务
		TranslateError:         true, // 唯一约束冲突转换为 gorm.ErrDuplicatedKey
	}

	db, err := gorm.Open(postgres.Open(DSN(cfg)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// 获取底层 SQL DB 对象以配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	configureConnectionPool(sqlDB)

	if err := RegisterMetrics(db, collector); err != nil {
		return nil, err
	}

	// 表结构由 cmd/migrate 管理，这里不做 AutoMigrate
	return db, nil
}

// configureConnectionPool 配置数据库连接池
func configureConnectionPool(sqlDB *sql.DB) {
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(time.Minute * 30)

	logger.Log.Info("database connection pool configured", zap.Int("max_open", 100), zap.Int("max_idle", 10))
}

const startedAtKey = "metrics:started_at"

// RegisterMetrics 通过 gorm 回调记录每条语句的耗时
func RegisterMetrics(db *gorm.DB, collector *metrics.MetricsCollector) error {
	if collector == nil {
		return nil
	}
	before := func(tx *gorm.DB) {
		tx.InstanceSet(startedAtKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			v, ok := tx.InstanceGet(startedAtKey)
			if !ok {
				return
			}
			started, _ := v.(time.Time)
			collector.RecordDBQuery(operation, tx.Statement.Table, time.Since(started), tx.Error == nil || errors.Is(tx.Error, gorm.ErrRecordNotFound))
		}
	}

	cb := db.Callback()
	steps := []struct {
		name string
		err  error
	}{
		{"create", cb.Create().Before("gorm:create").Register("metrics:before_create", before)},
		{"create", cb.Create().After("gorm:create").Register("metrics:after_create", after("create"))},
		{"query", cb.Query().Before("gorm:query").Register("metrics:before_query", before)},
		{"query", cb.Query().After("gorm:query").Register("metrics:after_query", after("query"))},
		{"update", cb.Update().Before("gorm:update").Register("metrics:before_update", before)},
		{"update", cb.Update().After("gorm:update").Register("metrics:after_update", after("update"))},
		{"delete", cb.Delete().Before("gorm:delete").Register("metrics:before_delete", before)},
		{"delete", cb.Delete().After("gorm:delete").Register("metrics:after_delete", after("delete"))},
		{"row", cb.Row().Before("gorm:row").Register("metrics:before_row", before)},
		{"row", cb.Row().After("gorm:row").Register("metrics:after_row", after("row"))},
	}
	for _, s := range steps {
		if s.err != nil {
			return fmt.Errorf("register %s metrics callback: %w", s.name, s.err)
		}
	}
	return nil
}
