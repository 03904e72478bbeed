// Package app 两个入口（api / admin）共用的启动装配
package app

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"patient-service/internal/core/config"
	"patient-service/internal/core/database"
	"patient-service/internal/core/logger"
)

// NewLogger 按配置构建 zap，并接管标准库 log
func NewLogger(cfg *config.Config) (*zap.Logger, func()) {
	l, cleanup := logger.Build(logger.Options{
		Level:       cfg.Log.Level,
		JSON:        cfg.Log.JSON,
		AddCaller:   true,
		Development: !cfg.Log.JSON,
		Rotate: logger.FileRotate{
			Enable:     cfg.Log.File.Enable,
			Filename:   cfg.Log.File.Filename,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	l = l.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Env))
	undo := logger.RedirectStdLog(l)
	return l, func() {
		undo()
		cleanup()
	}
}

func OpenDB(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	return database.NewGorm(DBOpts(cfg.DB), l)
}

func DBOpts(c config.DB) database.Opts {
	return database.Opts{
		Driver:             c.Driver,
		DSN:                c.DSN,
		Username:           c.Username,
		Password:           c.Password,
		MaxOpenConns:       c.MaxOpenConns,
		MaxIdleConns:       c.MaxIdleConns,
		ConnMaxLifetimeMin: c.ConnMaxLifetimeMin,
		LogLevel:           c.LogLevel,
		SlowThresholdMs:    c.SlowThresholdMs,
	}
}
