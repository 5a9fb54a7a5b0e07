package configs

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"library_backend/internals/logging"
)

// =======================
// GORM LOGGER (zerolog)
// =======================

type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(slow time.Duration) gormLogger.Interface {
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	return &GormLogger{SlowThreshold: slow, LogLevel: gormLogger.Warn}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		logging.Ctx(ctx).Info().Msgf("[GORM] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		logging.Ctx(ctx).Warn().Msgf("[GORM] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		logging.Ctx(ctx).Error().Msgf("[GORM] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	lg := logging.Ctx(ctx)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		lg.Error().Err(err).Str("caller", utils.FileWithLineNum()).Dur("elapsed", elapsed).
			Int64("rows", rows).Str("sql", sql).Msg("[GORM] query failed")
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		lg.Warn().Str("caller", utils.FileWithLineNum()).Dur("elapsed", elapsed).
			Int64("rows", rows).Str("sql", sql).Msg("[GORM] slow query")
	case l.LogLevel >= gormLogger.Info:
		lg.Debug().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("[GORM] query")
	}
}
