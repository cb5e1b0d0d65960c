package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormAdapter routes gorm's internal logging through the global zap logger.
// Record-not-found results are expected lookups and are never reported.
type GormAdapter struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormAdapter creates an adapter that reports errors and queries slower
// than slowThreshold.
func NewGormAdapter(slowThreshold time.Duration) *GormAdapter {
	return &GormAdapter{
		level:         gormlogger.Warn,
		slowThreshold: slowThreshold,
	}
}

func (g *GormAdapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *GormAdapter) Info(_ context.Context, format string, args ...interface{}) {
	if g.level >= gormlogger.Info && Sugar != nil {
		Sugar.WithOptions(zap.AddCallerSkip(2)).Infof(format, args...)
	}
}

func (g *GormAdapter) Warn(_ context.Context, format string, args ...interface{}) {
	if g.level >= gormlogger.Warn && Sugar != nil {
		Sugar.WithOptions(zap.AddCallerSkip(2)).Warnf(format, args...)
	}
}

func (g *GormAdapter) Error(_ context.Context, format string, args ...interface{}) {
	if g.level >= gormlogger.Error && Sugar != nil {
		Sugar.WithOptions(zap.AddCallerSkip(2)).Errorf(format, args...)
	}
}

func (g *GormAdapter) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent || Logger == nil {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && g.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		sql, rows := fc()
		Logger.Error("sqlite query failed",
			zap.Error(err), zap.Duration("elapsed", elapsed), zap.Int64("rows", rows), zap.String("sql", sql))
	case g.slowThreshold > 0 && elapsed > g.slowThreshold && g.level >= gormlogger.Warn:
		sql, rows := fc()
		Logger.Warn("slow sqlite query",
			zap.Duration("elapsed", elapsed), zap.Int64("rows", rows), zap.String("sql", sql))
	case g.level >= gormlogger.Info:
		sql, rows := fc()
		Logger.Debug("sqlite query",
			zap.Duration("elapsed", elapsed), zap.Int64("rows", rows), zap.String("sql", sql))
	}
}
