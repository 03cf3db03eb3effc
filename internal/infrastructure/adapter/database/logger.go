package database

import (
	"context"
	"errors"
	"strings"
	"time"

	gormlogger "gorm.io/gorm/logger"

	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
)

// GormLogger forwards GORM output to the application logger
type GormLogger struct {
	logger        coreport.Logger
	timeProvider  coreport.TimeProvider
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger creates a GORM logger. level is one of silent, error, warn or info.
func NewGormLogger(logger coreport.Logger, timeProvider coreport.TimeProvider, level string, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{
		logger:        logger.Named("gorm"),
		timeProvider:  timeProvider,
		level:         parseGormLevel(level),
		slowThreshold: slowThreshold,
	}
}

func parseGormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// LogMode returns a copy with the given level
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.logger.Info(msg, map[string]any{"data": data})
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.logger.Warn(msg, map[string]any{"data": data})
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.logger.Error(msg, map[string]any{"data": data})
	}
}

// Trace logs failed statements, slow statements and, at info level, every statement.
// Missing rows are expected by the repositories and are not reported as errors.
func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := l.timeProvider.Since(begin)
	failed := err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound)
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold

	if !(failed && l.level >= gormlogger.Error) && !(slow && l.level >= gormlogger.Warn) && l.level < gormlogger.Info {
		return
	}

	sql, rows := fc()
	fields := map[string]any{
		"elapsed_ms": elapsed.Milliseconds(),
		"rows":       rows,
		"sql":        sql,
	}
	if table := tableName(sql); table != "" {
		fields["table"] = table
	}

	switch {
	case failed && l.level >= gormlogger.Error:
		fields["error"] = err.Error()
		l.logger.Error("SQL error", fields)
	case slow && l.level >= gormlogger.Warn:
		fields["threshold_ms"] = l.slowThreshold.Milliseconds()
		l.logger.Warn("Slow SQL query", fields)
	default:
		l.logger.Debug("SQL query", fields)
	}
}

// tableName extracts the first table after FROM, INTO or UPDATE
func tableName(sql string) string {
	fields := strings.Fields(sql)
	for i, f := range fields {
		switch strings.ToUpper(f) {
		case "FROM", "INTO", "UPDATE":
			if i+1 < len(fields) {
				return strings.Trim(fields[i+1], `"(`)
			}
		}
	}
	return ""
}
