package logger

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 500 * time.Millisecond

// Gorm adapts a logrus logger to gorm's logger interface.
// SQL text and bound parameters are never logged.
func Gorm(log logrus.FieldLogger) gormlogger.Interface {
	return &gormLogger{
		log:   log.WithField("component", "db"),
		level: gormlogger.Warn,
	}
}

type gormLogger struct {
	log   *logrus.Entry
	level gormlogger.LogLevel
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.WithField("data", data).Info(msg)
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.WithField("data", data).Warn(msg)
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.WithField("data", data).Error(msg)
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		_, rows := fc()
		l.log.WithFields(logrus.Fields{
			"elapsed": elapsed.String(),
			"rows":    rows,
			"error":   err.Error(),
		}).Error("query failed")
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		_, rows := fc()
		l.log.WithFields(logrus.Fields{
			"elapsed": elapsed.String(),
			"rows":    rows,
		}).Warn("slow query")
	}
}
