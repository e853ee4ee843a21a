package db

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type gormLogger struct {
	level logger.LogLevel
}

// NewLogger adapts the process log level to a gorm logger backed by logrus.
// SQL statements are only traced at the trace level.
func NewLogger(logLevel string) logger.Interface {
	level := logger.Warn
	switch logLevel {
	case "trace":
		level = logger.Info
	case "error":
		level = logger.Error
	}
	return &gormLogger{level: level}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		logrus.Infof(msg, args...)
	}
}

func (l *gormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		logrus.Warnf(msg, args...)
	}
}

func (l *gormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		logrus.Errorf(msg, args...)
	}
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error {
		sql, rows := fc()
		logrus.WithFields(logrus.Fields{
			"rows":     rows,
			"duration": time.Since(begin),
		}).Errorf("%s: %v", sql, err)
		return
	}

	if l.level >= logger.Info {
		sql, rows := fc()
		logrus.WithFields(logrus.Fields{
			"rows":     rows,
			"duration": time.Since(begin),
		}).Trace(sql)
	}
}
