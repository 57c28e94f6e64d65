package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQuery = 200 * time.Millisecond

// MySQL constraint violations. They surface to clients as NOT_SAVED or CONFLICT,
// so the SQL log records them as warnings.
const (
	erDupEntry        = 1062
	erNoReferencedRow = 1452
	erRowIsReferenced = 1451
)

// GormLogger routes GORM output through the global zap logger, tagged with the request id.
type GormLogger struct {
	level     gormlogger.LogLevel
	slowQuery time.Duration
}

func NewGormLoggerAdapter(level gormlogger.LogLevel) *GormLogger {
	return &GormLogger{level: level, slowQuery: defaultSlowQuery}
}

// WithSlowQuery 设置慢查询阈值，0 表示不记录慢查询
func (l *GormLogger) WithSlowQuery(threshold time.Duration) *GormLogger {
	return &GormLogger{level: l.level, slowQuery: threshold}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &GormLogger{level: level, slowQuery: l.slowQuery}
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		FromContext(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		FromContext(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		FromContext(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	log := FromContext(ctx)
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
	}

	switch {
	case err != nil && errors.Is(err, gormlogger.ErrRecordNotFound):
		// misses become 404s
	case err != nil && isConstraintViolation(err):
		if l.level >= gormlogger.Warn {
			log.Warn("Constraint violation", append(fields, zap.Error(err))...)
		}
	case err != nil:
		if l.level >= gormlogger.Error {
			log.Error("Database operation failed", append(fields, zap.Error(err))...)
		}
	case l.slowQuery > 0 && elapsed > l.slowQuery:
		if l.level >= gormlogger.Warn {
			log.Warn("Slow SQL query", append(fields, zap.Duration("threshold", l.slowQuery))...)
		}
	case l.level >= gormlogger.Info:
		log.Debug("SQL query executed", fields...)
	}
}

func isConstraintViolation(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	switch mysqlErr.Number {
	case erDupEntry, erNoReferencedRow, erRowIsReferenced:
		return true
	}
	return false
}
