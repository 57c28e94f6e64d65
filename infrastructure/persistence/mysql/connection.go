package mysql

import (
	"context"
	"fmt"
	"time"

	"greencity/config"
	"greencity/pkg/logger"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 10
	defaultConnMaxLifetime = 10 * time.Minute
	connMaxIdleTime        = 5 * time.Minute
	connectTimeout         = 5 * time.Second
	ioTimeout              = 10 * time.Second
)

var gormLogLevels = map[string]gormlogger.LogLevel{
	"debug":  gormlogger.Info,
	"info":   gormlogger.Info,
	"warn":   gormlogger.Warn,
	"error":  gormlogger.Error,
	"silent": gormlogger.Silent,
}

// Connector opens the GreenCity schema with pool limits taken from the database config.
type Connector struct {
	cfg config.DatabaseConfig
}

func NewConnector(cfg config.DatabaseConfig) *Connector {
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = defaultMaxOpenConns
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = defaultMaxIdleConns
	}
	if cfg.MaxIdleConns > cfg.MaxOpenConns {
		cfg.MaxIdleConns = cfg.MaxOpenConns
	}
	if cfg.ConnMaxLifetime <= 0 {
		cfg.ConnMaxLifetime = defaultConnMaxLifetime
	}
	return &Connector{cfg: cfg}
}

// DSN times are parsed as UTC; text columns use utf8mb4 so Ukrainian content round-trips.
func (c *Connector) DSN() string {
	dc := mysqlDriver.NewConfig()
	dc.User = c.cfg.Username
	dc.Passwd = c.cfg.Password
	dc.Net = "tcp"
	dc.Addr = c.cfg.Host + ":" + c.cfg.Port
	dc.DBName = c.cfg.Database
	dc.ParseTime = true
	dc.Loc = time.UTC
	dc.Collation = "utf8mb4_unicode_ci"
	dc.Timeout = connectTimeout
	dc.ReadTimeout = ioTimeout
	dc.WriteTimeout = ioTimeout
	return dc.FormatDSN()
}

// Connect opens the pool and pings it so a bad DSN fails at startup.
func (c *Connector) Connect(ctx context.Context) (*gorm.DB, error) {
	level, ok := gormLogLevels[c.cfg.LogLevel]
	if !ok {
		level = gormlogger.Warn
	}

	db, err := gorm.Open(mysql.Open(c.DSN()), &gorm.Config{
		Logger: logger.NewGormLoggerAdapter(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(c.cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(c.cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(c.cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connected",
		zap.String("addr", c.cfg.Host+":"+c.cfg.Port),
		zap.String("database", c.cfg.Database),
		zap.Int("max_open_conns", c.cfg.MaxOpenConns),
		zap.Int("max_idle_conns", c.cfg.MaxIdleConns),
	)
	return db, nil
}
