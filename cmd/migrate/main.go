// Command migrate creates or updates the GreenCity tables in MySQL.
//
//	go run ./cmd/migrate -config config/config.yaml -timeout 1m
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"greencity/config"
	"greencity/infrastructure/persistence/mysql"
	"greencity/pkg/logger"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall migration deadline")
	dryRun := flag.Bool("dry-run", false, "print the target database and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Database.Type != "mysql" {
		logger.Warn("Skipping migration, database is not mysql", zap.String("type", cfg.Database.Type))
		return
	}

	connector := mysql.NewConnector(cfg.Database)
	if *dryRun {
		fmt.Println(redact(connector.DSN()))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := migrate(ctx, connector); err != nil {
		logger.Error("Migration failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func migrate(ctx context.Context, connector *mysql.Connector) error {
	db, err := connector.Connect(ctx)
	if err != nil {
		return err
	}
	if conn, err := db.DB(); err == nil {
		defer conn.Close()
	}
	return mysql.AutoMigrate(db.WithContext(ctx))
}

func redact(dsn string) string {
	parsed, err := mysqlDriver.ParseDSN(dsn)
	if err != nil {
		return "<invalid dsn>"
	}
	if parsed.Passwd != "" {
		parsed.Passwd = "****"
	}
	return parsed.FormatDSN()
}
