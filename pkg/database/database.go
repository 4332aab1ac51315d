// Package database opens the catalog store selected by configuration.
package database

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"movieinfo/pkg/config"
	"movieinfo/postgres"
	"movieinfo/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	slowQueryThreshold = 200 * time.Millisecond
)

// Open connects to the configured driver. sqlite stores get their schema
// from the models; postgres is migrated by cmd/migrate.
func Open(cfg *config.Config, log *logrus.Logger) (*gorm.DB, error) {
	gormLog := NewGormLogger(log)

	switch cfg.DB.Driver {
	case "", DriverPostgres:
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     strconv.Itoa(cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
			Logger:   gormLog,
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := tunePool(db, cfg); err != nil {
			return nil, err
		}
		return db, nil

	case DriverSQLite:
		db, err := sqlite.NewConnection(sqlite.Options{
			Path:   cfg.DB.SQLitePath,
			Logger: gormLog,
		})
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
}

func tunePool(db *gorm.DB, cfg *config.Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	return nil
}

// NewGormLogger writes gorm warnings and slow queries to log.
func NewGormLogger(log *logrus.Logger) gormlogger.Interface {
	return gormlogger.New(log, gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
