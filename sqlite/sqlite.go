package sqlite

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"movieinfo/postgres"
)

const Memory = ":memory:"

type Options struct {
	// Path is a database file, or Memory for a private in-memory store.
	Path   string
	Logger gormlogger.Interface
}

// DSN enables foreign key enforcement on every connection.
func (opts Options) DSN() string {
	path := opts.Path
	if path == "" {
		path = Memory
	}
	return path + "?_foreign_keys=on"
}

// NewConnection opens the store and creates the catalog schema.
func NewConnection(opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(opts.DSN()), &gorm.Config{Logger: opts.Logger})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer, and every in-memory connection is its own
	// database.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := postgres.AutoMigrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return db, nil
}
