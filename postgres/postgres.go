package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Options struct {
	DBName   string
	DBUser   string
	Password string
	Host     string
	Port     string
	SSLMode  bool
	Logger   gormlogger.Interface
}

// DSN renders the options as a libpq keyword/value connection string.
func (opts Options) DSN() string {
	sslmode := "disable"
	if opts.SSLMode {
		sslmode = "require"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		opts.Host, opts.Port, opts.DBUser, opts.Password, opts.DBName, sslmode,
	)
}

func NewConnection(opts Options) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(opts.DSN()), &gorm.Config{Logger: opts.Logger})
}

// AutoMigrate creates the catalog tables from the models. Used for stores
// that are not managed by the SQL migrations in migrations/.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&GenreModel{}, &MovieModel{})
}

// Close releases the connection pool. Calling it again is a no-op.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
