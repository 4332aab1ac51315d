package main

import (
	"database/sql"
	"flag"
	"strconv"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"

	"movieinfo/pkg/config"
	"movieinfo/pkg/logger"
	"movieinfo/postgres"
)

func main() {
	var (
		dir   string
		down  bool
		limit int
	)
	flag.StringVar(&dir, "dir", "migrations", "Directory holding the migration files")
	flag.BoolVar(&down, "down", false, "Roll migrations back instead of applying them")
	flag.IntVar(&limit, "max", 0, "Maximum number of migrations to run (0 = all)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("cannot load config")
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logrus.WithError(err).Fatal("cannot init logger")
	}

	opts := postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	}

	db, err := sql.Open("postgres", opts.DSN())
	if err != nil {
		log.WithError(err).Fatal("cannot connect to db")
	}
	defer db.Close()

	direction := migrate.Up
	if down {
		direction = migrate.Down
	}

	total, err := migrate.ExecMax(db, "postgres", &migrate.FileMigrationSource{Dir: dir}, direction, limit)
	if err != nil {
		log.WithError(err).Fatal("cannot execute migration")
	}

	log.WithFields(logrus.Fields{"total": total, "down": down}).Info("applied migrations")
}
