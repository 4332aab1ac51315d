package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"movieinfo/genre"
	"movieinfo/movie"
	"movieinfo/pkg/config"
	"movieinfo/pkg/database"
	"movieinfo/pkg/logger"
	"movieinfo/postgres"
)

const defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"

func main() {
	var (
		csvPath string
		zipURL  string
		limit   int
	)

	flag.StringVar(&csvPath, "csv", "", "Path to movies.csv (skip download)")
	flag.StringVar(&zipURL, "url", defaultMovieLensURL, "MovieLens zip URL")
	flag.IntVar(&limit, "limit", 0, "Limit number of movies to add (0 = all)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("load config failed")
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logrus.WithError(err).Fatal("cannot init logger")
	}

	if err := run(cfg, log, csvPath, zipURL, limit); err != nil {
		log.WithError(err).Error("import failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logrus.Logger, csvPath, zipURL string, limit int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	defer postgres.Close(db) // nolint: errcheck

	if csvPath == "" {
		path, cleanup, err := downloadAndExtract(ctx, zipURL)
		if err != nil {
			return err
		}
		defer cleanup()
		csvPath = path
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer file.Close()

	timeout := postgres.WithQueryTimeout(cfg.DB.QueryTimeout)
	movies := movie.NewUsecase(postgres.NewMovieRepository(db, timeout))
	genres := genre.NewUsecase(postgres.NewGenreRepository(db, timeout), movies)

	count, err := newImporter(genres, movies, log).Import(ctx, file, limit)
	log.WithFields(logrus.Fields{"movies": count, "csv": csvPath}).Info("import finished")
	return err
}
