package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"movieinfo/genre"
	"movieinfo/httpserver"
	"movieinfo/movie"
	"movieinfo/pkg/config"
	"movieinfo/pkg/database"
	"movieinfo/pkg/logger"
	"movieinfo/pkg/sentry"
	"movieinfo/postgres"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("cannot load config")
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logrus.WithError(err).Fatal("cannot init logger")
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		log.WithError(err).Fatal("cannot init sentry")
	}
	defer sentrygo.Flush(sentry.FlushTime)

	db, err := database.Open(cfg, log)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.DB.Driver).Fatal("cannot open database")
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			log.WithError(err).Error("cannot close database")
		}
	}()

	timeout := postgres.WithQueryTimeout(cfg.DB.QueryTimeout)
	movies := movie.NewUsecase(postgres.NewMovieRepository(db, timeout))
	genres := genre.NewUsecase(postgres.NewGenreRepository(db, timeout), movies)

	server := httpserver.Default(cfg)
	server.Logger = log
	server.GenreService = genres
	server.MovieService = movies

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("addr", server.Addr).Info("server started")
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server stopped with error")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("cannot shutdown server")
	}
	log.Info("server stopped")
}
