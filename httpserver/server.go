package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"movieinfo/errs"
	"movieinfo/genre"
	"movieinfo/movie"
	"movieinfo/pkg/config"
	"movieinfo/pkg/logger"
	"movieinfo/pkg/sentry"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	// RateLimit is requests per second per client, zero disables limiting
	RateLimit float64

	Logger *logrus.Logger

	GenreService genre.Service
	MovieService movie.Service
}

func Default(cfg *config.Config) *Server {
	s := &Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: []string{"*"},
		RateLimit:    cfg.RateLimit,
		Logger:       logger.NOOPLogger(),
	}
	if cfg.Port > 0 {
		s.Addr = fmt.Sprintf(":%d", cfg.Port)
	}
	if cfg.AllowOrigins != "" {
		s.AllowOrigins = strings.Split(cfg.AllowOrigins, ",")
	}

	s.Router.HideBanner = true
	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = s.handleError
	s.RegisterGlobalMiddlewares()

	api := s.Router.Group("/api")
	s.RegisterGenreRoutes(api.Group("/genres"))
	s.RegisterMovieRoutes(api.Group("/movies"))
	s.RegisterHealthRoutes()
	s.RegisterSwaggerRoutes()
	return s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	if s.RateLimit > 0 {
		s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(s.RateLimit))))
	}

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}

	s.Router.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogRequestID: true,
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.Logger.WithFields(logrus.Fields{
				"request_id": v.RequestID,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
			}).Info("request")
			return nil
		},
	}))
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// handleError maps application errors to HTTP status codes and writes the
// error envelope. Server errors are logged and reported to Sentry.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"request_id": requestID(c),
			"method":     c.Request().Method,
			"uri":        c.Request().RequestURI,
		}).Error("request failed")
		sentry.WithContext(c).Error(err)
	}

	if err := writeError(c, status, message, "", err); err != nil {
		s.Logger.WithError(err).Error("cannot write error response")
	}
}

func statusOf(err error) (int, string) {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code, fmt.Sprint(he.Message)
	}

	switch errs.ErrorCode(err) {
	case errs.EINVALID:
		return http.StatusBadRequest, errs.ErrorMessage(err)
	case errs.ENOTFOUND:
		return http.StatusNotFound, errs.ErrorMessage(err)
	case errs.ECONFLICT:
		return http.StatusConflict, errs.ErrorMessage(err)
	case errs.EUNAUTHORIZED:
		return http.StatusUnauthorized, errs.ErrorMessage(err)
	case errs.ENOTIMPLEMENTED:
		return http.StatusNotImplemented, errs.ErrorMessage(err)
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
