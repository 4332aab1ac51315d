package httpserver

import (
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"movieinfo/errs"
	"movieinfo/genre"
	"movieinfo/movie"
)

var (
	errInvalidID      = errs.Errorf(errs.EINVALID, "id must be a positive integer")
	errIDMismatch     = errs.Errorf(errs.EINVALID, "id in path does not match id in body")
	errInvalidRelease = errs.Errorf(errs.EINVALID, "release_date must be formatted as YYYY-MM-DD")
)

type GenreRequest struct {
	ID    int    `json:"id" validate:"gte=0"`
	Title string `json:"title" validate:"required,notblank,min=2,max=150"`
}

func (r GenreRequest) ToGenre() genre.Genre {
	return genre.Genre{
		ID:    r.ID,
		Title: r.Title,
	}
}

type MovieRequest struct {
	ID          int     `json:"id" validate:"gte=0"`
	GenreID     int     `json:"genre_id" validate:"required,gt=0"`
	Title       string  `json:"title" validate:"required,notblank,min=2,max=150"`
	Director    string  `json:"director" validate:"required,notblank,min=2,max=150"`
	Description string  `json:"description" validate:"max=350"`
	Price       float64 `json:"price"`
	ReleaseDate string  `json:"release_date" validate:"required"`
}

func (r MovieRequest) ToMovie() (movie.Movie, error) {
	released, err := time.Parse(dateLayout, r.ReleaseDate)
	if err != nil {
		return movie.Movie{}, errInvalidRelease
	}

	return movie.Movie{
		ID:          r.ID,
		GenreID:     r.GenreID,
		Title:       r.Title,
		Director:    r.Director,
		Description: r.Description,
		Price:       r.Price,
		ReleaseDate: released,
	}, nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

func matchPathID(pathID, bodyID int) error {
	if pathID != bodyID {
		return errIDMismatch
	}
	return nil
}

// pathText returns a decoded path parameter. Echo routes on the raw path
// when the request has one, and its params then keep their escapes.
func pathText(c echo.Context, name string) string {
	raw := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return raw
	}
	if text, err := url.PathUnescape(raw); err == nil {
		return text
	}
	return raw
}
