package movie

import (
	"strings"
	"time"
	"unicode/utf8"

	"movieinfo/errs"
)

const (
	minTextLength        = 2
	maxTextLength        = 150
	maxDescriptionLength = 350
)

var (
	ErrMovieNotFound  = errs.Errorf(errs.ENOTFOUND, "movie not found")
	ErrDuplicateTitle = errs.Errorf(errs.ECONFLICT, "movie title already exists")

	ErrInvalidTitle       = errs.Errorf(errs.EINVALID, "movie: title must be between 2 and 150 characters")
	ErrInvalidDirector    = errs.Errorf(errs.EINVALID, "movie: director must be between 2 and 150 characters")
	ErrInvalidDescription = errs.Errorf(errs.EINVALID, "movie: description must be at most 350 characters")
	ErrInvalidGenre       = errs.Errorf(errs.EINVALID, "movie: genre is required")
)

type Movie struct {
	ID          int
	GenreID     int
	GenreTitle  string
	Title       string
	Director    string
	Description string
	Price       float64
	ReleaseDate time.Time
}

func (m Movie) Validate() error {
	if !validText(m.Title) {
		return ErrInvalidTitle
	}

	if !validText(m.Director) {
		return ErrInvalidDirector
	}

	if utf8.RuneCountInString(m.Description) > maxDescriptionLength {
		return ErrInvalidDescription
	}

	if m.GenreID <= 0 {
		return ErrInvalidGenre
	}

	return nil
}

func validText(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	n := utf8.RuneCountInString(s)
	return n >= minTextLength && n <= maxTextLength
}
