package genre

import (
	"strings"
	"unicode/utf8"

	"movieinfo/errs"
)

var (
	ErrGenreNotFound  = errs.Errorf(errs.ENOTFOUND, "genre not found")
	ErrDuplicateTitle = errs.Errorf(errs.ECONFLICT, "genre title already exists")
	ErrGenreInUse     = errs.Errorf(errs.ECONFLICT, "genre still has movies")
	ErrInvalidTitle   = errs.Errorf(errs.EINVALID, "genre: title must be between 2 and 150 characters")
)

type Genre struct {
	ID    int
	Title string
}

func (g Genre) Validate() error {
	title := strings.TrimSpace(g.Title)
	if title == "" {
		return ErrInvalidTitle
	}

	if n := utf8.RuneCountInString(g.Title); n < 2 || n > 150 {
		return ErrInvalidTitle
	}

	return nil
}
