package httpserver

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"movieinfo/errs"
	"movieinfo/genre"
	"movieinfo/movie"
)

const (
	successMessage   = "OK"
	defaultErrorCode = "100500"
	dateLayout       = "2006-01-02"
)

type APIResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
	Info    string      `json:"info,omitempty"`
}

type GenreResponse struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type MovieResponse struct {
	ID          int     `json:"id"`
	GenreID     int     `json:"genre_id"`
	GenreName   string  `json:"genre_name,omitempty"`
	Title       string  `json:"title"`
	Director    string  `json:"director"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ReleaseDate string  `json:"release_date"`
}

func newGenreResponse(g genre.Genre) GenreResponse {
	return GenreResponse{ID: g.ID, Title: g.Title}
}

func newGenreResponses(genres []genre.Genre) []GenreResponse {
	out := make([]GenreResponse, len(genres))
	for i, g := range genres {
		out[i] = newGenreResponse(g)
	}
	return out
}

func newMovieResponse(m movie.Movie) MovieResponse {
	return MovieResponse{
		ID:          m.ID,
		GenreID:     m.GenreID,
		GenreName:   m.GenreTitle,
		Title:       m.Title,
		Director:    m.Director,
		Description: m.Description,
		Price:       m.Price,
		ReleaseDate: m.ReleaseDate.Format(dateLayout),
	}
}

func newMovieResponses(movies []movie.Movie) []MovieResponse {
	out := make([]MovieResponse, len(movies))
	for i, m := range movies {
		out[i] = newMovieResponse(m)
	}
	return out
}

func writeSuccess(c echo.Context, status int, result interface{}) error {
	return c.JSON(status, APIResponse{
		Code:    strconv.Itoa(status),
		Message: successMessage,
		Result:  result,
	})
}

func writeList(c echo.Context, status int, data interface{}) error {
	return writeSuccess(c, status, map[string]interface{}{
		"data": data,
	})
}

func writeError(c echo.Context, status int, message, info string, err error) error {
	return c.JSON(status, APIResponse{
		Code:    errorCode(err, status),
		Message: message,
		Info:    info,
	})
}

func errorCode(err error, status int) string {
	if _, ok := err.(*errs.Error); ok {
		switch errs.ErrorCode(err) {
		case errs.EINVALID:
			return "100010"
		case errs.ENOTFOUND:
			return "100404"
		case errs.ECONFLICT:
			return "100409"
		case errs.EUNAUTHORIZED:
			return "100401"
		case errs.ENOTIMPLEMENTED:
			return "100501"
		case errs.EINTERNAL:
			return defaultErrorCode
		}
	}

	if status != 0 {
		return fmt.Sprintf("100%03d", status)
	}
	return defaultErrorCode
}
