package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"movieinfo/errs"
)

var errNoMovies = errs.Errorf(errs.ENOTFOUND, "no movies found")

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("", s.handleListMovies)
	g.POST("", s.handleAddMovie)
	g.GET("/genre/:genreId", s.handleListMoviesByGenre)
	g.GET("/search/:title", s.handleSearchMovies)
	g.GET("/search-with-genre/:text", s.handleSearchMoviesWithGenre)
	g.GET("/:id", s.handleGetMovie)
	g.PUT("/:id", s.handleUpdateMovie)
	g.DELETE("/:id", s.handleRemoveMovie)
}

// handleListMovies godoc
// @Summary List movies
// @Description Every movie with its genre, ordered by title.
// @Tags movies
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	movies, err := s.MovieService.GetAll(c.Request().Context())
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, newMovieResponses(movies))
}

// handleGetMovie godoc
// @Summary Get a movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	m, err := s.MovieService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, newMovieResponse(m))
}

// handleListMoviesByGenre godoc
// @Summary List movies of a genre
// @Tags movies
// @Produce json
// @Param genreId path int true "Genre ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/genre/{genreId} [get]
func (s *Server) handleListMoviesByGenre(c echo.Context) error {
	genreID, err := pathID(c, "genreId")
	if err != nil {
		return err
	}

	movies, err := s.MovieService.GetByGenre(c.Request().Context(), genreID)
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		return errNoMovies
	}

	return writeList(c, http.StatusOK, newMovieResponses(movies))
}

// handleAddMovie godoc
// @Summary Add a movie
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body MovieRequest true "Movie"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/movies [post]
func (s *Server) handleAddMovie(c echo.Context) error {
	var req MovieRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	m, err := req.ToMovie()
	if err != nil {
		return err
	}

	m, err = s.MovieService.Add(c.Request().Context(), m)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, newMovieResponse(m))
}

// handleUpdateMovie godoc
// @Summary Update a movie
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param movie body MovieRequest true "Movie"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/movies/{id} [put]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req MovieRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := matchPathID(id, req.ID); err != nil {
		return err
	}

	m, err := req.ToMovie()
	if err != nil {
		return err
	}

	m, err = s.MovieService.Update(c.Request().Context(), m)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, newMovieResponse(m))
}

// handleRemoveMovie godoc
// @Summary Delete a movie
// @Tags movies
// @Param id path int true "Movie ID"
// @Success 204
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [delete]
func (s *Server) handleRemoveMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	m, err := s.MovieService.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.MovieService.Remove(ctx, m); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// handleSearchMovies godoc
// @Summary Search movies by title
// @Tags movies
// @Produce json
// @Param title path string true "Part of the title"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/search/{title} [get]
func (s *Server) handleSearchMovies(c echo.Context) error {
	movies, err := s.MovieService.Search(c.Request().Context(), pathText(c, "title"))
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		return errNoMovies
	}

	return writeList(c, http.StatusOK, newMovieResponses(movies))
}

// handleSearchMoviesWithGenre godoc
// @Summary Search movies by title, director, description or genre
// @Tags movies
// @Produce json
// @Param text path string true "Text to look for"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/search-with-genre/{text} [get]
func (s *Server) handleSearchMoviesWithGenre(c echo.Context) error {
	movies, err := s.MovieService.SearchWithGenre(c.Request().Context(), pathText(c, "text"))
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		return errNoMovies
	}

	return writeList(c, http.StatusOK, newMovieResponses(movies))
}
