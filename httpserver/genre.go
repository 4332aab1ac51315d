package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"movieinfo/errs"
)

var errNoGenres = errs.Errorf(errs.ENOTFOUND, "no genres found")

func (s *Server) RegisterGenreRoutes(g *echo.Group) {
	g.GET("", s.handleListGenres)
	g.POST("", s.handleAddGenre)
	g.GET("/search/:title", s.handleSearchGenres)
	g.GET("/:id", s.handleGetGenre)
	g.PUT("/:id", s.handleUpdateGenre)
	g.DELETE("/:id", s.handleRemoveGenre)
}

// handleListGenres godoc
// @Summary List genres
// @Tags genres
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/genres [get]
func (s *Server) handleListGenres(c echo.Context) error {
	genres, err := s.GenreService.GetAll(c.Request().Context())
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, newGenreResponses(genres))
}

// handleGetGenre godoc
// @Summary Get a genre
// @Tags genres
// @Produce json
// @Param id path int true "Genre ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/genres/{id} [get]
func (s *Server) handleGetGenre(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	g, err := s.GenreService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, newGenreResponse(g))
}

// handleAddGenre godoc
// @Summary Add a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param genre body GenreRequest true "Genre"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/genres [post]
func (s *Server) handleAddGenre(c echo.Context) error {
	var req GenreRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	g, err := s.GenreService.Add(c.Request().Context(), req.ToGenre())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusCreated, newGenreResponse(g))
}

// handleUpdateGenre godoc
// @Summary Update a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param id path int true "Genre ID"
// @Param genre body GenreRequest true "Genre"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/genres/{id} [put]
func (s *Server) handleUpdateGenre(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req GenreRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := matchPathID(id, req.ID); err != nil {
		return err
	}

	g, err := s.GenreService.Update(c.Request().Context(), req.ToGenre())
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, newGenreResponse(g))
}

// handleRemoveGenre godoc
// @Summary Delete a genre
// @Description Fails with 409 while movies reference the genre.
// @Tags genres
// @Param id path int true "Genre ID"
// @Success 204
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/genres/{id} [delete]
func (s *Server) handleRemoveGenre(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	g, err := s.GenreService.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.GenreService.Remove(ctx, g); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// handleSearchGenres godoc
// @Summary Search genres by title
// @Tags genres
// @Produce json
// @Param title path string true "Part of the title"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/genres/search/{title} [get]
func (s *Server) handleSearchGenres(c echo.Context) error {
	genres, err := s.GenreService.Search(c.Request().Context(), pathText(c, "title"))
	if err != nil {
		return err
	}
	if len(genres) == 0 {
		return errNoGenres
	}

	return writeList(c, http.StatusOK, newGenreResponses(genres))
}
