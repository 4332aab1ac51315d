package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"movieinfo/movie"
	"movieinfo/postgres"
	"movieinfo/query"
)

func TestMovieRepository(t *testing.T) {
	// Arrange - Setup shared database container and connection
	db := CreateConnection(t, "movie_test", "testuser", "testpass")
	MigrateTestDatabase(t, db, "../migrations")
	ctx := context.Background()

	t.Run("add and read back with genre title", func(t *testing.T) {
		// Arrange
		cleanupCatalog(t, db)
		repo := postgres.NewMovieRepository(db, postgres.WithQueryTimeout(5*time.Second))
		drama := mustAddGenre(t, db, "Drama")
		m := sampleMovie(drama.ID, "Alpha")

		// Act
		added, err := repo.Add(ctx, m)
		require.NoError(t, err)
		got, err := repo.GetByID(ctx, added.ID)

		// Assert
		require.NoError(t, err)
		m.ID = added.ID
		m.GenreTitle = "Drama"
		assert.Equal(t, m, got)
	})

	t.Run("get all orders by title", func(t *testing.T) {
		// Arrange
		cleanupCatalog(t, db)
		repo := postgres.NewMovieRepository(db)
		g := mustAddGenre(t, db, "Drama")
		for _, title := range []string{"Gamma", "Alpha", "Beta"} {
			mustAddMovie(t, db, g.ID, title)
		}

		// Act
		movies, err := repo.GetAll(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, titlesOf(movies))
	})

	t.Run("empty description is stored as null", func(t *testing.T) {
		// Arrange
		cleanupCatalog(t, db)
		repo := postgres.NewMovieRepository(db)
		g := mustAddGenre(t, db, "Drama")
		m := sampleMovie(g.ID, "Quiet")
		m.Description = ""

		// Act
		added, err := repo.Add(ctx, m)

		// Assert
		require.NoError(t, err)
		var model postgres.MovieModel
		require.NoError(t, db.First(&model, added.ID).Error)
		assert.Nil(t, model.Description)
	})

	t.Run("get by genre", func(t *testing.T) {
		// Arrange
		cleanupCatalog(t, db)
		repo := postgres.NewMovieRepository(db)
		drama := mustAddGenre(t, db, "Drama")
		comedy := mustAddGenre(t, db, "Comedy")
		mustAddMovie(t, db, drama.ID, "Alpha")
		mustAddMovie(t, db, comedy.ID, "Beta")

		// Act
		movies, err := repo.GetByGenre(ctx, drama.ID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha"}, titlesOf(movies))
		assert.Equal(t, "Drama", movies[0].GenreTitle)
	})

	t.Run("search with genre matches any text column", func(t *testing.T) {
		// Arrange
		cleanupCatalog(t, db)
		repo := postgres.NewMovieRepository(db)
		drama := mustAddGenre(t, db, "Drama")
		comedy := mustAddGenre(t, db, "Comedy")
		mustAddMovie(t, db, drama.ID, "Alpha")
		noDescription := sampleMovie(comedy.ID, "Gamma")
		noDescription.Description = ""
		_, err := repo.Add(ctx, noDescription)
		require.NoError(t, err)

		// Act
		byGenre, err := repo.SearchWithGenre(ctx, "Drama")
		require.NoError(t, err)
		byTitle, err := repo.SearchWithGenre(ctx, "amm")
		require.NoError(t, err)
		byNothing, err := repo.SearchWithGenre(ctx, "zzz")
		require.NoError(t, err)

		// Assert
		assert.Equal(t, []string{"Alpha"}, titlesOf(byGenre))
		assert.Equal(t, []string{"Gamma"}, titlesOf(byTitle))
		assert.Empty(t, byNothing)
	})

	t.Run("update and remove", func(t *testing.T) {
		// Arrange
		cleanupCatalog(t, db)
		repo := postgres.NewMovieRepository(db)
		g := mustAddGenre(t, db, "Drama")
		m := mustAddMovie(t, db, g.ID, "Alpha")
		m.Title = "Alpha Returns"
		m.Price = 12.5

		// Act
		require.NoError(t, repo.Update(ctx, m))
		updated, err := repo.GetByID(ctx, m.ID)
		require.NoError(t, err)
		require.NoError(t, repo.Remove(ctx, m))

		// Assert
		assert.Equal(t, "Alpha Returns", updated.Title)
		assert.Equal(t, 12.5, updated.Price)
		_, err = repo.GetByID(ctx, m.ID)
		assert.ErrorIs(t, err, movie.ErrMovieNotFound)
		assert.ErrorIs(t, repo.Remove(ctx, m), movie.ErrMovieNotFound)
	})

	t.Run("title uniqueness queries", func(t *testing.T) {
		// Arrange
		cleanupCatalog(t, db)
		repo := postgres.NewMovieRepository(db)
		g := mustAddGenre(t, db, "Drama")
		alpha := mustAddMovie(t, db, g.ID, "Alpha")

		// Act
		same, err := repo.Search(ctx, query.ByTitle("Alpha"))
		require.NoError(t, err)
		other, err := repo.Search(ctx, query.ByTitleExcluding("Alpha", alpha.ID))
		require.NoError(t, err)

		// Assert
		assert.Len(t, same, 1)
		assert.Empty(t, other)
	})
}

func sampleMovie(genreID int, title string) movie.Movie {
	return movie.Movie{
		GenreID:     genreID,
		Title:       title,
		Director:    "Jane Doe",
		Description: "About " + title,
		Price:       9.99,
		ReleaseDate: time.Date(1999, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
}

func mustAddMovie(t testing.TB, db *gorm.DB, genreID int, title string) movie.Movie {
	t.Helper()
	m := sampleMovie(genreID, title)
	description := m.Description
	model := postgres.MovieModel{
		GenreID:     m.GenreID,
		Title:       m.Title,
		Director:    m.Director,
		Description: &description,
		Price:       m.Price,
		ReleaseDate: m.ReleaseDate,
	}
	require.NoError(t, db.Omit("Genre").Create(&model).Error)
	m.ID = model.ID
	return m
}

func titlesOf(movies []movie.Movie) []string {
	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}
	return titles
}
