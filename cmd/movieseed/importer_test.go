// nolint: funlen
package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movieinfo/genre"
	"movieinfo/movie"
	"movieinfo/pkg/logger"
	"movieinfo/postgres"
	"movieinfo/sqlite"
)

const sampleCSV = `movieId,title,genres
1,Toy Story (1995),Adventure|Animation|Children|Comedy|Fantasy
2,Jumanji (1995),Adventure|Children|Fantasy
3,"American President, The (1995)",Comedy|Drama|Romance
4,Toy Story (1995),Animation
5,Broken Row,Drama
6,Interstellar Lost (2019),(no genres listed)
`

func TestSplitTitleYear(t *testing.T) {
	tests := []struct {
		raw   string
		title string
		year  int
		ok    bool
	}{
		{"Heat (1995)", "Heat", 1995, true},
		{"  Se7en (1995) ", "Se7en", 1995, true},
		{"Babylon 5 (1994) (1998)", "Babylon 5 (1994)", 1998, true},
		{"Hyena Road", "", 0, false},
		{"(2001)", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			title, year, ok := splitTitleYear(tt.raw)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.year, year)
		})
	}
}

func TestFirstGenre(t *testing.T) {
	assert.Equal(t, "Adventure", firstGenre("Adventure|Animation"))
	assert.Equal(t, "Drama", firstGenre(" Drama "))
	assert.Equal(t, "Uncategorized", firstGenre("(no genres listed)"))
	assert.Equal(t, "Uncategorized", firstGenre(""))
}

func TestParseRecord(t *testing.T) {
	cols := columns{title: 1, genres: 2}

	t.Run("should parse a complete row", func(t *testing.T) {
		e, ok := parseRecord([]string{"1", "Heat (1995)", "Action|Crime"}, cols)

		assert.True(t, ok)
		assert.Equal(t, entry{
			Title:       "Heat",
			Genre:       "Action",
			ReleaseDate: time.Date(1995, time.January, 1, 0, 0, 0, 0, time.UTC),
		}, e)
	})

	t.Run("should reject short rows", func(t *testing.T) {
		_, ok := parseRecord([]string{"1", "Heat (1995)"}, cols)

		assert.False(t, ok)
	})
}

func TestImport(t *testing.T) {
	newImporterOnSQLite := func(t *testing.T) (*importer, *movie.Usecase, *genre.Usecase) {
		db, err := sqlite.NewConnection(sqlite.Options{Path: sqlite.Memory})
		require.NoError(t, err)
		t.Cleanup(func() { _ = postgres.Close(db) })

		movies := movie.NewUsecase(postgres.NewMovieRepository(db))
		genres := genre.NewUsecase(postgres.NewGenreRepository(db), movies)
		return newImporter(genres, movies, logger.NOOPLogger()), movies, genres
	}

	t.Run("should add movies and skip duplicates and unparsable rows", func(t *testing.T) {
		// Arrange
		im, movies, genres := newImporterOnSQLite(t)
		ctx := context.Background()

		// Act
		count, err := im.Import(ctx, strings.NewReader(sampleCSV), 0)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 4, count)

		all, err := movies.GetAll(ctx)
		require.NoError(t, err)
		titles := make([]string, len(all))
		for i, m := range all {
			titles[i] = m.Title
		}
		assert.Equal(t, []string{"American President, The", "Interstellar Lost", "Jumanji", "Toy Story"}, titles)

		gs, err := genres.GetAll(ctx)
		require.NoError(t, err)
		names := make([]string, len(gs))
		for i, g := range gs {
			names[i] = g.Title
		}
		// the duplicate Toy Story row still registers its genre
		assert.Equal(t, []string{"Adventure", "Comedy", "Animation", "Uncategorized"}, names)
	})

	t.Run("should stop at the limit", func(t *testing.T) {
		im, _, _ := newImporterOnSQLite(t)

		count, err := im.Import(context.Background(), strings.NewReader(sampleCSV), 2)

		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("should reuse genres that already exist", func(t *testing.T) {
		im, _, genres := newImporterOnSQLite(t)
		ctx := context.Background()
		existing, err := genres.Add(ctx, genre.Genre{Title: "Adventure"})
		require.NoError(t, err)

		id, err := im.genreID(ctx, "Adventure")

		require.NoError(t, err)
		assert.Equal(t, existing.ID, id)
	})

	t.Run("should fail on a header without required columns", func(t *testing.T) {
		im, _, _ := newImporterOnSQLite(t)

		_, err := im.Import(context.Background(), strings.NewReader("movieId,name\n1,Heat\n"), 0)

		assert.EqualError(t, err, "missing required columns in csv header")
	})
}
