// nolint: funlen
package movie_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"movieinfo/movie"
	"movieinfo/query"
)

type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) GetAll(ctx context.Context) ([]movie.Movie, error) {
	args := m.Called(ctx)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetByID(ctx context.Context, id int) (movie.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) GetByGenre(ctx context.Context, genreID int) ([]movie.Movie, error) {
	args := m.Called(ctx, genreID)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) Add(ctx context.Context, mv movie.Movie) (movie.Movie, error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) Update(ctx context.Context, mv movie.Movie) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}

func (m *MockMovieRepository) Remove(ctx context.Context, mv movie.Movie) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}

func (m *MockMovieRepository) Search(ctx context.Context, q query.Query) ([]movie.Movie, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func (m *MockMovieRepository) SearchWithGenre(ctx context.Context, text string) ([]movie.Movie, error) {
	args := m.Called(ctx, text)
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func newMovie() movie.Movie {
	return movie.Movie{
		GenreID:     1,
		Title:       "Alpha",
		Director:    "Jane Doe",
		Description: "A movie about the first letter",
		Price:       10,
		ReleaseDate: time.Date(2001, time.May, 4, 0, 0, 0, 0, time.UTC),
	}
}

func TestAddMovie(t *testing.T) {
	t.Run("should add movie when title is free", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		m := newMovie()
		persisted := m
		persisted.ID = 7
		r.On("Search", mock.Anything, query.ByTitle("Alpha")).Return([]movie.Movie{}, nil).Once()
		r.On("Add", mock.Anything, m).Return(persisted, nil).Once()

		result, err := uc.Add(context.Background(), m)

		assert.NoError(t, err)
		assert.Equal(t, persisted, result)
		r.AssertExpectations(t)
	})

	t.Run("should reject duplicate title without inserting", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		m := newMovie()
		existing := m
		existing.ID = 1
		r.On("Search", mock.Anything, query.ByTitle("Alpha")).Return([]movie.Movie{existing}, nil).Once()

		_, err := uc.Add(context.Background(), m)

		assert.ErrorIs(t, err, movie.ErrDuplicateTitle)
		r.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		r.AssertExpectations(t)
	})

	t.Run("should propagate store failure from uniqueness check", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		storeErr := errors.New("connection refused")
		r.On("Search", mock.Anything, mock.Anything).Return([]movie.Movie(nil), storeErr).Once()

		_, err := uc.Add(context.Background(), newMovie())

		assert.ErrorIs(t, err, storeErr)
		r.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("should propagate store failure from insert", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		storeErr := errors.New("insert failed")
		r.On("Search", mock.Anything, mock.Anything).Return([]movie.Movie{}, nil).Once()
		r.On("Add", mock.Anything, mock.Anything).Return(movie.Movie{}, storeErr).Once()

		_, err := uc.Add(context.Background(), newMovie())

		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("should fail validation before touching the store", func(t *testing.T) {
		tests := []struct {
			name     string
			mutate   func(m *movie.Movie)
			expected error
		}{
			{"short title", func(m *movie.Movie) { m.Title = "A" }, movie.ErrInvalidTitle},
			{"blank title", func(m *movie.Movie) { m.Title = "   " }, movie.ErrInvalidTitle},
			{"long title", func(m *movie.Movie) { m.Title = strings.Repeat("a", 151) }, movie.ErrInvalidTitle},
			{"missing director", func(m *movie.Movie) { m.Director = "" }, movie.ErrInvalidDirector},
			{"long description", func(m *movie.Movie) { m.Description = strings.Repeat("d", 351) }, movie.ErrInvalidDescription},
			{"missing genre", func(m *movie.Movie) { m.GenreID = 0 }, movie.ErrInvalidGenre},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				r := new(MockMovieRepository)
				uc := movie.NewUsecase(r)
				m := newMovie()
				tt.mutate(&m)

				_, err := uc.Add(context.Background(), m)

				assert.Equal(t, tt.expected, err)
				r.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestUpdateMovie(t *testing.T) {
	t.Run("should update when title is unchanged", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		m := newMovie()
		m.ID = 4
		stored := m
		stored.GenreTitle = "Drama"
		r.On("Search", mock.Anything, query.ByTitleExcluding("Alpha", 4)).Return([]movie.Movie{}, nil).Once()
		r.On("Update", mock.Anything, m).Return(nil).Once()
		r.On("GetByID", mock.Anything, 4).Return(stored, nil).Once()

		result, err := uc.Update(context.Background(), m)

		assert.NoError(t, err)
		assert.Equal(t, stored, result, "the stored row is returned with its genre title")
		r.AssertExpectations(t)
	})

	t.Run("should reject title used by another movie", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		m := newMovie()
		m.ID = 2
		other := newMovie()
		other.ID = 1
		r.On("Search", mock.Anything, query.ByTitleExcluding("Alpha", 2)).Return([]movie.Movie{other}, nil).Once()

		_, err := uc.Update(context.Background(), m)

		assert.ErrorIs(t, err, movie.ErrDuplicateTitle)
		r.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should return not found from repository", func(t *testing.T) {
		r := new(MockMovieRepository)
		uc := movie.NewUsecase(r)
		m := newMovie()
		m.ID = 99
		r.On("Search", mock.Anything, mock.Anything).Return([]movie.Movie{}, nil).Once()
		r.On("Update", mock.Anything, m).Return(movie.ErrMovieNotFound).Once()

		_, err := uc.Update(context.Background(), m)

		assert.ErrorIs(t, err, movie.ErrMovieNotFound)
	})
}

func TestRemoveMovie(t *testing.T) {
	r := new(MockMovieRepository)
	uc := movie.NewUsecase(r)
	m := newMovie()
	m.ID = 3
	r.On("Remove", mock.Anything, m).Return(nil).Once()

	err := uc.Remove(context.Background(), m)

	assert.NoError(t, err)
	r.AssertExpectations(t)
}

func TestReadsDelegateToRepository(t *testing.T) {
	ctx := context.Background()
	movies := []movie.Movie{newMovie()}

	t.Run("get all", func(t *testing.T) {
		r := new(MockMovieRepository)
		r.On("GetAll", mock.Anything).Return(movies, nil).Once()

		result, err := movie.NewUsecase(r).GetAll(ctx)

		assert.NoError(t, err)
		assert.Equal(t, movies, result)
		r.AssertExpectations(t)
	})

	t.Run("get by id returns not found twice without side effects", func(t *testing.T) {
		r := new(MockMovieRepository)
		r.On("GetByID", mock.Anything, 42).Return(movie.Movie{}, movie.ErrMovieNotFound).Twice()
		uc := movie.NewUsecase(r)

		_, first := uc.GetByID(ctx, 42)
		_, second := uc.GetByID(ctx, 42)

		assert.ErrorIs(t, first, movie.ErrMovieNotFound)
		assert.ErrorIs(t, second, movie.ErrMovieNotFound)
		r.AssertExpectations(t)
	})

	t.Run("get by genre", func(t *testing.T) {
		r := new(MockMovieRepository)
		r.On("GetByGenre", mock.Anything, 1).Return(movies, nil).Once()

		result, err := movie.NewUsecase(r).GetByGenre(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, movies, result)
	})

	t.Run("search by title uses substring query", func(t *testing.T) {
		r := new(MockMovieRepository)
		r.On("Search", mock.Anything, query.ByTitleContains("lph")).Return(movies, nil).Once()

		result, err := movie.NewUsecase(r).Search(ctx, "lph")

		assert.NoError(t, err)
		assert.Equal(t, movies, result)
		r.AssertExpectations(t)
	})

	t.Run("search with genre", func(t *testing.T) {
		r := new(MockMovieRepository)
		r.On("SearchWithGenre", mock.Anything, "Drama").Return(movies, nil).Once()

		result, err := movie.NewUsecase(r).SearchWithGenre(ctx, "Drama")

		assert.NoError(t, err)
		assert.Equal(t, movies, result)
	})
}
