package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"movieinfo/movie"
	"movieinfo/query"
)

type MovieModel struct {
	ID          int         `gorm:"primaryKey"`
	GenreID     int         `gorm:"not null;index"`
	Genre       *GenreModel `gorm:"constraint:OnDelete:RESTRICT"`
	Title       string      `gorm:"size:150;not null"`
	Director    string      `gorm:"size:150;not null"`
	Description *string     `gorm:"size:350"`
	Price       float64     `gorm:"not null"`
	ReleaseDate time.Time   `gorm:"type:date;not null"`
}

func (MovieModel) TableName() string {
	return "movies"
}

// movieRow is a movie joined with the title of its genre.
type movieRow struct {
	ID          int
	GenreID     int
	GenreTitle  string
	Title       string
	Director    string
	Description *string
	Price       float64
	ReleaseDate time.Time
}

const movieColumns = "movies.id, movies.genre_id, genres.title AS genre_title, movies.title, " +
	"movies.director, movies.description, movies.price, movies.release_date"

// MovieRepository implements [movie.Repository]. Reads join the genre so
// every returned movie carries its genre title.
type MovieRepository struct {
	base *repository[movie.Movie, MovieModel]
}

func NewMovieRepository(db *gorm.DB, opts ...RepositoryOption) *MovieRepository {
	return &MovieRepository{
		base: newRepository(db, opts, repository[movie.Movie, MovieModel]{
			notFound: movie.ErrMovieNotFound,
			toDomain: toDomainMovie,
			toModel:  toModelMovie,
			idOf:     func(m movie.Movie) int { return m.ID },
			scopes: map[query.Kind]scope{
				query.TitleContains:      titleContains("movies.title"),
				query.TitleEquals:        titleEquals("movies.title"),
				query.TitleEqualsOtherID: titleEqualsOtherID("movies.title", "movies.id"),
				query.GenreIs:            genreIs,
			},
		}),
	}
}

func genreIs(q query.Query) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("movies.genre_id = ?", q.ID)
	}
}

func joined(tx *gorm.DB) *gorm.DB {
	return tx.Table("movies").
		Select(movieColumns).
		Joins("JOIN genres ON genres.id = movies.genre_id")
}

// GetAll returns every movie ordered by title.
func (r *MovieRepository) GetAll(ctx context.Context) ([]movie.Movie, error) {
	return r.find(ctx)
}

func (r *MovieRepository) GetByID(ctx context.Context, id int) (movie.Movie, error) {
	movies, err := r.find(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("movies.id = ?", id).Limit(1)
	})
	if err != nil {
		return movie.Movie{}, err
	}
	if len(movies) == 0 {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	return movies[0], nil
}

func (r *MovieRepository) GetByGenre(ctx context.Context, genreID int) ([]movie.Movie, error) {
	return r.Search(ctx, query.ByGenre(genreID))
}

func (r *MovieRepository) Add(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	return r.base.Add(ctx, m)
}

func (r *MovieRepository) Update(ctx context.Context, m movie.Movie) error {
	return r.base.Update(ctx, m)
}

func (r *MovieRepository) Remove(ctx context.Context, m movie.Movie) error {
	return r.base.Remove(ctx, m)
}

func (r *MovieRepository) Search(ctx context.Context, q query.Query) ([]movie.Movie, error) {
	where, err := r.base.scope(q)
	if err != nil {
		return nil, err
	}

	return r.find(ctx, where)
}

// SearchWithGenre matches text against the title, director, description and
// genre title. A NULL description never matches.
func (r *MovieRepository) SearchWithGenre(ctx context.Context, text string) ([]movie.Movie, error) {
	pattern := containsPattern(text)

	return r.find(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where(
			"movies.title LIKE ?"+likeEscape+
				" OR movies.director LIKE ?"+likeEscape+
				" OR movies.description LIKE ?"+likeEscape+
				" OR genres.title LIKE ?"+likeEscape,
			pattern, pattern, pattern, pattern,
		)
	})
}

func (r *MovieRepository) find(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) ([]movie.Movie, error) {
	tx, cancel := r.base.session(ctx)
	defer cancel()

	var rows []movieRow
	err := tx.Scopes(joined).
		Scopes(scopes...).
		Order("movies.title ASC").
		Order("movies.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, len(rows))
	for i, row := range rows {
		movies[i] = row.toDomain()
	}
	return movies, nil
}

func (row movieRow) toDomain() movie.Movie {
	m := toDomainMovie(MovieModel{
		ID:          row.ID,
		GenreID:     row.GenreID,
		Title:       row.Title,
		Director:    row.Director,
		Description: row.Description,
		Price:       row.Price,
		ReleaseDate: row.ReleaseDate,
	})
	m.GenreTitle = row.GenreTitle
	return m
}

func toDomainMovie(m MovieModel) movie.Movie {
	var description string
	if m.Description != nil {
		description = *m.Description
	}

	return movie.Movie{
		ID:          m.ID,
		GenreID:     m.GenreID,
		Title:       m.Title,
		Director:    m.Director,
		Description: description,
		Price:       m.Price,
		ReleaseDate: m.ReleaseDate.UTC(),
	}
}

func toModelMovie(m movie.Movie) MovieModel {
	var description *string
	if m.Description != "" {
		description = &m.Description
	}

	return MovieModel{
		ID:          m.ID,
		GenreID:     m.GenreID,
		Title:       m.Title,
		Director:    m.Director,
		Description: description,
		Price:       m.Price,
		ReleaseDate: m.ReleaseDate,
	}
}
