package postgres

import (
	"context"

	"gorm.io/gorm"

	"movieinfo/genre"
	"movieinfo/query"
)

type GenreModel struct {
	ID    int    `gorm:"primaryKey"`
	Title string `gorm:"size:150;not null"`
}

func (GenreModel) TableName() string {
	return "genres"
}

// GenreRepository implements [genre.Repository].
type GenreRepository struct {
	base *repository[genre.Genre, GenreModel]
}

func NewGenreRepository(db *gorm.DB, opts ...RepositoryOption) *GenreRepository {
	return &GenreRepository{
		base: newRepository(db, opts, repository[genre.Genre, GenreModel]{
			notFound: genre.ErrGenreNotFound,
			toDomain: toDomainGenre,
			toModel:  toModelGenre,
			idOf:     func(g genre.Genre) int { return g.ID },
			scopes: map[query.Kind]scope{
				query.TitleContains:      titleContains("genres.title"),
				query.TitleEquals:        titleEquals("genres.title"),
				query.TitleEqualsOtherID: titleEqualsOtherID("genres.title", "genres.id"),
			},
		}),
	}
}

func (r *GenreRepository) GetAll(ctx context.Context) ([]genre.Genre, error) {
	return r.base.GetAll(ctx)
}

func (r *GenreRepository) GetByID(ctx context.Context, id int) (genre.Genre, error) {
	return r.base.GetByID(ctx, id)
}

func (r *GenreRepository) Add(ctx context.Context, g genre.Genre) (genre.Genre, error) {
	return r.base.Add(ctx, g)
}

func (r *GenreRepository) Update(ctx context.Context, g genre.Genre) error {
	return r.base.Update(ctx, g)
}

func (r *GenreRepository) Remove(ctx context.Context, g genre.Genre) error {
	return r.base.Remove(ctx, g)
}

func (r *GenreRepository) Search(ctx context.Context, q query.Query) ([]genre.Genre, error) {
	return r.base.Search(ctx, q)
}

func toDomainGenre(m GenreModel) genre.Genre {
	return genre.Genre{
		ID:    m.ID,
		Title: m.Title,
	}
}

func toModelGenre(g genre.Genre) GenreModel {
	return GenreModel{
		ID:    g.ID,
		Title: g.Title,
	}
}
