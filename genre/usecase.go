package genre

import (
	"context"

	"movieinfo/movie"
	"movieinfo/query"
)

type Service interface {
	GetAll(ctx context.Context) ([]Genre, error)
	GetByID(ctx context.Context, id int) (Genre, error)
	Add(ctx context.Context, g Genre) (Genre, error)
	Update(ctx context.Context, g Genre) (Genre, error)
	Remove(ctx context.Context, g Genre) error
	Search(ctx context.Context, title string) ([]Genre, error)
}

type Repository interface {
	GetAll(ctx context.Context) ([]Genre, error)
	GetByID(ctx context.Context, id int) (Genre, error)
	Add(ctx context.Context, g Genre) (Genre, error)
	Update(ctx context.Context, g Genre) error
	Remove(ctx context.Context, g Genre) error
	Search(ctx context.Context, q query.Query) ([]Genre, error)
}

// MovieFinder lists the movies filed under a genre. [movie.Service]
// satisfies it.
type MovieFinder interface {
	GetByGenre(ctx context.Context, genreID int) ([]movie.Movie, error)
}

type Usecase struct {
	r      Repository
	movies MovieFinder
}

func NewUsecase(r Repository, movies MovieFinder) *Usecase {
	return &Usecase{
		r:      r,
		movies: movies,
	}
}

func (uc *Usecase) GetAll(ctx context.Context) ([]Genre, error) {
	return uc.r.GetAll(ctx)
}

func (uc *Usecase) GetByID(ctx context.Context, id int) (Genre, error) {
	return uc.r.GetByID(ctx, id)
}

// Add stores g unless another genre already uses its title. Length rules are
// enforced here as well as at the HTTP layer.
func (uc *Usecase) Add(ctx context.Context, g Genre) (Genre, error) {
	if err := g.Validate(); err != nil {
		return Genre{}, err
	}

	existing, err := uc.r.Search(ctx, query.ByTitle(g.Title))
	if err != nil {
		return Genre{}, err
	}
	if len(existing) > 0 {
		return Genre{}, ErrDuplicateTitle
	}

	return uc.r.Add(ctx, g)
}

func (uc *Usecase) Update(ctx context.Context, g Genre) (Genre, error) {
	if err := g.Validate(); err != nil {
		return Genre{}, err
	}

	existing, err := uc.r.Search(ctx, query.ByTitleExcluding(g.Title, g.ID))
	if err != nil {
		return Genre{}, err
	}
	if len(existing) > 0 {
		return Genre{}, ErrDuplicateTitle
	}

	if err := uc.r.Update(ctx, g); err != nil {
		return Genre{}, err
	}
	return g, nil
}

// Remove deletes g only when no movie references it.
func (uc *Usecase) Remove(ctx context.Context, g Genre) error {
	movies, err := uc.movies.GetByGenre(ctx, g.ID)
	if err != nil {
		return err
	}
	if len(movies) > 0 {
		return ErrGenreInUse
	}

	return uc.r.Remove(ctx, g)
}

func (uc *Usecase) Search(ctx context.Context, title string) ([]Genre, error) {
	return uc.r.Search(ctx, query.ByTitleContains(title))
}
