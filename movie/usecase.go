package movie

import (
	"context"

	"movieinfo/query"
)

type Service interface {
	GetAll(ctx context.Context) ([]Movie, error)
	GetByID(ctx context.Context, id int) (Movie, error)
	GetByGenre(ctx context.Context, genreID int) ([]Movie, error)
	Add(ctx context.Context, m Movie) (Movie, error)
	Update(ctx context.Context, m Movie) (Movie, error)
	Remove(ctx context.Context, m Movie) error
	Search(ctx context.Context, title string) ([]Movie, error)
	SearchWithGenre(ctx context.Context, text string) ([]Movie, error)
}

type Repository interface {
	GetAll(ctx context.Context) ([]Movie, error)
	GetByID(ctx context.Context, id int) (Movie, error)
	GetByGenre(ctx context.Context, genreID int) ([]Movie, error)
	Add(ctx context.Context, m Movie) (Movie, error)
	Update(ctx context.Context, m Movie) error
	Remove(ctx context.Context, m Movie) error
	Search(ctx context.Context, q query.Query) ([]Movie, error)
	SearchWithGenre(ctx context.Context, text string) ([]Movie, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) GetAll(ctx context.Context) ([]Movie, error) {
	return uc.r.GetAll(ctx)
}

func (uc *Usecase) GetByID(ctx context.Context, id int) (Movie, error) {
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) GetByGenre(ctx context.Context, genreID int) ([]Movie, error) {
	return uc.r.GetByGenre(ctx, genreID)
}

// Add stores m unless another movie already uses its title. Length rules are
// enforced here as well as at the HTTP layer.
// The check and the insert are not isolated from concurrent writers.
func (uc *Usecase) Add(ctx context.Context, m Movie) (Movie, error) {
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}

	existing, err := uc.r.Search(ctx, query.ByTitle(m.Title))
	if err != nil {
		return Movie{}, err
	}
	if len(existing) > 0 {
		return Movie{}, ErrDuplicateTitle
	}

	return uc.r.Add(ctx, m)
}

// Update overwrites m unless a different movie already uses its title and
// returns the stored movie with its genre title.
func (uc *Usecase) Update(ctx context.Context, m Movie) (Movie, error) {
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}

	existing, err := uc.r.Search(ctx, query.ByTitleExcluding(m.Title, m.ID))
	if err != nil {
		return Movie{}, err
	}
	if len(existing) > 0 {
		return Movie{}, ErrDuplicateTitle
	}

	if err := uc.r.Update(ctx, m); err != nil {
		return Movie{}, err
	}
	return uc.r.GetByID(ctx, m.ID)
}

func (uc *Usecase) Remove(ctx context.Context, m Movie) error {
	return uc.r.Remove(ctx, m)
}

func (uc *Usecase) Search(ctx context.Context, title string) ([]Movie, error) {
	return uc.r.Search(ctx, query.ByTitleContains(title))
}

func (uc *Usecase) SearchWithGenre(ctx context.Context, text string) ([]Movie, error) {
	return uc.r.SearchWithGenre(ctx, text)
}
