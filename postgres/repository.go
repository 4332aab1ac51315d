package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"movieinfo/errs"
	"movieinfo/query"
)

type RepositoryOption func(*settings)

type settings struct {
	timeout time.Duration
}

// WithQueryTimeout bounds every repository call that arrives without a
// deadline of its own.
func WithQueryTimeout(d time.Duration) RepositoryOption {
	return func(s *settings) {
		s.timeout = d
	}
}

// scope turns a query into a gorm scope. Columns are table qualified so the
// same scope works on joined reads.
type scope func(q query.Query) func(*gorm.DB) *gorm.DB

// repository holds the persistence operations shared by every entity. D is
// the domain type and M its gorm model.
type repository[D any, M any] struct {
	db       *gorm.DB
	timeout  time.Duration
	notFound error
	toDomain func(M) D
	toModel  func(D) M
	idOf     func(D) int
	scopes   map[query.Kind]scope
}

func newRepository[D any, M any](db *gorm.DB, opts []RepositoryOption, r repository[D, M]) *repository[D, M] {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	r.db = db
	r.timeout = s.timeout
	return &r
}

// session returns a gorm session bound to ctx. The cancel func must be
// called once the session is done.
func (r *repository[D, M]) session(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || r.timeout <= 0 {
		return r.db.WithContext(ctx), func() {}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	return r.db.WithContext(ctx), cancel
}

func (r *repository[D, M]) scope(q query.Query) (func(*gorm.DB) *gorm.DB, error) {
	s, ok := r.scopes[q.Kind]
	if !ok {
		return nil, errs.Errorf(errs.EINVALID, "unsupported query: %s", q.Kind)
	}
	return s(q), nil
}

func (r *repository[D, M]) GetAll(ctx context.Context) ([]D, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	var models []M
	if err := tx.Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapAll(models), nil
}

func (r *repository[D, M]) GetByID(ctx context.Context, id int) (D, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	var model M
	if err := tx.Take(&model, id).Error; err != nil {
		var zero D
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, r.notFound
		}
		return zero, err
	}

	return r.toDomain(model), nil
}

func (r *repository[D, M]) Add(ctx context.Context, d D) (D, error) {
	tx, cancel := r.session(ctx)
	defer cancel()

	model := r.toModel(d)
	if err := tx.Omit(clause.Associations).Create(&model).Error; err != nil {
		var zero D
		return zero, err
	}

	return r.toDomain(model), nil
}

// Update overwrites every column of the row identified by d.
func (r *repository[D, M]) Update(ctx context.Context, d D) error {
	if r.idOf(d) <= 0 {
		return r.notFound
	}

	tx, cancel := r.session(ctx)
	defer cancel()

	model := r.toModel(d)
	result := tx.Model(&model).Select("*").Omit(clause.Associations).Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.notFound
	}

	return nil
}

// Remove deletes the row identified by d. Constraint violations from the
// store are returned unchanged.
func (r *repository[D, M]) Remove(ctx context.Context, d D) error {
	if r.idOf(d) <= 0 {
		return r.notFound
	}

	tx, cancel := r.session(ctx)
	defer cancel()

	model := r.toModel(d)
	result := tx.Delete(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.notFound
	}

	return nil
}

func (r *repository[D, M]) Search(ctx context.Context, q query.Query) ([]D, error) {
	where, err := r.scope(q)
	if err != nil {
		return nil, err
	}

	tx, cancel := r.session(ctx)
	defer cancel()

	var models []M
	if err := tx.Scopes(where).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapAll(models), nil
}

func (r *repository[D, M]) mapAll(models []M) []D {
	out := make([]D, len(models))
	for i, m := range models {
		out[i] = r.toDomain(m)
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere in the column.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

const likeEscape = ` ESCAPE '\'`

func titleContains(column string) scope {
	return func(q query.Query) func(*gorm.DB) *gorm.DB {
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where(column+" LIKE ?"+likeEscape, containsPattern(q.Text))
		}
	}
}

func titleEquals(column string) scope {
	return func(q query.Query) func(*gorm.DB) *gorm.DB {
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where(column+" = ?", q.Text)
		}
	}
}

func titleEqualsOtherID(column, idColumn string) scope {
	return func(q query.Query) func(*gorm.DB) *gorm.DB {
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where(column+" = ? AND "+idColumn+" <> ?", q.Text, q.ID)
		}
	}
}
