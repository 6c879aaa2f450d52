package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"student-rank/models"
	"student-rank/query"
)

// ErrNotFound is returned when a roll number matches no row.
var ErrNotFound = errors.New("student not found")

// Querier is the part of *sql.DB the store needs. Each call borrows a pooled
// connection and hands it back once the rows are closed.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Store struct {
	db Querier
}

func New(db Querier) *Store {
	return &Store{db: db}
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

// ListStudents returns one ranked page plus pagination computed from a
// separate count over the same criteria. Either both queries succeed or the
// call fails as a whole.
func (s *Store) ListStudents(ctx context.Context, c query.Criteria, req query.PageRequest) (models.StudentPage, error) {
	req = req.Normalize()

	var (
		rows  []models.RankedStudent
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.rankedPage(gctx, query.RankedSelect(c, req))
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.count(gctx, query.CountSelect(c))
		return err
	})
	if err := g.Wait(); err != nil {
		return models.StudentPage{}, err
	}

	return models.StudentPage{
		Data: rows,
		Pagination: models.Pagination{
			Total:      total,
			Page:       req.Page,
			Limit:      req.Limit,
			TotalPages: query.TotalPages(total, req.Limit),
		},
	}, nil
}

func (s *Store) rankedPage(ctx context.Context, st query.Statement) ([]models.RankedStudent, error) {
	rs, err := s.db.QueryContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, errors.Wrap(err, "query ranked students")
	}
	defer rs.Close()

	out := make([]models.RankedStudent, 0)
	for rs.Next() {
		var (
			row  studentRow
			rank int64
		)
		if err := rs.Scan(append(row.dest(), &rank)...); err != nil {
			return nil, errors.Wrap(err, "scan ranked student")
		}
		out = append(out, models.RankedStudent{Student: row.student(), Rank: int(rank)})
	}
	if err := rs.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate ranked students")
	}
	return out, nil
}

func (s *Store) count(ctx context.Context, st query.Statement) (int, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, st.SQL, st.Args...).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "count students")
	}
	return int(total), nil
}

// GetStudent looks a student up by roll number. The result carries no rank.
func (s *Store) GetStudent(ctx context.Context, rollNumber string, scope query.Scope) (models.Student, error) {
	st := query.DetailSelect(rollNumber, scope)

	var row studentRow
	err := s.db.QueryRowContext(ctx, st.SQL, st.Args...).Scan(row.dest()...)
	if err == sql.ErrNoRows {
		return models.Student{}, ErrNotFound
	}
	if err != nil {
		return models.Student{}, errors.Wrapf(err, "get student %s", rollNumber)
	}
	return row.student(), nil
}

// FilterOptions collects the distinct facet values. Nothing is cached.
func (s *Store) FilterOptions(ctx context.Context) (models.FilterOptions, error) {
	var opts models.FilterOptions
	g, gctx := errgroup.WithContext(ctx)
	facets := []struct {
		facet query.Facet
		dst   *[]string
	}{
		{query.FacetInstitution, &opts.Institutions},
		{query.FacetYear, &opts.Years},
		{query.FacetExamType, &opts.ExamTypes},
		{query.FacetGroup, &opts.Groups},
	}
	for _, f := range facets {
		f := f
		g.Go(func() error {
			values, err := s.distinct(gctx, f.facet)
			if err != nil {
				return err
			}
			*f.dst = values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.FilterOptions{}, err
	}
	return opts, nil
}

func (s *Store) distinct(ctx context.Context, f query.Facet) ([]string, error) {
	st := query.DistinctSelect(f)
	rs, err := s.db.QueryContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, errors.Wrapf(err, "distinct %s", f.Column)
	}
	defer rs.Close()

	values := make([]string, 0)
	for rs.Next() {
		var v string
		if err := rs.Scan(&v); err != nil {
			return nil, errors.Wrapf(err, "scan distinct %s", f.Column)
		}
		values = append(values, v)
	}
	if err := rs.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate distinct %s", f.Column)
	}
	return values, nil
}

// Ping checks the datastore is reachable.
func (s *Store) Ping(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return errors.Wrap(err, "ping datastore")
	}
	return nil
}
