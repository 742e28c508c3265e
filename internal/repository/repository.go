package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stemsi/institute-admin/internal/apperror"
	"github.com/stemsi/institute-admin/internal/logger"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Mapping describes how a record type E maps onto one table.
//
// Columns lists the mutable columns in bind order; Values must return one
// value per column in the same order. Generated lists the columns the store
// fills on insert, starting with the identity column; GeneratedTargets must
// return one scan target per generated column. Fields returns scan targets
// for IDColumn followed by Columns, followed by any Generated column other
// than the identity.
type Mapping[E any] struct {
	Table     string
	IDColumn  string
	Columns   []string
	Generated []string
	OrderBy   []string

	Values           func(e *E) []any
	Fields           func(e *E) []any
	GeneratedTargets func(e *E) []any
	ID               func(e *E) int64
}

func (m Mapping[E]) selectColumns() []string {
	cols := make([]string, 0, len(m.Columns)+len(m.Generated))
	cols = append(cols, m.IDColumn)
	cols = append(cols, m.Columns...)
	for _, g := range m.Generated {
		if g != m.IDColumn {
			cols = append(cols, g)
		}
	}
	return cols
}

func (m Mapping[E]) orderBy() []string {
	order := make([]string, 0, len(m.OrderBy)+1)
	order = append(order, m.OrderBy...)
	return append(order, m.IDColumn+" ASC")
}

// Repository implements create/read/update/delete for one mapped table.
// Every statement is a single bound-parameter round trip.
type Repository[E any] struct {
	db  DBTX
	m   Mapping[E]
	sb  squirrel.StatementBuilderType
	log zerolog.Logger
}

// New creates a Repository for mapping m on db.
func New[E any](db DBTX, m Mapping[E], log zerolog.Logger) *Repository[E] {
	return &Repository[E]{
		db:  db,
		m:   m,
		sb:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		log: logger.Component(log, m.Table+"_repository"),
	}
}

// Create inserts e and writes the generated identity (and any other
// generated column) back into it. The identity held by e is ignored.
func (r *Repository[E]) Create(ctx context.Context, e *E) error {
	op := r.m.Table + ".Create"

	sql, args, err := r.sb.Insert(r.m.Table).
		Columns(r.m.Columns...).
		Values(r.m.Values(e)...).
		Suffix("RETURNING " + strings.Join(r.m.Generated, ", ")).
		ToSql()
	if err != nil {
		return apperror.Persistence(op, fmt.Errorf("build insert: %w", err))
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(r.m.GeneratedTargets(e)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.fail(op, apperror.ErrNoIdentity)
		}
		return r.fail(op, err)
	}
	return nil
}

// GetByID returns the record with the given identity. found is false when
// no row matches; err is reserved for failed statements.
func (r *Repository[E]) GetByID(ctx context.Context, id int64) (e E, found bool, err error) {
	return r.getOne(ctx, r.m.Table+".GetByID", squirrel.Eq{r.m.IDColumn: id})
}

// GetAll returns every row in the table's natural order. The result is
// never nil.
func (r *Repository[E]) GetAll(ctx context.Context) ([]E, error) {
	return r.list(ctx, r.m.Table+".GetAll", nil)
}

// Update replaces every mutable column of the row identified by e and
// reports whether exactly one row was affected.
func (r *Repository[E]) Update(ctx context.Context, e *E) (bool, error) {
	op := r.m.Table + ".Update"

	id := r.m.ID(e)
	if id <= 0 {
		return false, nil
	}

	q := r.sb.Update(r.m.Table)
	for i, v := range r.m.Values(e) {
		q = q.Set(r.m.Columns[i], v)
	}
	sql, args, err := q.Where(squirrel.Eq{r.m.IDColumn: id}).ToSql()
	if err != nil {
		return false, apperror.Persistence(op, fmt.Errorf("build update: %w", err))
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, r.fail(op, err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete removes the row with the given identity and reports whether one
// was removed. Dependent rows are handled by the schema's cascade rules.
func (r *Repository[E]) Delete(ctx context.Context, id int64) (bool, error) {
	op := r.m.Table + ".Delete"

	if id <= 0 {
		return false, nil
	}

	sql, args, err := r.sb.Delete(r.m.Table).Where(squirrel.Eq{r.m.IDColumn: id}).ToSql()
	if err != nil {
		return false, apperror.Persistence(op, fmt.Errorf("build delete: %w", err))
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, r.fail(op, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository[E]) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (e E, found bool, err error) {
	sql, args, err := r.sb.Select(r.m.selectColumns()...).
		From(r.m.Table).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return e, false, apperror.Persistence(op, fmt.Errorf("build select: %w", err))
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(r.m.Fields(&e)...); err != nil {
		var zero E
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, false, nil
		}
		return zero, false, r.fail(op, err)
	}
	return e, true, nil
}

func (r *Repository[E]) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]E, error) {
	q := r.sb.Select(r.m.selectColumns()...).From(r.m.Table)
	if where != nil {
		q = q.Where(where)
	}
	sql, args, err := q.OrderBy(r.m.orderBy()...).ToSql()
	if err != nil {
		return nil, apperror.Persistence(op, fmt.Errorf("build select: %w", err))
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, r.fail(op, err)
	}
	defer rows.Close()

	records := []E{}
	for rows.Next() {
		var e E
		if err := rows.Scan(r.m.Fields(&e)...); err != nil {
			return nil, r.fail(op, err)
		}
		records = append(records, e)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail(op, err)
	}
	return records, nil
}

// fail classifies a driver error, logs it and wraps it as a persistence error.
func (r *Repository[E]) fail(op string, err error) error {
	err = classify(err)
	r.log.Error().Err(err).Str("op", op).Msg("statement failed")
	return apperror.Persistence(op, err)
}

// classify tags constraint violations with the matching detail sentinel.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505": // unique_violation
		return fmt.Errorf("%w: %s: %w", apperror.ErrDuplicate, pgErr.ConstraintName, err)
	case "23503": // foreign_key_violation
		return fmt.Errorf("%w: %s: %w", apperror.ErrForeignKey, pgErr.ConstraintName, err)
	}
	return err
}
