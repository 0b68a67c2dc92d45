// Package postgres implements the clinic store over PostgreSQL. Every
// operation is a call to a stored function created by the embedded goose
// migrations.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/benjaminBJ/taller-api-rest/internal/vet/store"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// foreignKeyViolation is SQLSTATE 23503.
const foreignKeyViolation = "23503"

var ErrUnknownProcedure = errors.New("postgres: unknown procedure")

type Store struct {
	db    *sql.DB
	procs map[string]struct{}
}

var _ store.Store = (*Store)(nil)

// NewStore opens a pgx backed pool for dsn. The connection is not checked
// until the first call; use Ping for that.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

// New wraps an existing handle. Tests pass a sqlmock DB here.
func New(db *sql.DB) *Store {
	procs := make(map[string]struct{}, len(store.Procedures))
	for _, p := range store.Procedures {
		procs[p] = struct{}{}
	}
	return &Store{db: db, procs: procs}
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) People() store.People             { return store.NewPeople(s) }
func (s *Store) Pets() store.Pets                 { return store.NewPets(s) }
func (s *Store) Appointments() store.Appointments { return store.NewAppointments(s) }

// call renders "name($1, $2, ...)". Names are checked against the known set
// since they end up in the statement text.
func (s *Store) call(proc string, nargs int) (string, error) {
	if _, ok := s.procs[proc]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProcedure, proc)
	}
	params := make([]string, nargs)
	for i := range params {
		params[i] = "$" + strconv.Itoa(i+1)
	}
	return proc + "(" + strings.Join(params, ", ") + ")", nil
}

func (s *Store) Query(ctx context.Context, proc string, args ...any) (*sql.Rows, error) {
	fn, err := s.call(proc, len(args))
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+fn, args...)
	return rows, mapErr(err)
}

func (s *Store) QueryRow(ctx context.Context, proc string, args ...any) store.Row {
	fn, err := s.call(proc, len(args))
	if err != nil {
		return store.ErrRow{Err: err}
	}
	return row{s.db.QueryRowContext(ctx, "SELECT * FROM "+fn, args...)}
}

// Exec calls a mutating function. Those return the affected row count as
// their single value.
func (s *Store) Exec(ctx context.Context, proc string, args ...any) (int64, error) {
	fn, err := s.call(proc, len(args))
	if err != nil {
		return 0, err
	}
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT "+fn, args...).Scan(&n); err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}

type row struct{ *sql.Row }

func (r row) Scan(dest ...any) error { return mapErr(r.Row.Scan(dest...)) }

func mapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return fmt.Errorf("%w: %w", store.ErrInvalidReference, err)
	}
	return err
}
