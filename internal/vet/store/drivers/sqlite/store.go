package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/benjaminBJ/taller-api-rest/internal/vet/store"
	sqlite3 "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

var ErrUnknownProcedure = errors.New("sqlite: unknown procedure")

type Store struct {
	db  *sql.DB
	dsn string
}

var _ store.Store = (*Store)(nil)

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs so deletes cascade from people to pets to appointments.
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	// The pragma is per connection; one connection keeps it in force and
	// serializes writers.
	db.SetMaxOpenConns(1)

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) People() store.People             { return store.NewPeople(s) }
func (s *Store) Pets() store.Pets                 { return store.NewPets(s) }
func (s *Store) Appointments() store.Appointments { return store.NewAppointments(s) }

func lookup(proc string) (string, error) {
	stmt, ok := procedures[proc]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProcedure, proc)
	}
	return stmt, nil
}

func (s *Store) Query(ctx context.Context, proc string, args ...any) (*sql.Rows, error) {
	stmt, err := lookup(proc)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	return rows, mapErr(err)
}

func (s *Store) QueryRow(ctx context.Context, proc string, args ...any) store.Row {
	stmt, err := lookup(proc)
	if err != nil {
		return store.ErrRow{Err: err}
	}
	return row{s.db.QueryRowContext(ctx, stmt, args...)}
}

func (s *Store) Exec(ctx context.Context, proc string, args ...any) (int64, error) {
	stmt, err := lookup(proc)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, mapErr(err)
	}
	return res.RowsAffected()
}

type row struct{ *sql.Row }

func (r row) Scan(dest ...any) error { return mapErr(r.Row.Scan(dest...)) }

func mapErr(err error) error {
	var se *sqlite3.Error
	if errors.As(err, &se) && (se.Code() == sqlitelib.SQLITE_CONSTRAINT_FOREIGNKEY ||
		strings.Contains(se.Error(), "FOREIGN KEY constraint failed")) {
		return fmt.Errorf("%w: %w", store.ErrInvalidReference, err)
	}
	return err
}
