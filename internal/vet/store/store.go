package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/benjaminBJ/taller-api-rest/internal/vet/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no row, or when an
	// update or delete affects none.
	ErrNotFound = errors.New("store: not found")

	// ErrInvalidReference is returned when a write names an owner or pet
	// that does not exist.
	ErrInvalidReference = errors.New("store: invalid reference")
)

// Store is the root data access interface. Drivers (sqlite, postgres)
// implement Caller and hand out the shared procedure-backed repositories.
type Store interface {
	People() People
	Pets() Pets
	Appointments() Appointments

	ApplyMigrations(ctx context.Context) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Caller invokes a named stored procedure with positional arguments. Each
// driver decides how a name maps onto its database.
type Caller interface {
	// Query runs a procedure that yields rows.
	Query(ctx context.Context, proc string, args ...any) (*sql.Rows, error)

	// QueryRow runs a procedure that yields at most one row. Errors,
	// including sql.ErrNoRows, surface from Scan.
	QueryRow(ctx context.Context, proc string, args ...any) Row

	// Exec runs a mutating procedure and returns the affected row count.
	Exec(ctx context.Context, proc string, args ...any) (int64, error)
}

// Row is satisfied by *sql.Row.
type Row interface {
	Scan(dest ...any) error
}

// ErrRow is a Row whose Scan always fails with Err.
type ErrRow struct{ Err error }

func (r ErrRow) Scan(...any) error { return r.Err }

type People interface {
	ListPeople(ctx context.Context) ([]domain.Person, error)
	GetPerson(ctx context.Context, id int64) (domain.Person, error)

	// CreatePerson returns the id assigned by the database.
	CreatePerson(ctx context.Context, p domain.Person) (int64, error)
	UpdatePerson(ctx context.Context, p domain.Person) error
	DeletePerson(ctx context.Context, id int64) error
}

type Pets interface {
	ListPetsByPerson(ctx context.Context, personID int64) ([]domain.Pet, error)
	CreatePet(ctx context.Context, p domain.Pet) (int64, error)
	UpdatePet(ctx context.Context, p domain.Pet) error
	DeletePet(ctx context.Context, id int64) error
}

type Appointments interface {
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
	GetAppointment(ctx context.Context, id int64) (domain.Appointment, error)
	ListAppointmentsByPet(ctx context.Context, petID int64) ([]domain.Appointment, error)
	CreateAppointment(ctx context.Context, a domain.Appointment) (int64, error)
	UpdateAppointment(ctx context.Context, a domain.Appointment) error
	DeleteAppointment(ctx context.Context, id int64) error
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func requireAffected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
