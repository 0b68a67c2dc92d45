package store

import (
	"context"

	"github.com/benjaminBJ/taller-api-rest/internal/vet/domain"
)

type peopleRepo struct {
	c Caller
}

// NewPeople returns the People repository over c.
func NewPeople(c Caller) People { return &peopleRepo{c: c} }

func (r *peopleRepo) ListPeople(ctx context.Context) ([]domain.Person, error) {
	rows, err := r.c.Query(ctx, ProcPeopleGetAll)
	return collect(rows, err, scanPerson)
}

func (r *peopleRepo) GetPerson(ctx context.Context, id int64) (domain.Person, error) {
	p, err := scanPerson(r.c.QueryRow(ctx, ProcPeopleGetByID, id))
	if err != nil {
		return domain.Person{}, mapNotFound(err)
	}
	return p, nil
}

func (r *peopleRepo) CreatePerson(ctx context.Context, p domain.Person) (int64, error) {
	var id int64
	if err := r.c.QueryRow(ctx, ProcPersonCreate, p.Name, p.Email, p.Phone).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *peopleRepo) UpdatePerson(ctx context.Context, p domain.Person) error {
	return requireAffected(r.c.Exec(ctx, ProcPersonUpdate, p.ID, p.Name, p.Email, p.Phone))
}

func (r *peopleRepo) DeletePerson(ctx context.Context, id int64) error {
	return requireAffected(r.c.Exec(ctx, ProcPersonDelete, id))
}
