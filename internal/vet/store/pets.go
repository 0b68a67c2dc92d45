package store

import (
	"context"

	"github.com/benjaminBJ/taller-api-rest/internal/vet/domain"
)

type petsRepo struct {
	c Caller
}

func NewPets(c Caller) Pets { return &petsRepo{c: c} }

func (r *petsRepo) ListPetsByPerson(ctx context.Context, personID int64) ([]domain.Pet, error) {
	rows, err := r.c.Query(ctx, ProcPetsGetByPerson, personID)
	return collect(rows, err, scanPet)
}

func (r *petsRepo) CreatePet(ctx context.Context, p domain.Pet) (int64, error) {
	var id int64
	if err := r.c.QueryRow(ctx, ProcPetCreate, p.Name, p.Breed, p.PersonID).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *petsRepo) UpdatePet(ctx context.Context, p domain.Pet) error {
	return requireAffected(r.c.Exec(ctx, ProcPetUpdate, p.ID, p.Name, p.Breed, p.PersonID))
}

func (r *petsRepo) DeletePet(ctx context.Context, id int64) error {
	return requireAffected(r.c.Exec(ctx, ProcPetDelete, id))
}
