package store

import (
	"context"

	"github.com/benjaminBJ/taller-api-rest/internal/vet/domain"
)

type appointmentsRepo struct {
	c Caller
}

func NewAppointments(c Caller) Appointments { return &appointmentsRepo{c: c} }

func (r *appointmentsRepo) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	rows, err := r.c.Query(ctx, ProcAppointmentsGetAll)
	return collect(rows, err, scanAppointment)
}

func (r *appointmentsRepo) GetAppointment(ctx context.Context, id int64) (domain.Appointment, error) {
	a, err := scanAppointment(r.c.QueryRow(ctx, ProcAppointmentsGetByID, id))
	if err != nil {
		return domain.Appointment{}, mapNotFound(err)
	}
	return a, nil
}

func (r *appointmentsRepo) ListAppointmentsByPet(ctx context.Context, petID int64) ([]domain.Appointment, error) {
	rows, err := r.c.Query(ctx, ProcAppointmentsGetByPet, petID)
	return collect(rows, err, scanAppointment)
}

func (r *appointmentsRepo) CreateAppointment(ctx context.Context, a domain.Appointment) (int64, error) {
	var id int64
	err := r.c.QueryRow(ctx, ProcAppointmentCreate, a.Date.UTC(), a.Veterinarian, a.PetID).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *appointmentsRepo) UpdateAppointment(ctx context.Context, a domain.Appointment) error {
	return requireAffected(r.c.Exec(ctx, ProcAppointmentUpdate, a.ID, a.Date.UTC(), a.Veterinarian, a.PetID))
}

func (r *appointmentsRepo) DeleteAppointment(ctx context.Context, id int64) error {
	return requireAffected(r.c.Exec(ctx, ProcAppointmentDelete, id))
}
