package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/benjaminBJ/taller-api-rest/internal/vet/domain"
	"github.com/benjaminBJ/taller-api-rest/internal/vet/store"
	"github.com/benjaminBJ/taller-api-rest/pkg/slogx"
)

// ClinicService carries the people, pets and appointments use cases. Store
// errors pass through unchanged so callers can match store.ErrNotFound.
type ClinicService struct {
	Store store.Store
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func checkID(id int64, what string) error {
	if id <= 0 {
		return invalid("%s must be a positive id", what)
	}
	return nil
}

func normalizePerson(p domain.Person) (domain.Person, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	if p.Name == "" {
		return p, invalid("name is required")
	}
	return p, nil
}

func normalizePet(p domain.Pet) (domain.Pet, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Breed = strings.TrimSpace(p.Breed)
	if p.Name == "" {
		return p, invalid("name is required")
	}
	return p, checkID(p.PersonID, "person_id")
}

func normalizeAppointment(a domain.Appointment) (domain.Appointment, error) {
	a.Veterinarian = strings.TrimSpace(a.Veterinarian)
	if a.Date.IsZero() {
		return a, invalid("date is required")
	}
	a.Date = a.Date.UTC()
	if a.Veterinarian == "" {
		return a, invalid("veterinarian is required")
	}
	return a, checkID(a.PetID, "pet_id")
}

// People

func (s *ClinicService) ListPeople(ctx context.Context) ([]domain.Person, error) {
	return s.Store.People().ListPeople(ctx)
}

func (s *ClinicService) GetPerson(ctx context.Context, id int64) (domain.Person, error) {
	if err := checkID(id, "id"); err != nil {
		return domain.Person{}, err
	}
	return s.Store.People().GetPerson(ctx, id)
}

// CreatePerson stores p and returns it with the assigned id.
func (s *ClinicService) CreatePerson(ctx context.Context, p domain.Person) (domain.Person, error) {
	p, err := normalizePerson(p)
	if err != nil {
		return domain.Person{}, err
	}
	id, err := s.Store.People().CreatePerson(ctx, p)
	if err != nil {
		return domain.Person{}, err
	}
	p.ID = id
	slogx.FromContext(ctx).Info("person created", "person_id", id)
	return p, nil
}

func (s *ClinicService) UpdatePerson(ctx context.Context, p domain.Person) error {
	if err := checkID(p.ID, "id"); err != nil {
		return err
	}
	p, err := normalizePerson(p)
	if err != nil {
		return err
	}
	return s.Store.People().UpdatePerson(ctx, p)
}

// DeletePerson also removes the person's pets and their appointments.
func (s *ClinicService) DeletePerson(ctx context.Context, id int64) error {
	if err := checkID(id, "id"); err != nil {
		return err
	}
	if err := s.Store.People().DeletePerson(ctx, id); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("person deleted", "person_id", id)
	return nil
}

// Pets

func (s *ClinicService) ListPetsByPerson(ctx context.Context, personID int64) ([]domain.Pet, error) {
	if err := checkID(personID, "person id"); err != nil {
		return nil, err
	}
	return s.Store.Pets().ListPetsByPerson(ctx, personID)
}

func (s *ClinicService) CreatePet(ctx context.Context, p domain.Pet) (domain.Pet, error) {
	p, err := normalizePet(p)
	if err != nil {
		return domain.Pet{}, err
	}
	id, err := s.Store.Pets().CreatePet(ctx, p)
	if err != nil {
		return domain.Pet{}, err
	}
	p.ID = id
	return p, nil
}

func (s *ClinicService) UpdatePet(ctx context.Context, p domain.Pet) error {
	if err := checkID(p.ID, "id"); err != nil {
		return err
	}
	p, err := normalizePet(p)
	if err != nil {
		return err
	}
	return s.Store.Pets().UpdatePet(ctx, p)
}

func (s *ClinicService) DeletePet(ctx context.Context, id int64) error {
	if err := checkID(id, "id"); err != nil {
		return err
	}
	return s.Store.Pets().DeletePet(ctx, id)
}

// Appointments

func (s *ClinicService) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	return s.Store.Appointments().ListAppointments(ctx)
}

func (s *ClinicService) GetAppointment(ctx context.Context, id int64) (domain.Appointment, error) {
	if err := checkID(id, "id"); err != nil {
		return domain.Appointment{}, err
	}
	return s.Store.Appointments().GetAppointment(ctx, id)
}

func (s *ClinicService) CreateAppointment(ctx context.Context, a domain.Appointment) (domain.Appointment, error) {
	a, err := normalizeAppointment(a)
	if err != nil {
		return domain.Appointment{}, err
	}
	id, err := s.Store.Appointments().CreateAppointment(ctx, a)
	if err != nil {
		return domain.Appointment{}, err
	}
	a.ID = id
	slogx.FromContext(ctx).Info("appointment created", "appointment_id", id, "pet_id", a.PetID)
	return a, nil
}

func (s *ClinicService) UpdateAppointment(ctx context.Context, a domain.Appointment) error {
	if err := checkID(a.ID, "id"); err != nil {
		return err
	}
	a, err := normalizeAppointment(a)
	if err != nil {
		return err
	}
	return s.Store.Appointments().UpdateAppointment(ctx, a)
}

func (s *ClinicService) DeleteAppointment(ctx context.Context, id int64) error {
	if err := checkID(id, "id"); err != nil {
		return err
	}
	return s.Store.Appointments().DeleteAppointment(ctx, id)
}

// PersonOverview gathers a person, their pets and each pet's appointments.
// It returns store.ErrNotFound when the person does not exist.
func (s *ClinicService) PersonOverview(ctx context.Context, id int64) (domain.PersonOverview, error) {
	person, err := s.GetPerson(ctx, id)
	if err != nil {
		return domain.PersonOverview{}, err
	}

	pets, err := s.Store.Pets().ListPetsByPerson(ctx, id)
	if err != nil {
		return domain.PersonOverview{}, err
	}

	out := domain.PersonOverview{Person: person, Pets: make([]domain.PetOverview, 0, len(pets))}
	for _, pet := range pets {
		appts, err := s.Store.Appointments().ListAppointmentsByPet(ctx, pet.ID)
		if err != nil {
			return domain.PersonOverview{}, err
		}
		out.Pets = append(out.Pets, domain.PetOverview{Pet: pet, Appointments: appts})
	}
	return out, nil
}
