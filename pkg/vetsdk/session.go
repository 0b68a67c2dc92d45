package vetsdk

import (
	"context"
	"net/http"
	"strconv"
)

// Session is an authenticated view of the API. There is no refresh: once
// the access token expires, authenticate again.
type Session struct {
	client      *Client
	accessToken string
}

func (s *Session) AccessToken() string { return s.accessToken }

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

// ============================================================================
// People
// ============================================================================

func (s *Session) ListPeople(ctx context.Context) ([]Person, error) {
	var out []Person
	if err := s.getJSON(ctx, "/v1/people", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) GetPerson(ctx context.Context, id int64) (*Person, error) {
	var p Person
	if err := s.getJSON(ctx, idPath("/v1/people", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePerson returns the stored person, id included.
func (s *Session) CreatePerson(ctx context.Context, req PersonRequest) (*Person, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/people", req)
	if err != nil {
		return nil, err
	}
	var p Person
	if err := decodeJSON(resp, &p, http.StatusCreated); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Session) UpdatePerson(ctx context.Context, id int64, req PersonRequest) error {
	return s.noContent(ctx, http.MethodPut, idPath("/v1/people", id), req)
}

func (s *Session) DeletePerson(ctx context.Context, id int64) error {
	return s.noContent(ctx, http.MethodDelete, idPath("/v1/people", id), nil)
}

func (s *Session) ListPetsByPerson(ctx context.Context, personID int64) ([]Pet, error) {
	var out []Pet
	if err := s.getJSON(ctx, idPath("/v1/people", personID)+"/pets", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) PersonOverview(ctx context.Context, personID int64) (*PersonOverview, error) {
	var ov PersonOverview
	if err := s.getJSON(ctx, idPath("/v1/people", personID)+"/overview", &ov); err != nil {
		return nil, err
	}
	return &ov, nil
}

// ============================================================================
// Pets
// ============================================================================

func (s *Session) CreatePet(ctx context.Context, req PetRequest) (*Pet, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/pets", req)
	if err != nil {
		return nil, err
	}
	var p Pet
	if err := decodeJSON(resp, &p, http.StatusCreated); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Session) UpdatePet(ctx context.Context, id int64, req PetRequest) error {
	return s.noContent(ctx, http.MethodPut, idPath("/v1/pets", id), req)
}

func (s *Session) DeletePet(ctx context.Context, id int64) error {
	return s.noContent(ctx, http.MethodDelete, idPath("/v1/pets", id), nil)
}

// ============================================================================
// Appointments
// ============================================================================

func (s *Session) ListAppointments(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	if err := s.getJSON(ctx, "/v1/appointments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) GetAppointment(ctx context.Context, id int64) (*Appointment, error) {
	var a Appointment
	if err := s.getJSON(ctx, idPath("/v1/appointments", id), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAppointment returns the id of the new appointment.
func (s *Session) CreateAppointment(ctx context.Context, req AppointmentRequest) (int64, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/appointments", req)
	if err != nil {
		return 0, err
	}
	var created CreatedResponse
	if err := decodeJSON(resp, &created, http.StatusOK); err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (s *Session) UpdateAppointment(ctx context.Context, id int64, req AppointmentRequest) error {
	return s.noContent(ctx, http.MethodPut, idPath("/v1/appointments", id), req)
}

func (s *Session) DeleteAppointment(ctx context.Context, id int64) error {
	return s.noContent(ctx, http.MethodDelete, idPath("/v1/appointments", id), nil)
}

func (s *Session) getJSON(ctx context.Context, path string, target any) error {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, http.StatusOK)
}

func (s *Session) noContent(ctx context.Context, method, path string, body any) error {
	resp, err := s.doAuthRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
