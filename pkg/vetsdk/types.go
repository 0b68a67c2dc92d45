package vetsdk

import "time"

// ============================================================================
// Auth Types
// ============================================================================

// TokenResponse is returned by the authentication endpoint.
type TokenResponse struct {
	// AccessToken authorizes API calls as a Bearer token.
	AccessToken string `json:"access_token"`

	// ExpiresAt is when the access token stops being accepted (UTC).
	ExpiresAt time.Time `json:"expires_at"`

	// RefreshToken is issued alongside; the API does not exchange it.
	RefreshToken string `json:"refresh_token"`

	RefreshExpiresAt time.Time `json:"refresh_expires_at"`

	// TokenType is always "Bearer".
	TokenType string `json:"token_type"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Clinic Types
// ============================================================================

type Person struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// PersonRequest is the body for creating or replacing a person.
type PersonRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Pet struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Breed    string `json:"breed"`
	PersonID int64  `json:"person_id"`
}

// PetRequest is the body for creating or replacing a pet.
type PetRequest struct {
	Name     string `json:"name"`
	Breed    string `json:"breed"`
	PersonID int64  `json:"person_id"`
}

type Appointment struct {
	ID           int64     `json:"id"`
	Date         time.Time `json:"date"`
	Veterinarian string    `json:"veterinarian"`
	PetID        int64     `json:"pet_id"`
}

// AppointmentRequest is the body for creating or replacing an appointment.
// Date is RFC 3339.
type AppointmentRequest struct {
	Date         time.Time `json:"date"`
	Veterinarian string    `json:"veterinarian"`
	PetID        int64     `json:"pet_id"`
}

// CreatedResponse carries the id of a newly created appointment.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// PersonOverview is a person with their pets and each pet's appointments.
type PersonOverview struct {
	Person
	Pets []PetOverview `json:"pets"`
}

type PetOverview struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Breed        string        `json:"breed"`
	Appointments []Appointment `json:"appointments"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is served by /livez and /readyz (the latter with Checks).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
