package domain

import "time"

type Appointment struct {
	ID           int64
	Date         time.Time // UTC
	Veterinarian string
	PetID        int64
}
