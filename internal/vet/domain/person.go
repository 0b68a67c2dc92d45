package domain

// Person is a pet owner registered with the clinic.
type Person struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

// PersonOverview is a person with every pet they own and each pet's
// appointments.
type PersonOverview struct {
	Person
	Pets []PetOverview
}

type PetOverview struct {
	Pet
	Appointments []Appointment
}
