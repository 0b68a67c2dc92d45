package http

import (
	"github.com/benjaminBJ/taller-api-rest/internal/vet/domain"
	"github.com/benjaminBJ/taller-api-rest/pkg/vetsdk"
)

func toPerson(p domain.Person) vetsdk.Person {
	return vetsdk.Person{ID: p.ID, Name: p.Name, Email: p.Email, Phone: p.Phone}
}

func toPet(p domain.Pet) vetsdk.Pet {
	return vetsdk.Pet{ID: p.ID, Name: p.Name, Breed: p.Breed, PersonID: p.PersonID}
}

func toAppointment(a domain.Appointment) vetsdk.Appointment {
	return vetsdk.Appointment{ID: a.ID, Date: a.Date.UTC(), Veterinarian: a.Veterinarian, PetID: a.PetID}
}

func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

func toOverview(ov domain.PersonOverview) vetsdk.PersonOverview {
	pets := make([]vetsdk.PetOverview, len(ov.Pets))
	for i, p := range ov.Pets {
		pets[i] = vetsdk.PetOverview{
			ID:           p.ID,
			Name:         p.Name,
			Breed:        p.Breed,
			Appointments: mapSlice(p.Appointments, toAppointment),
		}
	}
	return vetsdk.PersonOverview{Person: toPerson(ov.Person), Pets: pets}
}
