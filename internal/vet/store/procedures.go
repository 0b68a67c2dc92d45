package store

// Stored procedure names. Argument order is part of the contract and is
// shown next to each name.
const (
	ProcAppointmentsGetAll   = "appointments_get_all"    // ()
	ProcAppointmentsGetByID  = "appointments_get_by_id"  // (id)
	ProcAppointmentsGetByPet = "appointments_get_by_pet" // (pet_id)
	ProcAppointmentCreate    = "appointment_create"      // (date, veterinarian, pet_id) -> id
	ProcAppointmentUpdate    = "appointment_update"      // (id, date, veterinarian, pet_id) -> affected
	ProcAppointmentDelete    = "appointment_delete"      // (id) -> affected

	ProcPeopleGetAll  = "people_get_all"   // ()
	ProcPeopleGetByID = "people_get_by_id" // (id)
	ProcPersonCreate  = "person_create"    // (name, email, phone) -> id
	ProcPersonUpdate  = "person_update"    // (id, name, email, phone) -> affected
	ProcPersonDelete  = "person_delete"    // (id) -> affected

	ProcPetsGetByPerson = "pets_get_by_person" // (person_id)
	ProcPetCreate       = "pet_create"         // (name, breed, person_id) -> id
	ProcPetUpdate       = "pet_update"         // (id, name, breed, person_id) -> affected
	ProcPetDelete       = "pet_delete"         // (id) -> affected
)

// Procedures lists every name a driver has to provide.
var Procedures = []string{
	ProcAppointmentsGetAll,
	ProcAppointmentsGetByID,
	ProcAppointmentsGetByPet,
	ProcAppointmentCreate,
	ProcAppointmentUpdate,
	ProcAppointmentDelete,
	ProcPeopleGetAll,
	ProcPeopleGetByID,
	ProcPersonCreate,
	ProcPersonUpdate,
	ProcPersonDelete,
	ProcPetsGetByPerson,
	ProcPetCreate,
	ProcPetUpdate,
	ProcPetDelete,
}
