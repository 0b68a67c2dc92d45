package sqlite

import "github.com/benjaminBJ/taller-api-rest/internal/vet/store"

// SQLite has no stored procedures. Each name maps onto one statement whose
// numbered parameters follow the procedure's argument order.
var procedures = map[string]string{
	store.ProcAppointmentsGetAll: `
		SELECT id, date, veterinarian, pet_id
		FROM appointments
		ORDER BY date, id`,
	store.ProcAppointmentsGetByID: `
		SELECT id, date, veterinarian, pet_id
		FROM appointments
		WHERE id = ?1`,
	store.ProcAppointmentsGetByPet: `
		SELECT id, date, veterinarian, pet_id
		FROM appointments
		WHERE pet_id = ?1
		ORDER BY date, id`,
	store.ProcAppointmentCreate: `
		INSERT INTO appointments (date, veterinarian, pet_id)
		VALUES (?1, ?2, ?3)
		RETURNING id`,
	store.ProcAppointmentUpdate: `
		UPDATE appointments
		SET date = ?2, veterinarian = ?3, pet_id = ?4
		WHERE id = ?1`,
	store.ProcAppointmentDelete: `DELETE FROM appointments WHERE id = ?1`,

	store.ProcPeopleGetAll: `
		SELECT id, name, email, phone
		FROM people
		ORDER BY id`,
	store.ProcPeopleGetByID: `
		SELECT id, name, email, phone
		FROM people
		WHERE id = ?1`,
	store.ProcPersonCreate: `
		INSERT INTO people (name, email, phone)
		VALUES (?1, ?2, ?3)
		RETURNING id`,
	store.ProcPersonUpdate: `
		UPDATE people
		SET name = ?2, email = ?3, phone = ?4
		WHERE id = ?1`,
	store.ProcPersonDelete: `DELETE FROM people WHERE id = ?1`,

	store.ProcPetsGetByPerson: `
		SELECT id, name, breed, person_id
		FROM pets
		WHERE person_id = ?1
		ORDER BY id`,
	store.ProcPetCreate: `
		INSERT INTO pets (name, breed, person_id)
		VALUES (?1, ?2, ?3)
		RETURNING id`,
	store.ProcPetUpdate: `
		UPDATE pets
		SET name = ?2, breed = ?3, person_id = ?4
		WHERE id = ?1`,
	store.ProcPetDelete: `DELETE FROM pets WHERE id = ?1`,
}
