//go:build e2e

package vet_test

import (
	"testing"
	"time"

	"github.com/benjaminBJ/taller-api-rest/pkg/vetsdk"
	"github.com/stretchr/testify/require"
)

func TestClinicWorkflow(t *testing.T) {
	client := setupVetContainer(t, nil)
	ctx := t.Context()
	admin := login(t, client, "admin")
	reader := login(t, client, "user")

	owner, err := admin.CreatePerson(ctx, vetsdk.PersonRequest{Name: "Marta Díaz", Email: "marta@example.com", Phone: "+56 9 5555 0000"})
	require.NoError(t, err)

	dog, err := admin.CreatePet(ctx, vetsdk.PetRequest{Name: "Kira", Breed: "Border Collie", PersonID: owner.ID})
	require.NoError(t, err)
	cat, err := admin.CreatePet(ctx, vetsdk.PetRequest{Name: "Michi", Breed: "Siamese", PersonID: owner.ID})
	require.NoError(t, err)

	checkup := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	apptID, err := admin.CreateAppointment(ctx, vetsdk.AppointmentRequest{Date: checkup, Veterinarian: "Dr. Fuentes", PetID: dog.ID})
	require.NoError(t, err)

	require.NoError(t, admin.UpdateAppointment(ctx, apptID, vetsdk.AppointmentRequest{
		Date:         checkup.Add(time.Hour),
		Veterinarian: "Dr. Fuentes",
		PetID:        dog.ID,
	}))

	appt, err := reader.GetAppointment(ctx, apptID)
	require.NoError(t, err)
	require.True(t, checkup.Add(time.Hour).Equal(appt.Date))

	ov, err := reader.PersonOverview(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, ov.Pets, 2)
	for _, p := range ov.Pets {
		if p.ID == dog.ID {
			require.Len(t, p.Appointments, 1)
		} else {
			require.Empty(t, p.Appointments)
		}
	}

	require.NoError(t, admin.DeletePet(ctx, cat.ID))
	pets, err := reader.ListPetsByPerson(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, pets, 1)

	require.NoError(t, admin.DeletePerson(ctx, owner.ID))
	_, err = reader.GetAppointment(ctx, apptID)
	require.ErrorIs(t, err, vetsdk.ErrNotFound)
}

func TestInvalidReferencesAreBadRequests(t *testing.T) {
	client := setupVetContainer(t, nil)
	admin := login(t, client, "admin")

	_, err := admin.CreatePet(t.Context(), vetsdk.PetRequest{Name: "Ghost", PersonID: 9999})
	require.ErrorIs(t, err, vetsdk.ErrBadRequest)

	_, err = admin.CreateAppointment(t.Context(), vetsdk.AppointmentRequest{
		Date:         time.Now().UTC(),
		Veterinarian: "Dr. Nadie",
		PetID:        9999,
	})
	require.ErrorIs(t, err, vetsdk.ErrBadRequest)
}
