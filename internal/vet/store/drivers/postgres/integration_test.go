//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/benjaminBJ/taller-api-rest/internal/vet/domain"
	"github.com/benjaminBJ/taller-api-rest/internal/vet/store"
	"github.com/benjaminBJ/taller-api-rest/internal/vet/store/drivers/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "vet",
				"POSTGRES_PASSWORD": "vet",
				"POSTGRES_DB":       "vet",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://vet:vet@%s:%s/vet?sslmode=disable", host, port.Port())
}

func TestPostgresProcedures(t *testing.T) {
	ctx := context.Background()

	s, err := postgres.NewStore(startPostgres(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.ApplyMigrations(ctx))
	require.NoError(t, s.ApplyMigrations(ctx))

	owner, err := s.People().CreatePerson(ctx, domain.Person{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	pet, err := s.Pets().CreatePet(ctx, domain.Pet{Name: "Rex", Breed: "Beagle", PersonID: owner})
	require.NoError(t, err)

	when := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	appt, err := s.Appointments().CreateAppointment(ctx, domain.Appointment{Date: when, Veterinarian: "Dr. Soto", PetID: pet})
	require.NoError(t, err)

	got, err := s.Appointments().GetAppointment(ctx, appt)
	require.NoError(t, err)
	require.True(t, when.Equal(got.Date))

	people, err := s.People().ListPeople(ctx)
	require.NoError(t, err)
	require.Len(t, people, 1)

	require.NoError(t, s.People().UpdatePerson(ctx, domain.Person{ID: owner, Name: "Ana B"}))
	require.ErrorIs(t, s.People().UpdatePerson(ctx, domain.Person{ID: owner + 1, Name: "x"}), store.ErrNotFound)

	require.NoError(t, s.People().DeletePerson(ctx, owner))
	_, err = s.Appointments().GetAppointment(ctx, appt)
	require.ErrorIs(t, err, store.ErrNotFound)
}
