package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	vethttp "github.com/benjaminBJ/taller-api-rest/internal/vet/http"
	"github.com/benjaminBJ/taller-api-rest/internal/vet/service"
	"github.com/benjaminBJ/taller-api-rest/internal/vet/store/drivers/sqlite"
	"github.com/benjaminBJ/taller-api-rest/pkg/httpx"
	"github.com/benjaminBJ/taller-api-rest/pkg/vetsdk"
	"github.com/stretchr/testify/require"
)

func testTokenConfig() service.TokenConfig {
	return service.TokenConfig{
		Key:        strings.Repeat("k", 32),
		Issuer:     "vet-api",
		Audience:   "vet-clients",
		AccessTTL:  10 * time.Minute,
		RefreshTTL: time.Hour,
	}
}

type testServer struct {
	*httptest.Server
	tokens *service.TokenService
	client *vetsdk.Client
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "clinic.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations(context.Background()))

	tokens, err := service.NewTokenService(testTokenConfig())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := vethttp.NewRouter(tokens, &service.ClinicService{Store: st}, st, "test", logger)
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, tokens: tokens, client: vetsdk.NewClient(srv.URL)}
}

func (s *testServer) session(t *testing.T, user string) *vetsdk.Session {
	t.Helper()
	sess, err := s.client.Authenticate(context.Background(), user, user)
	require.NoError(t, err)
	return sess
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (*http.Response, vetsdk.ErrorResponse) {
	t.Helper()
	req, err := http.NewRequest(method, s.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var msg vetsdk.ErrorResponse
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &msg)
	return resp, msg
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	tok, err := s.client.Token(ctx, "admin", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tok.AccessToken)
	require.NotEmpty(t, tok.RefreshToken)
	require.Equal(t, "Bearer", tok.TokenType)
	require.True(t, tok.RefreshExpiresAt.After(tok.ExpiresAt))

	_, err = s.client.Token(ctx, "admin", "wrong")
	require.ErrorIs(t, err, vetsdk.ErrInvalidCredentials)

	_, err = s.client.Token(ctx, "nobody", "nobody")
	require.ErrorIs(t, err, vetsdk.ErrInvalidCredentials)
}

func TestProtectedRoutesNeedBearerToken(t *testing.T) {
	s := newTestServer(t)

	resp, msg := s.do(t, http.MethodGet, "/v1/people", "", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, resp.Header.Get("WWW-Authenticate"), "invalid_token")
	require.Equal(t, "missing bearer token", msg.Message)

	resp, _ = s.do(t, http.MethodGet, "/v1/people", "not.a.jwt", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshTokenAuthorizesLikeAccessToken(t *testing.T) {
	s := newTestServer(t)

	tok, err := s.client.Token(context.Background(), "admin", "admin")
	require.NoError(t, err)

	claims, err := s.tokens.Verifier().Verify(tok.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, true, claims["is_refresh"])
	require.True(t, s.tokens.ValidateTokenData(claims))

	resp, _ := s.do(t, http.MethodGet, "/v1/people", tok.RefreshToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/v1/people", tok.RefreshToken, `{"name":"Ana"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestExpiredTokenRejected(t *testing.T) {
	s := newTestServer(t)

	past, err := service.NewTokenService(testTokenConfig(),
		service.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }))
	require.NoError(t, err)
	pair, err := past.Issue("admin")
	require.NoError(t, err)

	resp, msg := s.do(t, http.MethodGet, "/v1/people", pair.AccessToken, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "token expired or incomplete", msg.Message)
}

func TestRoleGating(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	user := s.session(t, "user")
	people, err := user.ListPeople(ctx)
	require.NoError(t, err)
	require.Empty(t, people)

	resp, msg := s.do(t, http.MethodPost, "/v1/people", user.AccessToken(), `{"name":"Ana"}`)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, httpx.MsgNoPermission, msg.Message)

	stranger, err := s.tokens.Issue("mallory")
	require.NoError(t, err)
	resp, msg = s.do(t, http.MethodGet, "/v1/people", stranger.AccessToken, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, httpx.MsgInvalidUser, msg.Message)
}

func TestClinicLifecycle(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	admin := s.session(t, "admin")

	person, err := admin.CreatePerson(ctx, vetsdk.PersonRequest{Name: "Ana", Email: "ana@example.com", Phone: "555"})
	require.NoError(t, err)
	require.Positive(t, person.ID)

	got, err := admin.GetPerson(ctx, person.ID)
	require.NoError(t, err)
	require.Equal(t, *person, *got)

	require.NoError(t, admin.UpdatePerson(ctx, person.ID, vetsdk.PersonRequest{Name: "Ana Soto", Email: "ana@example.com"}))
	got, err = admin.GetPerson(ctx, person.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana Soto", got.Name)

	pet, err := admin.CreatePet(ctx, vetsdk.PetRequest{Name: "Toby", Breed: "Beagle", PersonID: person.ID})
	require.NoError(t, err)

	when := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	apptID, err := admin.CreateAppointment(ctx, vetsdk.AppointmentRequest{Date: when, Veterinarian: "Dr. Rojas", PetID: pet.ID})
	require.NoError(t, err)

	appt, err := admin.GetAppointment(ctx, apptID)
	require.NoError(t, err)
	require.True(t, when.Equal(appt.Date))
	require.Equal(t, pet.ID, appt.PetID)

	pets, err := admin.ListPetsByPerson(ctx, person.ID)
	require.NoError(t, err)
	require.Len(t, pets, 1)

	ov, err := admin.PersonOverview(ctx, person.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana Soto", ov.Name)
	require.Len(t, ov.Pets, 1)
	require.Len(t, ov.Pets[0].Appointments, 1)
	require.Equal(t, "Dr. Rojas", ov.Pets[0].Appointments[0].Veterinarian)

	require.NoError(t, admin.DeletePerson(ctx, person.ID))

	appts, err := admin.ListAppointments(ctx)
	require.NoError(t, err)
	require.Empty(t, appts, "appointments cascade with their pet's owner")

	_, err = admin.GetPerson(ctx, person.ID)
	require.ErrorIs(t, err, vetsdk.ErrNotFound)
}

func TestCreatePersonSetsLocation(t *testing.T) {
	s := newTestServer(t)
	admin := s.session(t, "admin")

	resp, _ := s.do(t, http.MethodPost, "/v1/people", admin.AccessToken(), `{"name":"Luis"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Regexp(t, `^/v1/people/\d+$`, resp.Header.Get("Location"))
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(t)
	tok := s.session(t, "admin").AccessToken()

	cases := []struct {
		name, method, path, body string
	}{
		{"malformed json", http.MethodPost, "/v1/people", `{"name":`},
		{"unknown field", http.MethodPost, "/v1/people", `{"name":"A","age":3}`},
		{"blank name", http.MethodPost, "/v1/people", `{"name":"  "}`},
		{"non numeric id", http.MethodGet, "/v1/people/abc", ""},
		{"zero id", http.MethodDelete, "/v1/pets/0", ""},
		{"missing owner", http.MethodPost, "/v1/pets", `{"name":"Rex","person_id":999}`},
		{"missing pet", http.MethodPost, "/v1/appointments", `{"date":"2025-01-01T09:00:00Z","veterinarian":"Dr. X","pet_id":999}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, msg := s.do(t, tc.method, tc.path, tok, tc.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			require.NotEmpty(t, msg.Message)
		})
	}
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t)
	tok := s.session(t, "admin").AccessToken()

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/v1/people/42", ""},
		{http.MethodGet, "/v1/people/42/overview", ""},
		{http.MethodPut, "/v1/people/42", `{"name":"Nadie"}`},
		{http.MethodDelete, "/v1/people/42", ""},
		{http.MethodDelete, "/v1/pets/42", ""},
		{http.MethodGet, "/v1/appointments/42", ""},
		{http.MethodDelete, "/v1/appointments/42", ""},
	} {
		resp, msg := s.do(t, tc.method, tc.path, tok, tc.body)
		require.Equal(t, http.StatusNotFound, resp.StatusCode, "%s %s", tc.method, tc.path)
		require.Contains(t, msg.Message, "not found")
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	live, err := s.client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := s.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}

func TestLoginRateLimited(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	var limited error
	for range httpx.StrictLimit.Burst + 1 {
		if _, err := s.client.Token(ctx, "admin", "nope"); !errors.Is(err, vetsdk.ErrInvalidCredentials) {
			limited = err
		}
	}
	require.ErrorIs(t, limited, vetsdk.ErrTooManyRequests)
}

func TestWritesHaveTheirOwnLimit(t *testing.T) {
	s := newTestServer(t)
	tok := s.session(t, "admin").AccessToken()

	// Every write route draws from the same per-user bucket.
	for i := range httpx.WriteLimit.Burst {
		resp, _ := s.do(t, http.MethodDelete, "/v1/pets/999", tok, "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode, "write %d", i)
	}

	resp, _ := s.do(t, http.MethodPost, "/v1/people", tok, `{"name":"Ana"}`)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, strconv.Itoa(httpx.WriteLimit.Requests), resp.Header.Get("X-RateLimit-Limit"))

	resp, _ = s.do(t, http.MethodGet, "/v1/people", tok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, "reads use a separate bucket")
}
