package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/benjaminBJ/taller-api-rest/internal/vet/domain"
	"github.com/benjaminBJ/taller-api-rest/internal/vet/service"
	"github.com/benjaminBJ/taller-api-rest/internal/vet/store"
	"github.com/benjaminBJ/taller-api-rest/pkg/httpx"
	"github.com/benjaminBJ/taller-api-rest/pkg/slogx"

	_ "github.com/benjaminBJ/taller-api-rest/api/vet" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store         store.Store
	TokenService  *service.TokenService
	ClinicService *service.ClinicService

	// Shared by every route of a kind so a principal has one read bucket
	// and one write bucket.
	readLimiter  httpx.Middleware
	writeLimiter httpx.Middleware
}

func NewRouter(
	tokens *service.TokenService,
	clinic *service.ClinicService,
	st store.Store,
	buildVersion string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		logger:        logger,
		store:         st,
		TokenService:  tokens,
		ClinicService: clinic,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}
	r.readLimiter = httpx.RateLimitByUser(httpx.ReadLimit)
	r.writeLimiter = httpx.RateLimitByUser(httpx.WriteLimit)

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAppointments()
	r.registerPeople()
	r.registerPets()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Veterinary Clinic API
//	@version		1.0.0
//	@description	Manages the people, pets and appointments of a veterinary clinic.
//	@description
//	@description				Tokens are HS256 JWTs issued by /v1/auth/authentication. Reads need the admin or user role, writes need admin.
//
//	@contact.name				Clinic API Team
//	@contact.url				https://github.com/benjaminBJ/taller-api-rest
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// roleCheck parses the principal as a Role and asks allow about it.
func roleCheck(allow func(domain.Role) bool) httpx.RoleCheck {
	return func(user string) (bool, bool) {
		role, ok := domain.ParseRole(user)
		return ok, ok && allow(role)
	}
}

func (r *Router) read(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.TokenService.Verifier(), r.TokenService),
		httpx.RequireRole(roleCheck(domain.Role.CanRead)),
		r.readLimiter,
	)
}

func (r *Router) write(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.TokenService.Verifier(), r.TokenService),
		httpx.RequireRole(roleCheck(domain.Role.CanMutate)),
		r.writeLimiter,
	)
}

func (r *Router) registerAuth() {
	// Limited by IP and user name to slow down password guessing.
	r.Mux.Handle("GET /v1/auth/authentication",
		httpx.Chain(&AuthenticationHandler{TokenService: r.TokenService},
			httpx.RateLimitLogin(httpx.StrictLimit, "user"),
		),
	)
}

func (r *Router) registerAppointments() {
	h := &AppointmentsHandler{Clinic: r.ClinicService}

	r.Mux.Handle("GET /v1/appointments", r.read(h.HandleList))
	r.Mux.Handle("GET /v1/appointments/{id}", r.read(h.HandleGet))
	r.Mux.Handle("POST /v1/appointments", r.write(h.HandleCreate))
	r.Mux.Handle("PUT /v1/appointments/{id}", r.write(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/appointments/{id}", r.write(h.HandleDelete))
}

func (r *Router) registerPeople() {
	h := &PeopleHandler{Clinic: r.ClinicService}

	r.Mux.Handle("GET /v1/people", r.read(h.HandleList))
	r.Mux.Handle("GET /v1/people/{id}", r.read(h.HandleGet))
	r.Mux.Handle("GET /v1/people/{id}/pets", r.read(h.HandleListPets))
	r.Mux.Handle("GET /v1/people/{id}/overview", r.read(h.HandleOverview))
	r.Mux.Handle("POST /v1/people", r.write(h.HandleCreate))
	r.Mux.Handle("PUT /v1/people/{id}", r.write(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/people/{id}", r.write(h.HandleDelete))
}

func (r *Router) registerPets() {
	h := &PetsHandler{Clinic: r.ClinicService}

	r.Mux.Handle("POST /v1/pets", r.write(h.HandleCreate))
	r.Mux.Handle("PUT /v1/pets/{id}", r.write(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/pets/{id}", r.write(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
