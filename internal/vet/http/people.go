package http

import (
	"net/http"
	"strconv"

	"github.com/benjaminBJ/taller-api-rest/internal/vet/domain"
	"github.com/benjaminBJ/taller-api-rest/internal/vet/service"
	"github.com/benjaminBJ/taller-api-rest/pkg/httpx"
	"github.com/benjaminBJ/taller-api-rest/pkg/vetsdk"
)

type PeopleHandler struct {
	Clinic *service.ClinicService
}

// HandleList handles GET /v1/people
//
//	@Summary	List people
//	@Tags		People
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		vetsdk.Person
//	@Failure	401	{object}	vetsdk.ErrorResponse	"message"
//	@Router		/v1/people [get].
func (h *PeopleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	people, err := h.Clinic.ListPeople(r.Context())
	if err != nil {
		writeError(w, r, err, "person")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(people, toPerson))
}

// HandleGet handles GET /v1/people/{id}
//
//	@Summary	Get a person
//	@Tags		People
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Person id"
//	@Success	200	{object}	vetsdk.Person
//	@Failure	404	{object}	vetsdk.ErrorResponse	"message"
//	@Router		/v1/people/{id} [get].
func (h *PeopleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.Clinic.GetPerson(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "person")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPerson(p))
}

// HandleCreate handles POST /v1/people
//
//	@Summary		Register a person
//	@Description	Admin only. Answers 201 with the stored person and its Location.
//	@Tags			People
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		vetsdk.PersonRequest	true	"Person"
//	@Success		201		{object}	vetsdk.Person
//	@Failure		400		{object}	vetsdk.ErrorResponse	"message"
//	@Failure		401		{object}	vetsdk.ErrorResponse	"message"
//	@Router			/v1/people [post].
func (h *PeopleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req vetsdk.PersonRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		vetsdk.ErrBadRequest.WriteError(w)
		return
	}

	p, err := h.Clinic.CreatePerson(r.Context(), domain.Person{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		writeError(w, r, err, "person")
		return
	}
	w.Header().Set("Location", "/v1/people/"+strconv.FormatInt(p.ID, 10))
	httpx.WriteJSON(w, http.StatusCreated, toPerson(p))
}

// HandleUpdate handles PUT /v1/people/{id}
//
//	@Summary	Replace a person
//	@Tags		People
//	@Accept		json
//	@Security	BearerAuth
//	@Param		id		path	int						true	"Person id"
//	@Param		request	body	vetsdk.PersonRequest	true	"Person"
//	@Success	204
//	@Failure	400	{object}	vetsdk.ErrorResponse	"message"
//	@Failure	404	{object}	vetsdk.ErrorResponse	"message"
//	@Router		/v1/people/{id} [put].
func (h *PeopleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req vetsdk.PersonRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		vetsdk.ErrBadRequest.WriteError(w)
		return
	}

	err := h.Clinic.UpdatePerson(r.Context(), domain.Person{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		writeError(w, r, err, "person")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles DELETE /v1/people/{id}
//
//	@Summary		Remove a person
//	@Description	Also removes the person's pets and their appointments.
//	@Tags			People
//	@Security		BearerAuth
//	@Param			id	path	int	true	"Person id"
//	@Success		204
//	@Failure		404	{object}	vetsdk.ErrorResponse	"message"
//	@Router			/v1/people/{id} [delete].
func (h *PeopleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Clinic.DeletePerson(r.Context(), id); err != nil {
		writeError(w, r, err, "person")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListPets handles GET /v1/people/{id}/pets
//
//	@Summary	List a person's pets
//	@Tags		People
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Person id"
//	@Success	200	{array}	vetsdk.Pet
//	@Router		/v1/people/{id}/pets [get].
func (h *PeopleHandler) HandleListPets(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	pets, err := h.Clinic.ListPetsByPerson(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "person")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(pets, toPet))
}

// HandleOverview handles GET /v1/people/{id}/overview
//
//	@Summary		Person overview
//	@Description	The person with every pet they own and each pet's appointments.
//	@Tags			People
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Person id"
//	@Success		200	{object}	vetsdk.PersonOverview
//	@Failure		404	{object}	vetsdk.ErrorResponse	"message"
//	@Router			/v1/people/{id}/overview [get].
func (h *PeopleHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ov, err := h.Clinic.PersonOverview(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "person")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOverview(ov))
}
