package http

import (
	"net/http"
	"strconv"

	"github.com/benjaminBJ/taller-api-rest/internal/vet/domain"
	"github.com/benjaminBJ/taller-api-rest/internal/vet/service"
	"github.com/benjaminBJ/taller-api-rest/pkg/httpx"
	"github.com/benjaminBJ/taller-api-rest/pkg/vetsdk"
)

type PetsHandler struct {
	Clinic *service.ClinicService
}

// HandleCreate handles POST /v1/pets
//
//	@Summary	Register a pet
//	@Tags		Pets
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		vetsdk.PetRequest	true	"Pet"
//	@Success	201		{object}	vetsdk.Pet
//	@Failure	400		{object}	vetsdk.ErrorResponse	"message"
//	@Failure	401		{object}	vetsdk.ErrorResponse	"message"
//	@Router		/v1/pets [post].
func (h *PetsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req vetsdk.PetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		vetsdk.ErrBadRequest.WriteError(w)
		return
	}

	p, err := h.Clinic.CreatePet(r.Context(), domain.Pet{
		Name:     req.Name,
		Breed:    req.Breed,
		PersonID: req.PersonID,
	})
	if err != nil {
		writeError(w, r, err, "pet")
		return
	}
	w.Header().Set("Location", "/v1/pets/"+strconv.FormatInt(p.ID, 10))
	httpx.WriteJSON(w, http.StatusCreated, toPet(p))
}

// HandleUpdate handles PUT /v1/pets/{id}
//
//	@Summary	Replace a pet
//	@Tags		Pets
//	@Accept		json
//	@Security	BearerAuth
//	@Param		id		path	int					true	"Pet id"
//	@Param		request	body	vetsdk.PetRequest	true	"Pet"
//	@Success	204
//	@Failure	400	{object}	vetsdk.ErrorResponse	"message"
//	@Failure	404	{object}	vetsdk.ErrorResponse	"message"
//	@Router		/v1/pets/{id} [put].
func (h *PetsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req vetsdk.PetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		vetsdk.ErrBadRequest.WriteError(w)
		return
	}

	err := h.Clinic.UpdatePet(r.Context(), domain.Pet{
		ID:       id,
		Name:     req.Name,
		Breed:    req.Breed,
		PersonID: req.PersonID,
	})
	if err != nil {
		writeError(w, r, err, "pet")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles DELETE /v1/pets/{id}
//
//	@Summary	Remove a pet
//	@Tags		Pets
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Pet id"
//	@Success	204
//	@Failure	404	{object}	vetsdk.ErrorResponse	"message"
//	@Router		/v1/pets/{id} [delete].
func (h *PetsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Clinic.DeletePet(r.Context(), id); err != nil {
		writeError(w, r, err, "pet")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
