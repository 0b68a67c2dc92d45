package http

import (
	"net/http"

	"github.com/benjaminBJ/taller-api-rest/internal/vet/domain"
	"github.com/benjaminBJ/taller-api-rest/internal/vet/service"
	"github.com/benjaminBJ/taller-api-rest/pkg/httpx"
	"github.com/benjaminBJ/taller-api-rest/pkg/vetsdk"
)

type AppointmentsHandler struct {
	Clinic *service.ClinicService
}

// HandleList handles GET /v1/appointments
//
//	@Summary	List appointments
//	@Tags		Appointments
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		vetsdk.Appointment
//	@Failure	401	{object}	vetsdk.ErrorResponse	"message"
//	@Failure	500	{object}	vetsdk.ErrorResponse	"message"
//	@Router		/v1/appointments [get].
func (h *AppointmentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	appts, err := h.Clinic.ListAppointments(r.Context())
	if err != nil {
		writeError(w, r, err, "appointment")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(appts, toAppointment))
}

// HandleGet handles GET /v1/appointments/{id}
//
//	@Summary	Get an appointment
//	@Tags		Appointments
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Appointment id"
//	@Success	200	{object}	vetsdk.Appointment
//	@Failure	400	{object}	vetsdk.ErrorResponse	"message"
//	@Failure	401	{object}	vetsdk.ErrorResponse	"message"
//	@Failure	404	{object}	vetsdk.ErrorResponse	"message"
//	@Router		/v1/appointments/{id} [get].
func (h *AppointmentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	a, err := h.Clinic.GetAppointment(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "appointment")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAppointment(a))
}

// HandleCreate handles POST /v1/appointments
//
//	@Summary		Book an appointment
//	@Description	Admin only. Returns the id of the new appointment.
//	@Tags			Appointments
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		vetsdk.AppointmentRequest	true	"Appointment"
//	@Success		200		{object}	vetsdk.CreatedResponse
//	@Failure		400		{object}	vetsdk.ErrorResponse	"message"
//	@Failure		401		{object}	vetsdk.ErrorResponse	"message"
//	@Router			/v1/appointments [post].
func (h *AppointmentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req vetsdk.AppointmentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		vetsdk.ErrBadRequest.WriteError(w)
		return
	}

	a, err := h.Clinic.CreateAppointment(r.Context(), domain.Appointment{
		Date:         req.Date,
		Veterinarian: req.Veterinarian,
		PetID:        req.PetID,
	})
	if err != nil {
		writeError(w, r, err, "appointment")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vetsdk.CreatedResponse{ID: a.ID})
}

// HandleUpdate handles PUT /v1/appointments/{id}
//
//	@Summary	Replace an appointment
//	@Tags		Appointments
//	@Accept		json
//	@Security	BearerAuth
//	@Param		id		path	int							true	"Appointment id"
//	@Param		request	body	vetsdk.AppointmentRequest	true	"Appointment"
//	@Success	204
//	@Failure	400	{object}	vetsdk.ErrorResponse	"message"
//	@Failure	401	{object}	vetsdk.ErrorResponse	"message"
//	@Failure	404	{object}	vetsdk.ErrorResponse	"message"
//	@Router		/v1/appointments/{id} [put].
func (h *AppointmentsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req vetsdk.AppointmentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		vetsdk.ErrBadRequest.WriteError(w)
		return
	}

	err := h.Clinic.UpdateAppointment(r.Context(), domain.Appointment{
		ID:           id,
		Date:         req.Date,
		Veterinarian: req.Veterinarian,
		PetID:        req.PetID,
	})
	if err != nil {
		writeError(w, r, err, "appointment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles DELETE /v1/appointments/{id}
//
//	@Summary	Cancel an appointment
//	@Tags		Appointments
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Appointment id"
//	@Success	204
//	@Failure	401	{object}	vetsdk.ErrorResponse	"message"
//	@Failure	404	{object}	vetsdk.ErrorResponse	"message"
//	@Router		/v1/appointments/{id} [delete].
func (h *AppointmentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Clinic.DeleteAppointment(r.Context(), id); err != nil {
		writeError(w, r, err, "appointment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
