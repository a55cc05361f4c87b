package http

import (
	"errors"
	"net/http"

	"github.com/yashgoel75/kavyalok-admin/internal/competitions"
)

type createRegistrationRequest struct {
	ParticipantName  string `json:"participantName"`
	ParticipantEmail string `json:"participantEmail"`

	ChosenParticipationOption competitions.ParticipationOption `json:"chosenParticipationOption"`

	Responses []competitions.QuestionResponse `json:"responses"`
}

func (r *Router) handleCreateRegistration(w http.ResponseWriter, req *http.Request) {
	competitionID, ok := pathID(req)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var in createRegistrationRequest
	if err := parseJSONBody(req, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if in.ParticipantEmail == "" {
		writeError(w, http.StatusBadRequest, "participantEmail is required")
		return
	}
	if in.ChosenParticipationOption.Label == "" {
		writeError(w, http.StatusBadRequest, "chosenParticipationOption is required")
		return
	}

	reg := &competitions.Registration{
		Competition:               competitionID,
		ParticipantName:           in.ParticipantName,
		ParticipantEmail:          in.ParticipantEmail,
		ChosenParticipationOption: in.ChosenParticipationOption,
		Responses:                 in.Responses,
	}

	created, err := r.store.CreateRegistration(req.Context(), reg)
	if err != nil {
		switch {
		case errors.Is(err, competitions.ErrCompetitionNotFound):
			writeError(w, http.StatusNotFound, "Not found")
		case errors.Is(err, competitions.ErrInvalidRegistration):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, competitions.ErrDuplicateRegistration):
			writeError(w, http.StatusConflict, err.Error())
		default:
			r.serverError(w, req, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (r *Router) handleListRegistrations(w http.ResponseWriter, req *http.Request) {
	competitionID, ok := pathID(req)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	list, err := r.store.ListRegistrations(req.Context(), competitionID)
	if err != nil {
		r.serverError(w, req, err)
		return
	}
	if list == nil {
		list = []competitions.Registration{}
	}
	writeJSON(w, http.StatusOK, list)
}

type paymentStatusRequest struct {
	Status     competitions.PaymentStatus `json:"status"`
	PaidAmount float64                    `json:"paidAmount"`
}

func (r *Router) handleSetPaymentStatus(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var in paymentStatusRequest
	if err := parseJSONBody(req, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if in.Status != competitions.PaymentCompleted && in.Status != competitions.PaymentFailed {
		writeError(w, http.StatusBadRequest, "status must be completed or failed")
		return
	}

	updated, err := r.store.SetPaymentStatus(req.Context(), id, in.Status, in.PaidAmount)
	if err != nil {
		if errors.Is(err, competitions.ErrPaymentFinalized) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		r.serverError(w, req, err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

type registrationStatusRequest struct {
	Status competitions.RegistrationStatus `json:"status"`
}

func (r *Router) handleSetRegistrationStatus(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var in registrationStatusRequest
	if err := parseJSONBody(req, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if in.Status != competitions.StatusAttended && in.Status != competitions.StatusCancelled {
		writeError(w, http.StatusBadRequest, "status must be attended or cancelled")
		return
	}

	updated, err := r.store.SetRegistrationStatus(req.Context(), id, in.Status)
	if err != nil {
		if errors.Is(err, competitions.ErrStatusFinalized) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		r.serverError(w, req, err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
