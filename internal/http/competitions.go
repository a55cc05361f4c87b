package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yashgoel75/kavyalok-admin/internal/competitions"
)

type createCompetitionRequest struct {
	Owner      string `json:"owner"`
	Name       string `json:"name"`
	About      string `json:"about"`
	CoverPhoto string `json:"coverPhoto"`

	ParticipationOptions []competitions.ParticipationOption `json:"participationOptions"`
	CustomQuestions      []competitions.Question            `json:"customQuestions"`

	ParticipantLimit int    `json:"participantLimit"`
	Mode             string `json:"mode"`
	Venue            string `json:"venue"`

	DateStart string `json:"dateStart"`
	DateEnd   string `json:"dateEnd"`
	TimeStart string `json:"timeStart"`
	TimeEnd   string `json:"timeEnd"`

	RegistrationDeadline string `json:"registrationDeadline"`

	JudgingCriteria []string `json:"judgingCriteria"`
	PrizePool       []string `json:"prizePool"`
}

type createCompetitionResponse struct {
	Success bool                      `json:"success"`
	Data    *competitions.Competition `json:"data,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

func createCompetitionError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, createCompetitionResponse{Success: false, Error: msg})
}

func (r *Router) handleCreateCompetition(w http.ResponseWriter, req *http.Request) {
	var in createCompetitionRequest
	if err := parseJSONBody(req, &in); err != nil {
		createCompetitionError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if in.Name == "" {
		createCompetitionError(w, http.StatusBadRequest, "Competition name is required.")
		return
	}
	if in.About == "" {
		createCompetitionError(w, http.StatusBadRequest, "Competition description is required.")
		return
	}
	if len(in.ParticipationOptions) == 0 {
		createCompetitionError(w, http.StatusBadRequest, "At least one participation option is required.")
		return
	}
	if err := validateQuestionTypes(in.CustomQuestions); err != nil {
		createCompetitionError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Owner == "" {
		createCompetitionError(w, http.StatusBadRequest, "Owner (admin ID) is required.")
		return
	}
	ownerID, err := primitive.ObjectIDFromHex(in.Owner)
	if err != nil {
		createCompetitionError(w, http.StatusBadRequest, "Owner (admin ID) is invalid.")
		return
	}
	owner, err := r.store.GetAdmin(req.Context(), ownerID)
	if err != nil {
		r.serverError(w, req, err)
		return
	}
	if owner == nil {
		createCompetitionError(w, http.StatusBadRequest, "Owner admin does not exist.")
		return
	}

	dateStart, err := parseDate(in.DateStart)
	if err != nil {
		createCompetitionError(w, http.StatusBadRequest, "Invalid dateStart.")
		return
	}
	dateEnd, err := parseDate(in.DateEnd)
	if err != nil {
		createCompetitionError(w, http.StatusBadRequest, "Invalid dateEnd.")
		return
	}
	deadline, err := parseDate(in.RegistrationDeadline)
	if err != nil {
		createCompetitionError(w, http.StatusBadRequest, "Invalid registrationDeadline.")
		return
	}

	c := &competitions.Competition{
		Owner:                ownerID,
		CoverPhoto:           in.CoverPhoto,
		Name:                 in.Name,
		About:                in.About,
		ParticipantLimit:     in.ParticipantLimit,
		RegistrationDeadline: deadline,
		Mode:                 in.Mode,
		Venue:                in.Venue,
		DateStart:            dateStart,
		DateEnd:              dateEnd,
		TimeStart:            in.TimeStart,
		TimeEnd:              in.TimeEnd,
		ParticipationOptions: in.ParticipationOptions,
		CustomQuestions:      in.CustomQuestions,
		JudgingCriteria:      in.JudgingCriteria,
		PrizePool:            in.PrizePool,
	}

	created, err := r.store.CreateCompetition(req.Context(), c)
	if err != nil {
		r.serverError(w, req, err)
		return
	}
	writeJSON(w, http.StatusCreated, createCompetitionResponse{Success: true, Data: created})
}

func (r *Router) handleListCompetitions(w http.ResponseWriter, req *http.Request) {
	list, err := r.store.ListCompetitions(req.Context())
	if err != nil {
		r.serverError(w, req, err)
		return
	}
	if list == nil {
		list = []competitions.Competition{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (r *Router) handleGetCompetition(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	c, err := r.store.GetCompetition(req.Context(), id)
	if err != nil {
		r.serverError(w, req, err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type updateCompetitionRequest struct {
	Name       *string `json:"name"`
	About      *string `json:"about"`
	CoverPhoto *string `json:"coverPhoto"`

	ParticipationOptions []competitions.ParticipationOption `json:"participationOptions"`
	CustomQuestions      []competitions.Question            `json:"customQuestions"`

	ParticipantLimit *int    `json:"participantLimit"`
	Mode             *string `json:"mode"`
	Venue            *string `json:"venue"`

	DateStart optionalDate `json:"dateStart"`
	DateEnd   optionalDate `json:"dateEnd"`
	TimeStart *string      `json:"timeStart"`
	TimeEnd   *string      `json:"timeEnd"`

	RegistrationDeadline optionalDate `json:"registrationDeadline"`

	JudgingCriteria []string `json:"judgingCriteria"`
	PrizePool       []string `json:"prizePool"`
}

func (r *Router) handleUpdateCompetition(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var in updateCompetitionRequest
	if err := parseJSONBody(req, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validateQuestionTypes(in.CustomQuestions); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := competitions.CompetitionPatch{
		Name:                 in.Name,
		About:                in.About,
		CoverPhoto:           in.CoverPhoto,
		ParticipantLimit:     in.ParticipantLimit,
		Mode:                 in.Mode,
		Venue:                in.Venue,
		TimeStart:            in.TimeStart,
		TimeEnd:              in.TimeEnd,
		ParticipationOptions: in.ParticipationOptions,
		CustomQuestions:      in.CustomQuestions,
		JudgingCriteria:      in.JudgingCriteria,
		PrizePool:            in.PrizePool,
	}

	if err := in.DateStart.apply(&patch.DateStart, &patch.ClearDateStart); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid dateStart")
		return
	}
	if err := in.DateEnd.apply(&patch.DateEnd, &patch.ClearDateEnd); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid dateEnd")
		return
	}
	if err := in.RegistrationDeadline.apply(&patch.RegistrationDeadline, &patch.ClearRegistrationDeadline); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid registrationDeadline")
		return
	}

	updated, err := r.store.UpdateCompetition(req.Context(), id, patch)
	if err != nil {
		r.serverError(w, req, err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (r *Router) handleDeleteCompetition(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	deleted, err := r.store.DeleteCompetition(req.Context(), id)
	if err != nil {
		r.serverError(w, req, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted successfully"})
}

// parseDate accepts RFC3339 or a bare date; an empty string leaves the
// field unset.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, &time.ParseError{Layout: time.RFC3339, Value: s}
}

func validateQuestionTypes(questions []competitions.Question) error {
	for _, q := range questions {
		if !competitions.ValidQuestionType(q.Type) {
			return fmt.Errorf("Invalid question type %q.", q.Type)
		}
	}
	return nil
}

// optionalDate tells an absent JSON field apart from an explicit null:
// absent leaves the stored value alone, null clears it.
type optionalDate struct {
	present bool
	value   *string
}

func (d *optionalDate) UnmarshalJSON(b []byte) error {
	d.present = true
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	d.value = &s
	return nil
}

func (d optionalDate) apply(target **time.Time, clear *bool) error {
	if !d.present {
		return nil
	}
	if d.value == nil {
		*clear = true
		return nil
	}
	t, err := parseDate(*d.value)
	if err != nil {
		return err
	}
	*target = t
	return nil
}
