package competitions

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// CompetitionPatch carries the fields of a partial update. Nil pointers
// and nil slices mean "leave the stored value alone"; an empty non-nil
// slice replaces the stored list with an empty one.
type CompetitionPatch struct {
	Name                 *string
	About                *string
	CoverPhoto           *string
	ParticipantLimit     *int
	RegistrationDeadline *time.Time
	Mode                 *string
	Venue                *string
	DateStart            *time.Time
	DateEnd              *time.Time
	TimeStart            *string
	TimeEnd              *string
	ParticipationOptions []ParticipationOption
	CustomQuestions      []Question
	JudgingCriteria      []string
	PrizePool            []string

	// The clear flags push the matching temporal field back to unset;
	// each one wins over its pointer counterpart above.
	ClearRegistrationDeadline bool
	ClearDateStart            bool
	ClearDateEnd              bool
}

func (p CompetitionPatch) setDocument() bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.About != nil {
		set["about"] = *p.About
	}
	if p.CoverPhoto != nil {
		set["coverPhoto"] = *p.CoverPhoto
	}
	if p.ParticipantLimit != nil {
		set["participantLimit"] = *p.ParticipantLimit
	}
	if p.ClearRegistrationDeadline {
		set["registrationDeadline"] = nil
	} else if p.RegistrationDeadline != nil {
		set["registrationDeadline"] = *p.RegistrationDeadline
	}
	if p.Mode != nil {
		set["mode"] = *p.Mode
	}
	if p.Venue != nil {
		set["venue"] = *p.Venue
	}
	if p.ClearDateStart {
		set["dateStart"] = nil
	} else if p.DateStart != nil {
		set["dateStart"] = *p.DateStart
	}
	if p.ClearDateEnd {
		set["dateEnd"] = nil
	} else if p.DateEnd != nil {
		set["dateEnd"] = *p.DateEnd
	}
	if p.TimeStart != nil {
		set["timeStart"] = *p.TimeStart
	}
	if p.TimeEnd != nil {
		set["timeEnd"] = *p.TimeEnd
	}
	if p.ParticipationOptions != nil {
		set["participationOptions"] = p.ParticipationOptions
	}
	if p.CustomQuestions != nil {
		assignQuestionIDs(p.CustomQuestions)
		set["customQuestions"] = p.CustomQuestions
	}
	if p.JudgingCriteria != nil {
		set["judgingCriteria"] = p.JudgingCriteria
	}
	if p.PrizePool != nil {
		set["prizePool"] = p.PrizePool
	}
	return set
}

// FullPatch turns a complete document into a patch touching every
// editable field, for save flows that replace the whole form snapshot.
// Nil dates on the document clear the stored values.
func FullPatch(c Competition) CompetitionPatch {
	return CompetitionPatch{
		ClearRegistrationDeadline: c.RegistrationDeadline == nil,
		ClearDateStart:            c.DateStart == nil,
		ClearDateEnd:              c.DateEnd == nil,

		Name:                 &c.Name,
		About:                &c.About,
		CoverPhoto:           &c.CoverPhoto,
		ParticipantLimit:     &c.ParticipantLimit,
		RegistrationDeadline: c.RegistrationDeadline,
		Mode:                 &c.Mode,
		Venue:                &c.Venue,
		DateStart:            c.DateStart,
		DateEnd:              c.DateEnd,
		TimeStart:            &c.TimeStart,
		TimeEnd:              &c.TimeEnd,
		ParticipationOptions: c.ParticipationOptions,
		CustomQuestions:      c.CustomQuestions,
		JudgingCriteria:      c.JudgingCriteria,
		PrizePool:            c.PrizePool,
	}
}
