// Package forms models the dashboard's competition editor: a form that
// mirrors the stored document, takes optimistic local edits as
// copy-on-write snapshots, and only commits on an explicit save.
package forms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yashgoel75/kavyalok-admin/internal/competitions"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type State string

const (
	StateViewing State = "viewing"
	StateEditing State = "editing"
	StateSaving  State = "saving"
)

var (
	ErrNotViewing = errors.New("form is not in viewing state")
	ErrNotEditing = errors.New("form is not in editing state")
)

// Updater pushes a full form snapshot to the server and returns the
// document the server actually stored.
type Updater interface {
	UpdateCompetition(ctx context.Context, id primitive.ObjectID, patch competitions.CompetitionPatch) (*competitions.Competition, error)
}

// Editor holds two copies of a competition: the last server response
// and the working form. Every edit replaces the form with a fresh deep
// copy, so Cancel can always restore the server copy exactly.
type Editor struct {
	state  State
	server competitions.Competition
	form   competitions.Competition
}

func NewEditor(doc competitions.Competition) *Editor {
	return &Editor{
		state:  StateViewing,
		server: cloneCompetition(doc),
		form:   cloneCompetition(doc),
	}
}

func (e *Editor) State() State { return e.state }

// Document returns the server-truth copy.
func (e *Editor) Document() competitions.Competition {
	return cloneCompetition(e.server)
}

// Form returns the current form snapshot.
func (e *Editor) Form() competitions.Competition {
	return cloneCompetition(e.form)
}

func (e *Editor) Edit() error {
	if e.state != StateViewing {
		return ErrNotViewing
	}
	e.state = StateEditing
	return nil
}

// Cancel discards all edits and restores the server copy.
func (e *Editor) Cancel() error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	e.form = cloneCompetition(e.server)
	e.state = StateViewing
	return nil
}

// Save transmits the full form snapshot. On success both copies are
// replaced with the server's response so the form reflects
// server-applied timestamps; on failure the form stays editable with
// nothing lost.
func (e *Editor) Save(ctx context.Context, up Updater) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	e.state = StateSaving

	updated, err := up.UpdateCompetition(ctx, e.form.ID, competitions.FullPatch(e.form))
	if err != nil {
		e.state = StateEditing
		return err
	}
	if updated == nil {
		e.state = StateEditing
		return errors.New("competition no longer exists")
	}

	e.server = cloneCompetition(*updated)
	e.form = cloneCompetition(*updated)
	e.state = StateViewing
	return nil
}

// mutate applies one edit to a fresh copy of the form and swaps it in
// only when the edit succeeds.
func (e *Editor) mutate(apply func(*competitions.Competition) error) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	next := cloneCompetition(e.form)
	if err := apply(&next); err != nil {
		return err
	}
	e.form = next
	return nil
}

func (e *Editor) SetName(name string) error {
	return e.mutate(func(c *competitions.Competition) error {
		c.Name = name
		return nil
	})
}

func (e *Editor) SetAbout(about string) error {
	return e.mutate(func(c *competitions.Competition) error {
		c.About = about
		return nil
	})
}

func (e *Editor) SetCoverPhoto(url string) error {
	return e.mutate(func(c *competitions.Competition) error {
		c.CoverPhoto = url
		return nil
	})
}

func (e *Editor) SetMode(mode string) error {
	return e.mutate(func(c *competitions.Competition) error {
		c.Mode = mode
		return nil
	})
}

func (e *Editor) SetVenue(venue string) error {
	return e.mutate(func(c *competitions.Competition) error {
		c.Venue = venue
		return nil
	})
}

func (e *Editor) SetParticipantLimit(limit int) error {
	return e.mutate(func(c *competitions.Competition) error {
		c.ParticipantLimit = limit
		return nil
	})
}

func (e *Editor) SetRegistrationDeadline(t *time.Time) error {
	return e.mutate(func(c *competitions.Competition) error {
		c.RegistrationDeadline = copyTime(t)
		return nil
	})
}

func (e *Editor) SetDates(start, end *time.Time) error {
	return e.mutate(func(c *competitions.Competition) error {
		c.DateStart = copyTime(start)
		c.DateEnd = copyTime(end)
		return nil
	})
}

func (e *Editor) SetTimes(start, end string) error {
	return e.mutate(func(c *competitions.Competition) error {
		c.TimeStart = start
		c.TimeEnd = end
		return nil
	})
}

func (e *Editor) AddParticipationOption() error {
	return e.mutate(func(c *competitions.Competition) error {
		c.ParticipationOptions = append(c.ParticipationOptions, competitions.ParticipationOption{})
		return nil
	})
}

func (e *Editor) UpdateParticipationOption(i int, opt competitions.ParticipationOption) error {
	return e.mutate(func(c *competitions.Competition) error {
		if i < 0 || i >= len(c.ParticipationOptions) {
			return indexError("participation option", i)
		}
		c.ParticipationOptions[i] = opt
		return nil
	})
}

func (e *Editor) RemoveParticipationOption(i int) error {
	return e.mutate(func(c *competitions.Competition) error {
		if i < 0 || i >= len(c.ParticipationOptions) {
			return indexError("participation option", i)
		}
		c.ParticipationOptions = append(c.ParticipationOptions[:i], c.ParticipationOptions[i+1:]...)
		return nil
	})
}

func (e *Editor) AddQuestion() error {
	return e.mutate(func(c *competitions.Competition) error {
		c.CustomQuestions = append(c.CustomQuestions, competitions.Question{
			Type:    competitions.QuestionText,
			Options: []string{},
		})
		return nil
	})
}

func (e *Editor) SetQuestionLabel(i int, label string) error {
	return e.mutate(func(c *competitions.Competition) error {
		if i < 0 || i >= len(c.CustomQuestions) {
			return indexError("question", i)
		}
		c.CustomQuestions[i].Label = label
		return nil
	})
}

func (e *Editor) SetQuestionRequired(i int, required bool) error {
	return e.mutate(func(c *competitions.Competition) error {
		if i < 0 || i >= len(c.CustomQuestions) {
			return indexError("question", i)
		}
		c.CustomQuestions[i].Required = required
		return nil
	})
}

// SetQuestionType changes the declared answer type. Types without a
// choice list clear the question's options.
func (e *Editor) SetQuestionType(i int, t competitions.QuestionType) error {
	return e.mutate(func(c *competitions.Competition) error {
		if i < 0 || i >= len(c.CustomQuestions) {
			return indexError("question", i)
		}
		if !competitions.ValidQuestionType(t) {
			return fmt.Errorf("invalid question type %q", t)
		}
		c.CustomQuestions[i].Type = t
		if !t.HasChoices() {
			c.CustomQuestions[i].Options = []string{}
		}
		return nil
	})
}

func (e *Editor) AddQuestionOption(q int) error {
	return e.mutate(func(c *competitions.Competition) error {
		if q < 0 || q >= len(c.CustomQuestions) {
			return indexError("question", q)
		}
		c.CustomQuestions[q].Options = append(c.CustomQuestions[q].Options, "")
		return nil
	})
}

func (e *Editor) SetQuestionOption(q, i int, value string) error {
	return e.mutate(func(c *competitions.Competition) error {
		if q < 0 || q >= len(c.CustomQuestions) {
			return indexError("question", q)
		}
		opts := c.CustomQuestions[q].Options
		if i < 0 || i >= len(opts) {
			return indexError("question option", i)
		}
		opts[i] = value
		return nil
	})
}

func (e *Editor) RemoveQuestionOption(q, i int) error {
	return e.mutate(func(c *competitions.Competition) error {
		if q < 0 || q >= len(c.CustomQuestions) {
			return indexError("question", q)
		}
		opts := c.CustomQuestions[q].Options
		if i < 0 || i >= len(opts) {
			return indexError("question option", i)
		}
		c.CustomQuestions[q].Options = append(opts[:i], opts[i+1:]...)
		return nil
	})
}

func (e *Editor) RemoveQuestion(i int) error {
	return e.mutate(func(c *competitions.Competition) error {
		if i < 0 || i >= len(c.CustomQuestions) {
			return indexError("question", i)
		}
		c.CustomQuestions = append(c.CustomQuestions[:i], c.CustomQuestions[i+1:]...)
		return nil
	})
}

func (e *Editor) AddJudgingCriterion() error {
	return e.mutate(func(c *competitions.Competition) error {
		c.JudgingCriteria = append(c.JudgingCriteria, "")
		return nil
	})
}

func (e *Editor) SetJudgingCriterion(i int, value string) error {
	return e.mutate(func(c *competitions.Competition) error {
		if i < 0 || i >= len(c.JudgingCriteria) {
			return indexError("judging criterion", i)
		}
		c.JudgingCriteria[i] = value
		return nil
	})
}

func (e *Editor) RemoveJudgingCriterion(i int) error {
	return e.mutate(func(c *competitions.Competition) error {
		if i < 0 || i >= len(c.JudgingCriteria) {
			return indexError("judging criterion", i)
		}
		c.JudgingCriteria = append(c.JudgingCriteria[:i], c.JudgingCriteria[i+1:]...)
		return nil
	})
}

func (e *Editor) AddPrize() error {
	return e.mutate(func(c *competitions.Competition) error {
		c.PrizePool = append(c.PrizePool, "")
		return nil
	})
}

func (e *Editor) SetPrize(i int, value string) error {
	return e.mutate(func(c *competitions.Competition) error {
		if i < 0 || i >= len(c.PrizePool) {
			return indexError("prize", i)
		}
		c.PrizePool[i] = value
		return nil
	})
}

func (e *Editor) RemovePrize(i int) error {
	return e.mutate(func(c *competitions.Competition) error {
		if i < 0 || i >= len(c.PrizePool) {
			return indexError("prize", i)
		}
		c.PrizePool = append(c.PrizePool[:i], c.PrizePool[i+1:]...)
		return nil
	})
}

func indexError(what string, i int) error {
	return fmt.Errorf("%s index %d out of range", what, i)
}

func cloneCompetition(c competitions.Competition) competitions.Competition {
	out := c
	out.RegistrationDeadline = copyTime(c.RegistrationDeadline)
	out.DateStart = copyTime(c.DateStart)
	out.DateEnd = copyTime(c.DateEnd)

	out.ParticipationOptions = append([]competitions.ParticipationOption(nil), c.ParticipationOptions...)
	out.JudgingCriteria = append([]string(nil), c.JudgingCriteria...)
	out.PrizePool = append([]string(nil), c.PrizePool...)

	out.CustomQuestions = make([]competitions.Question, len(c.CustomQuestions))
	for i, q := range c.CustomQuestions {
		qCopy := q
		qCopy.Options = append([]string(nil), q.Options...)
		out.CustomQuestions[i] = qCopy
	}
	return out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
