package http

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yashgoel75/kavyalok-admin/internal/competitions"
)

// fakeStore is an in-memory Store with the same observable semantics as
// the Mongo-backed repository, including the unique
// (competition, participantEmail) constraint.
type fakeStore struct {
	admins        map[string]*competitions.Admin
	comps         map[string]*competitions.Competition
	compOrder     []string
	registrations map[string]*competitions.Registration
	regOrder      []string
	posts         map[string]*competitions.Post
	postOrder     []string

	failWith error // when set, every call errors
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		admins:        map[string]*competitions.Admin{},
		comps:         map[string]*competitions.Competition{},
		registrations: map[string]*competitions.Registration{},
		posts:         map[string]*competitions.Post{},
	}
}

func (f *fakeStore) CreateAdmin(_ context.Context, name, username, email, bio, profilePicture string) (*competitions.Admin, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, a := range f.admins {
		if a.Username == username || a.Email == email {
			return nil, competitions.ErrDuplicateAdmin
		}
	}
	now := time.Now().UTC()
	a := &competitions.Admin{
		ID:             primitive.NewObjectID(),
		Name:           name,
		Username:       username,
		Email:          email,
		Bio:            bio,
		ProfilePicture: profilePicture,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.admins[a.ID.Hex()] = a
	return a, nil
}

func (f *fakeStore) GetAdminByEmail(_ context.Context, email string) (*competitions.Admin, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, a := range f.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetAdmin(_ context.Context, id primitive.ObjectID) (*competitions.Admin, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.admins[id.Hex()], nil
}

func (f *fakeStore) CreateCompetition(_ context.Context, c *competitions.Competition) (*competitions.Competition, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.ParticipationOptions == nil {
		c.ParticipationOptions = []competitions.ParticipationOption{}
	}
	if c.CustomQuestions == nil {
		c.CustomQuestions = []competitions.Question{}
	}
	if c.JudgingCriteria == nil {
		c.JudgingCriteria = []string{}
	}
	if c.PrizePool == nil {
		c.PrizePool = []string{}
	}
	for i := range c.CustomQuestions {
		if c.CustomQuestions[i].ID.IsZero() {
			c.CustomQuestions[i].ID = primitive.NewObjectID()
		}
	}
	f.comps[c.ID.Hex()] = c
	f.compOrder = append(f.compOrder, c.ID.Hex())
	return c, nil
}

func (f *fakeStore) ListCompetitions(_ context.Context) ([]competitions.Competition, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []competitions.Competition
	for _, id := range f.compOrder {
		if c, ok := f.comps[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeStore) GetCompetition(_ context.Context, id primitive.ObjectID) (*competitions.Competition, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.comps[id.Hex()], nil
}

func (f *fakeStore) UpdateCompetition(_ context.Context, id primitive.ObjectID, patch competitions.CompetitionPatch) (*competitions.Competition, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	c, ok := f.comps[id.Hex()]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.About != nil {
		c.About = *patch.About
	}
	if patch.CoverPhoto != nil {
		c.CoverPhoto = *patch.CoverPhoto
	}
	if patch.ParticipantLimit != nil {
		c.ParticipantLimit = *patch.ParticipantLimit
	}
	if patch.ClearRegistrationDeadline {
		c.RegistrationDeadline = nil
	} else if patch.RegistrationDeadline != nil {
		c.RegistrationDeadline = patch.RegistrationDeadline
	}
	if patch.Mode != nil {
		c.Mode = *patch.Mode
	}
	if patch.Venue != nil {
		c.Venue = *patch.Venue
	}
	if patch.ClearDateStart {
		c.DateStart = nil
	} else if patch.DateStart != nil {
		c.DateStart = patch.DateStart
	}
	if patch.ClearDateEnd {
		c.DateEnd = nil
	} else if patch.DateEnd != nil {
		c.DateEnd = patch.DateEnd
	}
	if patch.TimeStart != nil {
		c.TimeStart = *patch.TimeStart
	}
	if patch.TimeEnd != nil {
		c.TimeEnd = *patch.TimeEnd
	}
	if patch.ParticipationOptions != nil {
		c.ParticipationOptions = patch.ParticipationOptions
	}
	if patch.CustomQuestions != nil {
		c.CustomQuestions = patch.CustomQuestions
	}
	if patch.JudgingCriteria != nil {
		c.JudgingCriteria = patch.JudgingCriteria
	}
	if patch.PrizePool != nil {
		c.PrizePool = patch.PrizePool
	}
	c.UpdatedAt = time.Now().UTC()
	return c, nil
}

func (f *fakeStore) DeleteCompetition(_ context.Context, id primitive.ObjectID) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	if _, ok := f.comps[id.Hex()]; !ok {
		return false, nil
	}
	delete(f.comps, id.Hex())
	return true, nil
}

func (f *fakeStore) CreateRegistration(_ context.Context, reg *competitions.Registration) (*competitions.Registration, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	comp, ok := f.comps[reg.Competition.Hex()]
	if !ok {
		return nil, competitions.ErrCompetitionNotFound
	}

	matched := false
	for _, opt := range comp.ParticipationOptions {
		if opt.Label == reg.ChosenParticipationOption.Label {
			reg.ChosenParticipationOption = opt
			matched = true
			break
		}
	}
	if !matched {
		return nil, fmt.Errorf("%w: competition has no participation option %q", competitions.ErrInvalidRegistration, reg.ChosenParticipationOption.Label)
	}
	if err := competitions.ValidateResponses(comp.CustomQuestions, reg.Responses); err != nil {
		return nil, fmt.Errorf("%w: %v", competitions.ErrInvalidRegistration, err)
	}

	for _, existing := range f.registrations {
		if existing.Competition == reg.Competition && existing.ParticipantEmail == reg.ParticipantEmail {
			return nil, competitions.ErrDuplicateRegistration
		}
	}

	now := time.Now().UTC()
	reg.ID = primitive.NewObjectID()
	if reg.Responses == nil {
		reg.Responses = []competitions.QuestionResponse{}
	}
	if reg.PaymentStatus == "" {
		reg.PaymentStatus = competitions.PaymentPending
	}
	if reg.Status == "" {
		reg.Status = competitions.StatusRegistered
	}
	reg.CreatedAt = now
	reg.UpdatedAt = now
	f.registrations[reg.ID.Hex()] = reg
	f.regOrder = append(f.regOrder, reg.ID.Hex())
	return reg, nil
}

func (f *fakeStore) ListRegistrations(_ context.Context, competitionID primitive.ObjectID) ([]competitions.Registration, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []competitions.Registration
	for _, id := range f.regOrder {
		if reg, ok := f.registrations[id]; ok && reg.Competition == competitionID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (f *fakeStore) SetPaymentStatus(_ context.Context, id primitive.ObjectID, status competitions.PaymentStatus, paidAmount float64) (*competitions.Registration, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	reg, ok := f.registrations[id.Hex()]
	if !ok {
		return nil, nil
	}
	if reg.PaymentStatus != competitions.PaymentPending {
		return nil, competitions.ErrPaymentFinalized
	}
	reg.PaymentStatus = status
	if status == competitions.PaymentCompleted {
		reg.PaidAmount = paidAmount
	}
	reg.UpdatedAt = time.Now().UTC()
	return reg, nil
}

func (f *fakeStore) SetRegistrationStatus(_ context.Context, id primitive.ObjectID, status competitions.RegistrationStatus) (*competitions.Registration, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	reg, ok := f.registrations[id.Hex()]
	if !ok {
		return nil, nil
	}
	if reg.Status != competitions.StatusRegistered {
		return nil, competitions.ErrStatusFinalized
	}
	reg.Status = status
	reg.UpdatedAt = time.Now().UTC()
	return reg, nil
}

func (f *fakeStore) CreatePost(_ context.Context, p *competitions.Post) (*competitions.Post, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	f.posts[p.ID.Hex()] = p
	f.postOrder = append(f.postOrder, p.ID.Hex())
	return p, nil
}

func (f *fakeStore) ListPosts(_ context.Context) ([]competitions.Post, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []competitions.Post
	for _, id := range f.postOrder {
		if p, ok := f.posts[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) GetPost(_ context.Context, id primitive.ObjectID) (*competitions.Post, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.posts[id.Hex()], nil
}

func (f *fakeStore) LikePost(_ context.Context, id primitive.ObjectID) (*competitions.Post, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.posts[id.Hex()]
	if !ok {
		return nil, nil
	}
	p.Likes++
	p.UpdatedAt = time.Now().UTC()
	return p, nil
}
