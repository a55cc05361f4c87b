package competitions

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionType is the declared answer type of a custom registration question.
type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionNumber   QuestionType = "number"
	QuestionSelect   QuestionType = "select"
	QuestionRadio    QuestionType = "radio"
	QuestionCheckbox QuestionType = "checkbox"
)

// ValidQuestionType reports whether t is one of the five supported types.
func ValidQuestionType(t QuestionType) bool {
	switch t {
	case QuestionText, QuestionNumber, QuestionSelect, QuestionRadio, QuestionCheckbox:
		return true
	}
	return false
}

// HasChoices reports whether the type presents a fixed option list.
func (t QuestionType) HasChoices() bool {
	switch t {
	case QuestionSelect, QuestionRadio, QuestionCheckbox:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type RegistrationStatus string

const (
	StatusRegistered RegistrationStatus = "registered"
	StatusAttended   RegistrationStatus = "attended"
	StatusCancelled  RegistrationStatus = "cancelled"
)

type Admin struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name           string             `bson:"name" json:"name"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfilePicture string             `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ParticipationOption is a named, priced tier a participant picks when
// registering. Registrations snapshot it by value, so edits to a
// competition never rewrite what an existing participant chose.
type ParticipationOption struct {
	Label string  `bson:"label" json:"label"`
	Price float64 `bson:"price" json:"price"`
}

type Question struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Label    string             `bson:"label" json:"label"`
	Type     QuestionType       `bson:"type" json:"type"`
	Required bool               `bson:"required" json:"required"`
	Options  []string           `bson:"options" json:"options"`
}

type Competition struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Owner primitive.ObjectID `bson:"owner" json:"owner"`

	CoverPhoto string `bson:"coverPhoto,omitempty" json:"coverPhoto,omitempty"`
	Name       string `bson:"name" json:"name"`
	About      string `bson:"about" json:"about"`

	ParticipantLimit     int        `bson:"participantLimit,omitempty" json:"participantLimit,omitempty"`
	RegistrationDeadline *time.Time `bson:"registrationDeadline,omitempty" json:"registrationDeadline,omitempty"`

	Mode  string `bson:"mode,omitempty" json:"mode,omitempty"`
	Venue string `bson:"venue,omitempty" json:"venue,omitempty"`

	DateStart *time.Time `bson:"dateStart,omitempty" json:"dateStart,omitempty"`
	DateEnd   *time.Time `bson:"dateEnd,omitempty" json:"dateEnd,omitempty"`

	TimeStart string `bson:"timeStart,omitempty" json:"timeStart,omitempty"`
	TimeEnd   string `bson:"timeEnd,omitempty" json:"timeEnd,omitempty"`

	ParticipationOptions []ParticipationOption `bson:"participationOptions" json:"participationOptions"`
	CustomQuestions      []Question            `bson:"customQuestions" json:"customQuestions"`

	JudgingCriteria []string `bson:"judgingCriteria" json:"judgingCriteria"`
	PrizePool       []string `bson:"prizePool" json:"prizePool"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Answer is a tagged value keyed by the owning question's declared type.
// Text carries text/select/radio answers, Number carries number answers,
// Selections carries checkbox answers.
type Answer struct {
	Type       QuestionType `bson:"type" json:"type"`
	Text       string       `bson:"text,omitempty" json:"text,omitempty"`
	Number     float64      `bson:"number,omitempty" json:"number,omitempty"`
	Selections []string     `bson:"selections,omitempty" json:"selections,omitempty"`
}

// QuestionResponse snapshots the question label and answer at submission
// time, so later edits to the competition's question list leave stored
// registrations readable.
type QuestionResponse struct {
	QuestionID    primitive.ObjectID `bson:"questionId" json:"questionId"`
	QuestionLabel string             `bson:"questionLabel" json:"questionLabel"`
	Answer        Answer             `bson:"answer" json:"answer"`
}

type Registration struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Competition primitive.ObjectID `bson:"competition" json:"competition"`

	ParticipantName  string `bson:"participantName,omitempty" json:"participantName,omitempty"`
	ParticipantEmail string `bson:"participantEmail" json:"participantEmail"`

	ChosenParticipationOption ParticipationOption `bson:"chosenParticipationOption" json:"chosenParticipationOption"`

	Responses []QuestionResponse `bson:"responses" json:"responses"`

	PaidAmount    float64            `bson:"paidAmount" json:"paidAmount"`
	PaymentStatus PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	Status        RegistrationStatus `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Post struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title   string             `bson:"title" json:"title"`
	Content string             `bson:"content" json:"content"`
	Picture string             `bson:"picture,omitempty" json:"picture,omitempty"`
	Tags    []string           `bson:"tags" json:"tags"`
	Likes   int                `bson:"likes" json:"likes"`
	Color   string             `bson:"color,omitempty" json:"color,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
