package competitions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrDuplicateRegistration = errors.New("participant already registered for competition")
	ErrInvalidRegistration   = errors.New("invalid registration")
	ErrDuplicateAdmin        = errors.New("admin username or email already taken")
	ErrCompetitionNotFound   = errors.New("competition not found")
	ErrPaymentFinalized      = errors.New("payment status already finalized")
	ErrStatusFinalized       = errors.New("registration status already finalized")
)

type Repository struct {
	db               *mongo.Database
	adminsCol        *mongo.Collection
	competitionsCol  *mongo.Collection
	registrationsCol *mongo.Collection
	postsCol         *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	r := &Repository{
		db:               db,
		adminsCol:        db.Collection("admins"),
		competitionsCol:  db.Collection("competitions"),
		registrationsCol: db.Collection("registrations"),
		postsCol:         db.Collection("posts"),
	}
	if err := r.EnsureIndexes(context.Background()); err != nil {
		log.Printf("[warn] EnsureIndexes: %v", err)
	}
	return r
}

func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.adminsCol.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("admins_username_unique"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("admins_email_unique"),
		},
	})
	if err != nil {
		return fmt.Errorf("admins indexes: %w", err)
	}

	_, err = r.competitionsCol.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner", Value: 1}},
			Options: options.Index().SetName("competitions_owner"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("competitions_created_at"),
		},
	})
	if err != nil {
		return fmt.Errorf("competitions indexes: %w", err)
	}

	// One registration per email per competition; concurrent duplicates
	// race and the loser gets a duplicate key error from the store.
	_, err = r.registrationsCol.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "competition", Value: 1},
				{Key: "participantEmail", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("registrations_competition_email_unique"),
		},
	})
	if err != nil {
		return fmt.Errorf("registrations indexes: %w", err)
	}

	_, err = r.postsCol.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index().SetName("posts_title"),
		},
		{
			Keys:    bson.D{{Key: "tags", Value: 1}},
			Options: options.Index().SetName("posts_tags"),
		},
	})
	if err != nil {
		return fmt.Errorf("posts indexes: %w", err)
	}
	return nil
}

func (r *Repository) CreateAdmin(ctx context.Context, name, username, email, bio, profilePicture string) (*Admin, error) {
	now := time.Now().UTC()
	a := &Admin{
		ID:             primitive.NilObjectID,
		Name:           name,
		Username:       username,
		Email:          email,
		Bio:            bio,
		ProfilePicture: profilePicture,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	res, err := r.adminsCol.InsertOne(ctx, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateAdmin
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return a, nil
}

func (r *Repository) GetAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	var a Admin
	err := r.adminsCol.FindOne(ctx, bson.M{"email": email}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	return &a, nil
}

func (r *Repository) GetAdmin(ctx context.Context, id primitive.ObjectID) (*Admin, error) {
	var a Admin
	if err := r.adminsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}

func (r *Repository) CreateCompetition(ctx context.Context, c *Competition) (*Competition, error) {
	now := time.Now().UTC()
	c.ID = primitive.NilObjectID
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.ParticipationOptions == nil {
		c.ParticipationOptions = []ParticipationOption{}
	}
	if c.CustomQuestions == nil {
		c.CustomQuestions = []Question{}
	}
	if c.JudgingCriteria == nil {
		c.JudgingCriteria = []string{}
	}
	if c.PrizePool == nil {
		c.PrizePool = []string{}
	}
	assignQuestionIDs(c.CustomQuestions)

	res, err := r.competitionsCol.InsertOne(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("insert competition: %w", err)
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return c, nil
}

func (r *Repository) ListCompetitions(ctx context.Context) ([]Competition, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.competitionsCol.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	defer cur.Close(ctx)

	var result []Competition
	for cur.Next(ctx) {
		var c Competition
		if err := cur.Decode(&c); err != nil {
			return nil, fmt.Errorf("decode competition: %w", err)
		}
		result = append(result, c)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list competitions cursor: %w", err)
	}
	return result, nil
}

func (r *Repository) GetCompetition(ctx context.Context, id primitive.ObjectID) (*Competition, error) {
	var c Competition
	if err := r.competitionsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get competition: %w", err)
	}
	return &c, nil
}

// UpdateCompetition applies a partial update. Fields absent from the
// patch are left untouched in the stored document.
func (r *Repository) UpdateCompetition(ctx context.Context, id primitive.ObjectID, patch CompetitionPatch) (*Competition, error) {
	set := patch.setDocument()
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Competition
	err := r.competitionsCol.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update competition: %w", err)
	}
	return &updated, nil
}

func (r *Repository) DeleteCompetition(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.competitionsCol.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete competition: %w", err)
	}
	// Registrations pointing at the deleted competition are left in
	// place; ListRegistrations keeps the orphans visible.
	return res.DeletedCount > 0, nil
}

// CreateRegistration validates the chosen option and responses against
// the live competition document, then inserts. The option price is
// snapshotted from the live option, not taken from the caller.
func (r *Repository) CreateRegistration(ctx context.Context, reg *Registration) (*Registration, error) {
	comp, err := r.GetCompetition(ctx, reg.Competition)
	if err != nil {
		return nil, err
	}
	if comp == nil {
		return nil, ErrCompetitionNotFound
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
		return nil, fmt.Errorf("%w: competition has no participation option %q", ErrInvalidRegistration, reg.ChosenParticipationOption.Label)
	}

	if err := ValidateResponses(comp.CustomQuestions, reg.Responses); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegistration, err)
	}

	now := time.Now().UTC()
	reg.ID = primitive.NilObjectID
	if reg.Responses == nil {
		reg.Responses = []QuestionResponse{}
	}
	if reg.PaymentStatus == "" {
		reg.PaymentStatus = PaymentPending
	}
	if reg.Status == "" {
		reg.Status = StatusRegistered
	}
	reg.CreatedAt = now
	reg.UpdatedAt = now

	res, err := r.registrationsCol.InsertOne(ctx, reg)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateRegistration
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}
	reg.ID = res.InsertedID.(primitive.ObjectID)
	return reg, nil
}

func (r *Repository) ListRegistrations(ctx context.Context, competitionID primitive.ObjectID) ([]Registration, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.registrationsCol.Find(ctx, bson.M{"competition": competitionID}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer cur.Close(ctx)

	var result []Registration
	for cur.Next(ctx) {
		var reg Registration
		if err := cur.Decode(&reg); err != nil {
			return nil, fmt.Errorf("decode registration: %w", err)
		}
		result = append(result, reg)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list registrations cursor: %w", err)
	}
	return result, nil
}

// SetPaymentStatus moves a pending registration to completed or failed.
func (r *Repository) SetPaymentStatus(ctx context.Context, id primitive.ObjectID, status PaymentStatus, paidAmount float64) (*Registration, error) {
	if status != PaymentCompleted && status != PaymentFailed {
		return nil, fmt.Errorf("invalid payment status %q", status)
	}

	set := bson.M{
		"paymentStatus": status,
		"updatedAt":     time.Now().UTC(),
	}
	if status == PaymentCompleted {
		set["paidAmount"] = paidAmount
	}

	filter := bson.M{"_id": id, "paymentStatus": PaymentPending}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Registration
	err := r.registrationsCol.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("set payment status: %w", err)
	}

	// Distinguish a missing registration from one already settled.
	var existing Registration
	if err := r.registrationsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("post-check get registration: %w", err)
	}
	return nil, ErrPaymentFinalized
}

// SetRegistrationStatus moves a registered participant to attended or
// cancelled.
func (r *Repository) SetRegistrationStatus(ctx context.Context, id primitive.ObjectID, status RegistrationStatus) (*Registration, error) {
	if status != StatusAttended && status != StatusCancelled {
		return nil, fmt.Errorf("invalid registration status %q", status)
	}

	set := bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}

	filter := bson.M{"_id": id, "status": StatusRegistered}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Registration
	err := r.registrationsCol.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("set registration status: %w", err)
	}

	var existing Registration
	if err := r.registrationsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("post-check get registration: %w", err)
	}
	return nil, ErrStatusFinalized
}

func (r *Repository) CreatePost(ctx context.Context, p *Post) (*Post, error) {
	now := time.Now().UTC()
	p.ID = primitive.NilObjectID
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.Likes = 0
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := r.postsCol.InsertOne(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return p, nil
}

func (r *Repository) ListPosts(ctx context.Context) ([]Post, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.postsCol.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var result []Post
	for cur.Next(ctx) {
		var p Post
		if err := cur.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		result = append(result, p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list posts cursor: %w", err)
	}
	return result, nil
}

func (r *Repository) GetPost(ctx context.Context, id primitive.ObjectID) (*Post, error) {
	var p Post
	if err := r.postsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &p, nil
}

func (r *Repository) LikePost(ctx context.Context, id primitive.ObjectID) (*Post, error) {
	update := bson.M{
		"$inc": bson.M{"likes": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p Post
	if err := r.postsCol.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("like post: %w", err)
	}
	return &p, nil
}

func assignQuestionIDs(questions []Question) {
	for i := range questions {
		if questions[i].ID.IsZero() {
			questions[i].ID = primitive.NewObjectID()
		}
	}
}
