package competitions

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yashgoel75/kavyalok-admin/internal/db"
)

// These tests run against a live local MongoDB, like the rest of the
// stack, and skip when none is reachable.
func openTestRepo(t *testing.T) (*Repository, context.Context) {
	t.Helper()

	uri := os.Getenv("DASHBOARD_MONGO_URI")
	if uri == "" {
		uri = "mongodb://127.0.0.1:27017/kavyalok"
	}

	ctx := context.Background()

	client, err := db.OpenMongo(ctx, uri, 2*time.Second)
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Disconnect(ctx)
	})

	dbMongo := client.Database("kavyalok_test")
	for _, col := range []string{"admins", "competitions", "registrations", "posts"} {
		if err := dbMongo.Collection(col).Drop(ctx); err != nil {
			t.Fatalf("drop %s: %v", col, err)
		}
	}

	return NewRepository(dbMongo), ctx
}

func TestCompetitionLifecycle(t *testing.T) {
	repo, ctx := openTestRepo(t)

	admin, err := repo.CreateAdmin(ctx, "Yash", "yash", "yash@example.com", "", "")
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	created, err := repo.CreateCompetition(ctx, &Competition{
		Owner: admin.ID,
		Name:  "Hack Day",
		About: "desc",
		ParticipationOptions: []ParticipationOption{
			{Label: "Solo", Price: 0},
		},
		CustomQuestions: []Question{
			{Label: "Track", Type: QuestionSelect, Options: []string{"Web", "ML"}},
		},
	})
	if err != nil {
		t.Fatalf("CreateCompetition: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatal("created competition has no id")
	}
	if created.CustomQuestions[0].ID.IsZero() {
		t.Error("embedded question was not assigned an id")
	}

	fetched, err := repo.GetCompetition(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCompetition: %v", err)
	}
	if fetched == nil || fetched.Name != "Hack Day" || fetched.About != "desc" {
		t.Fatalf("round-trip mismatch: %+v", fetched)
	}
	if fetched.ParticipationOptions[0].Label != "Solo" {
		t.Errorf("participation option = %+v", fetched.ParticipationOptions[0])
	}

	// Partial update: only venue is touched, everything else must stay.
	venue := "Main Hall"
	updated, err := repo.UpdateCompetition(ctx, created.ID, CompetitionPatch{Venue: &venue})
	if err != nil {
		t.Fatalf("UpdateCompetition: %v", err)
	}
	if updated == nil {
		t.Fatal("update returned not-found for existing competition")
	}
	if updated.Name != "Hack Day" || updated.Venue != "Main Hall" {
		t.Errorf("after patch: name=%q venue=%q", updated.Name, updated.Venue)
	}
	if len(updated.CustomQuestions) != 1 {
		t.Errorf("custom questions = %v", updated.CustomQuestions)
	}

	deleted, err := repo.DeleteCompetition(ctx, created.ID)
	if err != nil {
		t.Fatalf("DeleteCompetition: %v", err)
	}
	if !deleted {
		t.Fatal("delete reported not-found for existing competition")
	}

	gone, err := repo.GetCompetition(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCompetition after delete: %v", err)
	}
	if gone != nil {
		t.Errorf("competition still readable after delete: %+v", gone)
	}

	again, err := repo.DeleteCompetition(ctx, created.ID)
	if err != nil {
		t.Fatalf("second DeleteCompetition: %v", err)
	}
	if again {
		t.Error("second delete reported success")
	}
}

func TestConcurrentDuplicateRegistrations(t *testing.T) {
	repo, ctx := openTestRepo(t)

	admin, err := repo.CreateAdmin(ctx, "Yash", "yash", "yash@example.com", "", "")
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	comp, err := repo.CreateCompetition(ctx, &Competition{
		Owner: admin.ID,
		Name:  "Concurrent Registration Test",
		About: "unique index race",
		ParticipationOptions: []ParticipationOption{
			{Label: "Solo", Price: 10},
		},
	})
	if err != nil {
		t.Fatalf("CreateCompetition: %v", err)
	}

	const attempts = 20
	var wg sync.WaitGroup
	wg.Add(attempts)

	var successCount int64
	var duplicateCount int64

	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			_, err := repo.CreateRegistration(ctx, &Registration{
				Competition:               comp.ID,
				ParticipantName:           "Ada",
				ParticipantEmail:          "ada@example.com",
				ChosenParticipationOption: ParticipationOption{Label: "Solo"},
			})
			if err != nil {
				if errors.Is(err, ErrDuplicateRegistration) {
					atomic.AddInt64(&duplicateCount, 1)
					return
				}
				t.Errorf("CreateRegistration unexpected error: %v", err)
				return
			}
			atomic.AddInt64(&successCount, 1)
		}()
	}

	wg.Wait()

	if successCount != 1 {
		t.Fatalf("expected exactly 1 winning registration, got %d (duplicates=%d)", successCount, duplicateCount)
	}

	regs, err := repo.ListRegistrations(ctx, comp.ID)
	if err != nil {
		t.Fatalf("ListRegistrations: %v", err)
	}
	if len(regs) != 1 {
		t.Fatalf("%d registrations stored, want 1", len(regs))
	}
	if regs[0].ChosenParticipationOption.Price != 10 {
		t.Errorf("option price = %v, want the live option's price", regs[0].ChosenParticipationOption.Price)
	}
	if regs[0].PaymentStatus != PaymentPending || regs[0].Status != StatusRegistered {
		t.Errorf("defaults not applied: %+v", regs[0])
	}
}

func TestRegistrationStatusTransitions(t *testing.T) {
	repo, ctx := openTestRepo(t)

	admin, err := repo.CreateAdmin(ctx, "Yash", "yash", "yash@example.com", "", "")
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	comp, err := repo.CreateCompetition(ctx, &Competition{
		Owner:                admin.ID,
		Name:                 "Transitions",
		About:                "x",
		ParticipationOptions: []ParticipationOption{{Label: "Solo", Price: 25}},
	})
	if err != nil {
		t.Fatalf("CreateCompetition: %v", err)
	}

	reg, err := repo.CreateRegistration(ctx, &Registration{
		Competition:               comp.ID,
		ParticipantEmail:          "ada@example.com",
		ChosenParticipationOption: ParticipationOption{Label: "Solo"},
	})
	if err != nil {
		t.Fatalf("CreateRegistration: %v", err)
	}

	paid, err := repo.SetPaymentStatus(ctx, reg.ID, PaymentCompleted, 25)
	if err != nil {
		t.Fatalf("SetPaymentStatus: %v", err)
	}
	if paid == nil || paid.PaymentStatus != PaymentCompleted || paid.PaidAmount != 25 {
		t.Errorf("registration = %+v", paid)
	}

	if _, err := repo.SetPaymentStatus(ctx, reg.ID, PaymentFailed, 0); !errors.Is(err, ErrPaymentFinalized) {
		t.Errorf("second payment transition: err = %v, want ErrPaymentFinalized", err)
	}

	attended, err := repo.SetRegistrationStatus(ctx, reg.ID, StatusAttended)
	if err != nil {
		t.Fatalf("SetRegistrationStatus: %v", err)
	}
	if attended == nil || attended.Status != StatusAttended {
		t.Errorf("registration = %+v", attended)
	}

	if _, err := repo.SetRegistrationStatus(ctx, reg.ID, StatusCancelled); !errors.Is(err, ErrStatusFinalized) {
		t.Errorf("second status transition: err = %v, want ErrStatusFinalized", err)
	}
}
