// Command regtest hammers the registrations unique index: many
// concurrent attempts to register the same email for one competition
// must leave exactly one stored registration.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yashgoel75/kavyalok-admin/internal/competitions"
	"github.com/yashgoel75/kavyalok-admin/internal/db"
)

var repo *competitions.Repository

func register(competitionID primitive.ObjectID, email string) error {
	_, err := repo.CreateRegistration(context.Background(), &competitions.Registration{
		Competition:               competitionID,
		ParticipantName:           "Duplicate Probe",
		ParticipantEmail:          email,
		ChosenParticipationOption: competitions.ParticipationOption{Label: "Solo"},
	})
	return err
}

func raceDuplicates(competitionID primitive.ObjectID) {
	const attempts = 50
	email := "probe@example.com"

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0
	duplicateCount := 0

	start := time.Now()

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			err := register(competitionID, email)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successCount++
				fmt.Printf("  goroutine %02d  registered\n", n+1)
			case errors.Is(err, competitions.ErrDuplicateRegistration):
				duplicateCount++
			default:
				fmt.Printf("  goroutine %02d  unexpected error: %v\n", n+1, err)
			}
		}(i)
	}

	wg.Wait()

	fmt.Println("Attempts:          ", attempts)
	fmt.Println("Registered:        ", successCount)
	fmt.Println("Duplicate rejects: ", duplicateCount)
	fmt.Println("Time taken:        ", time.Since(start))

	if successCount == 1 {
		fmt.Println("\nPASS — exactly 1 registration won the race")
	} else {
		fmt.Printf("\nFAIL — expected 1 registration, got %d\n", successCount)
	}
}

func main() {
	uri := os.Getenv("DASHBOARD_MONGO_URI")
	if uri == "" {
		uri = "mongodb://127.0.0.1:27017/kavyalok"
	}

	ctx := context.Background()

	client, err := db.OpenMongo(ctx, uri, db.DefaultConnectTimeout)
	if err != nil {
		log.Fatalf("OpenMongo: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	testDB := client.Database("regtest")
	repo = competitions.NewRepository(testDB)

	owner, err := repo.CreateAdmin(ctx, "Probe Admin", "probe-admin", "probe-admin@example.com", "", "")
	if err != nil {
		log.Fatalf("CreateAdmin: %v", err)
	}

	comp, err := repo.CreateCompetition(ctx, &competitions.Competition{
		Owner: owner.ID,
		Name:  "Duplicate Registration Stress Test",
		About: "One email, many concurrent attempts",
		ParticipationOptions: []competitions.ParticipationOption{
			{Label: "Solo", Price: 0},
		},
	})
	if err != nil {
		log.Fatalf("CreateCompetition: %v", err)
	}

	fmt.Println("═══════════════════════════════════════════")
	fmt.Println("  kavyalok-admin — Unique Index Stress Test")
	fmt.Println("═══════════════════════════════════════════")
	fmt.Printf("Competition ID : %s\n\n", comp.ID.Hex())

	raceDuplicates(comp.ID)

	regs, err := repo.ListRegistrations(ctx, comp.ID)
	if err != nil {
		log.Fatalf("ListRegistrations: %v", err)
	}
	fmt.Printf("\nMongoDB final state  →  registrations=%d\n", len(regs))

	_ = testDB.Drop(ctx)
}
