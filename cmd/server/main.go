package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/yashgoel75/kavyalok-admin/internal/auth"
	"github.com/yashgoel75/kavyalok-admin/internal/competitions"
	"github.com/yashgoel75/kavyalok-admin/internal/config"
	"github.com/yashgoel75/kavyalok-admin/internal/db"
	httpapi "github.com/yashgoel75/kavyalok-admin/internal/http"
	"github.com/yashgoel75/kavyalok-admin/internal/uploads"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	client, err := db.OpenMongo(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		_ = client.Disconnect(ctx)
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	repo := competitions.NewRepository(client.Database(cfg.Database))
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	signer := uploads.NewSigner(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)

	router := httpapi.NewRouter(repo, verifier, signer, logger)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("kavyalok-admin listening on %s", cfg.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
