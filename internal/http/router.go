package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yashgoel75/kavyalok-admin/internal/auth"
	"github.com/yashgoel75/kavyalok-admin/internal/competitions"
	"github.com/yashgoel75/kavyalok-admin/internal/uploads"
)

// Store is what the handlers need from the persistence layer. The
// concrete *competitions.Repository satisfies it; tests swap in a fake.
type Store interface {
	CreateAdmin(ctx context.Context, name, username, email, bio, profilePicture string) (*competitions.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*competitions.Admin, error)
	GetAdmin(ctx context.Context, id primitive.ObjectID) (*competitions.Admin, error)

	CreateCompetition(ctx context.Context, c *competitions.Competition) (*competitions.Competition, error)
	ListCompetitions(ctx context.Context) ([]competitions.Competition, error)
	GetCompetition(ctx context.Context, id primitive.ObjectID) (*competitions.Competition, error)
	UpdateCompetition(ctx context.Context, id primitive.ObjectID, patch competitions.CompetitionPatch) (*competitions.Competition, error)
	DeleteCompetition(ctx context.Context, id primitive.ObjectID) (bool, error)

	CreateRegistration(ctx context.Context, reg *competitions.Registration) (*competitions.Registration, error)
	ListRegistrations(ctx context.Context, competitionID primitive.ObjectID) ([]competitions.Registration, error)
	SetPaymentStatus(ctx context.Context, id primitive.ObjectID, status competitions.PaymentStatus, paidAmount float64) (*competitions.Registration, error)
	SetRegistrationStatus(ctx context.Context, id primitive.ObjectID, status competitions.RegistrationStatus) (*competitions.Registration, error)

	CreatePost(ctx context.Context, p *competitions.Post) (*competitions.Post, error)
	ListPosts(ctx context.Context) ([]competitions.Post, error)
	GetPost(ctx context.Context, id primitive.ObjectID) (*competitions.Post, error)
	LikePost(ctx context.Context, id primitive.ObjectID) (*competitions.Post, error)
}

type Router struct {
	mux      *chi.Mux
	store    Store
	verifier auth.TokenVerifier
	signer   *uploads.Signer
	log      *slog.Logger
}

func NewRouter(store Store, verifier auth.TokenVerifier, signer *uploads.Signer, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{
		mux:      chi.NewRouter(),
		store:    store,
		verifier: verifier,
		signer:   signer,
		log:      logger,
	}
	r.routes()
	return r.mux
}

func (r *Router) routes() {
	r.mux.Use(r.requestLogger)

	r.mux.Route("/api", func(api chi.Router) {
		api.Get("/admin", r.handleGetAdminByEmail)
		api.Post("/admin", r.handleCreateAdmin)

		api.Get("/competitions", r.handleListCompetitions)
		api.Post("/competitions", r.handleCreateCompetition)
		api.Get("/competitions/{id}", r.handleGetCompetition)
		api.Put("/competitions/{id}", r.handleUpdateCompetition)
		api.Delete("/competitions/{id}", r.handleDeleteCompetition)

		api.Get("/competitions/{id}/registrations", r.handleListRegistrations)
		api.Post("/competitions/{id}/registrations", r.handleCreateRegistration)
		api.Patch("/registrations/{id}/payment", r.handleSetPaymentStatus)
		api.Patch("/registrations/{id}/status", r.handleSetRegistrationStatus)

		api.Get("/posts", r.handleListPosts)
		api.Post("/posts", r.handleCreatePost)
		api.Get("/posts/{id}", r.handleGetPost)
		api.Post("/posts/{id}/like", r.handleLikePost)

		api.Post("/signCompetitionCovers", r.handleSignCompetitionCovers)
	})
}

func (r *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		r.log.Info("request",
			"method", req.Method,
			"path", req.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// serverError hides internal detail from the client; the real error
// goes to the log.
func (r *Router) serverError(w http.ResponseWriter, req *http.Request, err error) {
	r.log.Error("request failed", "method", req.Method, "path", req.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "Server error")
}

func parseJSONBody(req *http.Request, v any) error {
	defer req.Body.Close()
	return json.NewDecoder(req.Body).Decode(v)
}

func pathID(req *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(req, "id"))
	return id, err == nil
}
