package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ctfbruce/LiftIt/internal/program"
	"github.com/ctfbruce/LiftIt/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Store is the persistence surface the handlers need. *storage.DB satisfies
// it; tests substitute a fake.
type Store interface {
	InsertExercise(ctx context.Context, ex program.Exercise) error
	ListExercises(ctx context.Context) ([]program.Exercise, error)
	GetExercise(ctx context.Context, id uuid.UUID) (program.Exercise, error)
	DeleteExercise(ctx context.Context, id uuid.UUID) error

	CreateProgram(ctx context.Context, p program.Program) error
	Program(ctx context.Context, id uuid.UUID) (program.Program, error)
	ListPrograms(ctx context.Context) ([]program.Program, error)
	DeleteProgram(ctx context.Context, id uuid.UUID) error
	AddWorkout(ctx context.Context, programID uuid.UUID, dayIndex int, label string, slots []program.Slot) error

	ListSessions(ctx context.Context, programID uuid.UUID) ([]program.Session, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    Store
	sessions *session.Service
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(store Store, sessions *session.Service, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:    store,
		sessions: sessions,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Read endpoints
		r.Get("/exercises", s.handleListExercises)
		r.Get("/exercises/{id}", s.handleGetExercise)
		r.Get("/programs", s.handleListPrograms)
		r.Get("/programs/{id}", s.handleGetProgram)
		r.Get("/programs/{id}/today", s.handleTodaysGroup)
		r.Get("/programs/{id}/sessions", s.handleListSessions)
		r.Get("/programs/{id}/draft", s.handleLoadDraft)

		// Mutating endpoints (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/exercises", s.handleCreateExercise)
			r.Delete("/exercises/{id}", s.handleDeleteExercise)
			r.Post("/programs", s.handleCreateProgram)
			r.Delete("/programs/{id}", s.handleDeleteProgram)
			r.Post("/programs/{id}/workouts", s.handleAddWorkout)
			r.Post("/programs/{id}/sessions", s.handleFinalizeSession)
			r.Put("/programs/{id}/draft", s.handleSaveDraft)
			r.Delete("/programs/{id}/draft", s.handleCancelDraft)
		})
	})
}
