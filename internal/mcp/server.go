// Package mcp exposes the program engine to MCP clients: querying the due
// workout, logging a finished session, and browsing history.
package mcp

import (
	"context"
	"log/slog"

	"github.com/ctfbruce/LiftIt/internal/program"
	"github.com/ctfbruce/LiftIt/internal/session"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"
)

// Store is the read surface the MCP handlers need. *storage.DB satisfies it.
type Store interface {
	ListPrograms(ctx context.Context) ([]program.Program, error)
	ListSessions(ctx context.Context, programID uuid.UUID) ([]program.Session, error)
}

// New creates an MCP server with all tools and resources registered.
func New(store Store, sessions *session.Service, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftIt", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftIt strength-training server. Query which workout is due, log completed sessions (which progresses goals and advances the schedule), and browse session history."),
	)

	h := &handlers{store: store, sessions: sessions, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListPrograms, Handler: h.listPrograms},
		server.ServerTool{Tool: toolGetTodaysWorkout, Handler: h.getTodaysWorkout},
		server.ServerTool{Tool: toolLogSession, Handler: h.logSession},
		server.ServerTool{Tool: toolGetSessionHistory, Handler: h.getSessionHistory},
	)

	s.AddResources(
		server.ServerResource{Resource: resDueWorkouts, Handler: h.dueWorkouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	store    Store
	sessions *session.Service
	log      *slog.Logger
}
