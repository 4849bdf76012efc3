package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ctfbruce/LiftIt/internal/program"
	"github.com/mark3labs/mcp-go/mcp"
)

var resDueWorkouts = mcp.NewResource(
	"liftit://due_workouts",
	"Due Workouts",
	mcp.WithResourceDescription("The currently due exercise group for every program"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) dueWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	programs, err := h.store.ListPrograms(ctx)
	if err != nil {
		return nil, err
	}

	type due struct {
		ProgramID   string        `json:"programId"`
		ProgramName string        `json:"programName"`
		DayIndex    int           `json:"dayIndex"`
		Group       program.Group `json:"group"`
	}

	var result []due
	for _, p := range programs {
		g, err := h.sessions.TodaysGroup(ctx, p.ID)
		if errors.Is(err, program.ErrNoExercisesScheduled) {
			continue
		}
		if err != nil {
			h.log.Warn("due_workouts: resolving group", "program", p.ID, "error", err)
			continue
		}
		result = append(result, due{
			ProgramID:   p.ID.String(),
			ProgramName: p.Name,
			DayIndex:    p.CurrentDayIndex,
			Group:       g,
		})
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
