package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ctfbruce/LiftIt/internal/program"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListPrograms = mcp.NewTool("list_programs",
	mcp.WithDescription("List all training programs with their schedule position (current day and group slot)."),
)

var toolGetTodaysWorkout = mcp.NewTool("get_todays_workout",
	mcp.WithDescription("Get the group of exercises currently due for a program: each slot's sets, rep range, rep goal, weight goal, and miss counter."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
)

var toolLogSession = mcp.NewTool("log_session",
	mcp.WithDescription("Finalize a workout session for the due group. Entries are judged against each exercise's goal volume, targets progress (or deload after repeated misses), and the schedule advances. The whole update is atomic."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
	mcp.WithString("entries", mcp.Required(), mcp.Description(`JSON object mapping slot UUID to an array of per-set entries, one per prescribed set, e.g. {"<slot-id>":[{"weight":"100","reps":"10"},{"weight":"","reps":"9"}]}. Blank or unparsable values fall back to the slot's goals.`)),
)

var toolGetSessionHistory = mcp.NewTool("get_session_history",
	mcp.WithDescription("List a program's finalized sessions, newest first, with the goals at session time and the final set of each exercise."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
)

// --- Tool handlers ---

func requireProgramID(req mcp.CallToolRequest) (uuid.UUID, error) {
	raw, err := req.RequireString("program_id")
	if err != nil {
		return uuid.Nil, fmt.Errorf("program_id parameter is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("program_id is not a valid UUID")
	}
	return id, nil
}

func (h *handlers) listPrograms(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	programs, err := h.store.ListPrograms(ctx)
	if err != nil {
		h.log.Error("mcp list_programs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(programs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTodaysWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireProgramID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	group, err := h.sessions.TodaysGroup(ctx, id)
	if err != nil {
		h.log.Error("mcp get_todays_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(group)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) logSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireProgramID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	raw, err := req.RequireString("entries")
	if err != nil {
		return mcp.NewToolResultError("entries parameter is required"), nil
	}
	var entries map[uuid.UUID][]program.SetEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return mcp.NewToolResultError("entries is not valid JSON: " + err.Error()), nil
	}

	summary, err := h.sessions.FinalizeSession(ctx, id, entries)
	if err != nil {
		h.log.Error("mcp log_session", "program", id, "error", err)
		return mcp.NewToolResultError("finalize failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(summary)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessionHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireProgramID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sessions, err := h.store.ListSessions(ctx, id)
	if err != nil {
		h.log.Error("mcp get_session_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
