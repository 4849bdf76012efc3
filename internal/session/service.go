// Package session orchestrates one workout finalize: recording raw set
// entries, progressing each slot's targets, advancing the schedule pointer,
// and committing the whole thing atomically through a repository.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ctfbruce/LiftIt/internal/program"
	"github.com/google/uuid"
)

// Repository is the persistence collaborator. CommitFinalize must apply the
// whole finalize atomically: either every mutation lands or none do.
type Repository interface {
	Program(ctx context.Context, id uuid.UUID) (program.Program, error)
	CommitFinalize(ctx context.Context, f Finalize) error
}

// DraftStore buffers unsaved set entries across navigation. It is external to
// the engine and never part of durable domain state.
type DraftStore interface {
	SaveDraft(programID uuid.UUID, dayIndex, groupSlot int, entries map[uuid.UUID][]program.SetEntry) error
	LoadDraft(programID uuid.UUID, dayIndex, groupSlot int) (map[uuid.UUID][]program.SetEntry, error)
	ClearDraft(programID uuid.UUID) error
}

// Finalize is the atomic mutation set produced by a successful session:
// the advanced schedule pointer, every progressed slot, and the new history
// row with its records.
type Finalize struct {
	ProgramID uuid.UUID
	DayIndex  int
	GroupSlot int
	Slots     []program.Slot
	Session   program.Session
}

// StorageError marks a failed commit. The program's durable state still
// matches the last successful commit, so the caller may retry the finalize
// unchanged.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// Summary is what the caller gets back after a successful finalize.
type Summary struct {
	SessionID uuid.UUID         `json:"sessionId"`
	Date      time.Time         `json:"date"`
	DayIndex  int               `json:"dayIndex"`
	Group     string            `json:"group"`
	Exercises []ExerciseSummary `json:"exercises"`
}

// ExerciseSummary lists one exercise's performance in the finalized session.
type ExerciseSummary struct {
	ExerciseID uuid.UUID `json:"exerciseId"`
	Name       string    `json:"name"`
	Sets       int       `json:"sets"`
	LastWeight float64   `json:"lastWeight"`
	LastReps   int       `json:"lastReps"`
	Volume     float64   `json:"volume"`
	GoalVolume float64   `json:"goalVolume"`
	Hit        bool      `json:"hit"`
}

// Service wires the pure program logic to a repository and draft store.
// It holds no state between calls.
type Service struct {
	repo   Repository
	drafts DraftStore
	rules  program.Rules
	log    *slog.Logger
	now    func() time.Time
}

// New creates a Service using the default progression rules.
func New(repo Repository, drafts DraftStore, log *slog.Logger) *Service {
	return NewWithRules(repo, drafts, program.DefaultRules, log)
}

// NewWithRules creates a Service with caller-supplied progression constants.
func NewWithRules(repo Repository, drafts DraftStore, rules program.Rules, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		drafts: drafts,
		rules:  rules,
		log:    log,
		now:    time.Now,
	}
}

// TodaysGroup returns the group of exercises currently due for the program.
func (s *Service) TodaysGroup(ctx context.Context, programID uuid.UUID) (program.Group, error) {
	p, err := s.repo.Program(ctx, programID)
	if err != nil {
		return program.Group{}, fmt.Errorf("loading program: %w", err)
	}
	return program.DueGroup(p)
}

// FinalizeSession records the raw entries against the due group, progresses
// every slot, advances the schedule pointer, and commits everything in one
// transaction. On a commit failure nothing is applied: the service only ever
// mutates copies, so the program remains consistent with the last successful
// commit.
func (s *Service) FinalizeSession(ctx context.Context, programID uuid.UUID, entries map[uuid.UUID][]program.SetEntry) (*Summary, error) {
	p, err := s.repo.Program(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	group, err := program.DueGroup(p)
	if err != nil {
		return nil, err
	}

	results, err := program.RecordSession(group, entries)
	if err != nil {
		return nil, err
	}

	coerced := 0
	for _, r := range results {
		coerced += r.CoercedSets
	}
	if coerced > 0 {
		s.log.Debug("blank or unparsable set entries coerced to goals",
			"program", programID, "sets", coerced)
	}

	sess := program.Session{
		ID:        uuid.New(),
		ProgramID: programID,
		Date:      s.now(),
	}

	updated := make([]program.Slot, 0, len(group.Slots))
	summary := &Summary{
		SessionID: sess.ID,
		Date:      sess.Date,
		DayIndex:  p.CurrentDayIndex,
		Group:     group.Label,
	}
	for _, slot := range group.Slots {
		r := results[slot.ID]

		// History captures the goals as they were going into the session,
		// plus the final set only.
		rec := program.SessionExercise{
			SessionID:       sess.ID,
			ExerciseID:      slot.ExerciseID,
			Sets:            slot.Sets,
			RepGoal:         slot.RepGoal,
			WeightGoal:      slot.WeightGoal,
			RepsPerformed:   r.LastReps,
			WeightPerformed: r.LastWeight,
		}
		if slot.Exercise != nil {
			rec.ExerciseName = slot.Exercise.Name
		}
		sess.Exercises = append(sess.Exercises, rec)

		updated = append(updated, program.Progress(slot, r, s.rules))

		summary.Exercises = append(summary.Exercises, ExerciseSummary{
			ExerciseID: slot.ExerciseID,
			Name:       rec.ExerciseName,
			Sets:       slot.Sets,
			LastWeight: r.LastWeight,
			LastReps:   r.LastReps,
			Volume:     r.ActualVolume,
			GoalVolume: r.GoalVolume,
			Hit:        r.ActualVolume >= r.GoalVolume,
		})
	}

	day, groupSlot := program.Advance(p)
	f := Finalize{
		ProgramID: programID,
		DayIndex:  day,
		GroupSlot: groupSlot,
		Slots:     updated,
		Session:   sess,
	}

	if err := s.repo.CommitFinalize(ctx, f); err != nil {
		return nil, &StorageError{Err: err}
	}

	if s.drafts != nil {
		if err := s.drafts.ClearDraft(programID); err != nil {
			s.log.Warn("clearing draft after finalize", "program", programID, "error", err)
		}
	}

	s.log.Info("session finalized",
		"program", programID,
		"session", sess.ID,
		"group", group.Label,
		"exercises", len(summary.Exercises),
		"next_day", day,
		"next_group_slot", groupSlot,
	)
	return summary, nil
}

// SaveDraft buffers unsaved entries for the program's currently due group.
func (s *Service) SaveDraft(ctx context.Context, programID uuid.UUID, entries map[uuid.UUID][]program.SetEntry) error {
	if s.drafts == nil {
		return nil
	}
	p, err := s.repo.Program(ctx, programID)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	return s.drafts.SaveDraft(programID, p.CurrentDayIndex, p.CurrentGroupSlot, entries)
}

// LoadDraft returns any buffered entries for the program's currently due
// group, or nil when there are none.
func (s *Service) LoadDraft(ctx context.Context, programID uuid.UUID) (map[uuid.UUID][]program.SetEntry, error) {
	if s.drafts == nil {
		return nil, nil
	}
	p, err := s.repo.Program(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return s.drafts.LoadDraft(programID, p.CurrentDayIndex, p.CurrentGroupSlot)
}

// CancelDraft discards any buffered entries for the program. Domain state is
// untouched.
func (s *Service) CancelDraft(programID uuid.UUID) error {
	if s.drafts == nil {
		return nil
	}
	return s.drafts.ClearDraft(programID)
}
