package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/ctfbruce/LiftIt/internal/program"
	"github.com/ctfbruce/LiftIt/internal/session"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CommitFinalize applies one finalized session in a single transaction:
// the advanced schedule pointer, every progressed slot, and the new history
// rows. Any error rolls the whole thing back, leaving the program exactly at
// its last committed state.
func (db *DB) CommitFinalize(ctx context.Context, f session.Finalize) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE programs SET current_day_index = $1, current_group_slot = $2 WHERE id = $3`,
			f.DayIndex, f.GroupSlot, f.ProgramID)
		if err != nil {
			return fmt.Errorf("updating schedule pointer: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrProgramNotFound
		}

		for _, s := range f.Slots {
			tag, err := tx.Exec(ctx,
				`UPDATE program_slots
				 SET rep_goal = $1, weight_goal = $2, consecutive_misses = $3
				 WHERE id = $4 AND program_id = $5`,
				s.RepGoal, s.WeightGoal, s.ConsecutiveMisses, s.ID, f.ProgramID)
			if err != nil {
				return fmt.Errorf("updating slot %s: %w", s.ID, err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("updating slot %s: no such slot", s.ID)
			}
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO workout_sessions (id, program_id, session_date) VALUES ($1, $2, $3)`,
			f.Session.ID, f.Session.ProgramID, f.Session.Date)
		if err != nil {
			return fmt.Errorf("inserting session: %w", err)
		}
		return insertSessionExercises(ctx, tx, f.Session.Exercises)
	})
}

func insertSessionExercises(ctx context.Context, tx pgx.Tx, recs []program.SessionExercise) error {
	if len(recs) == 0 {
		return nil
	}

	query := `INSERT INTO session_exercises (session_id, exercise_id, exercise_name,
		sets, rep_goal, weight_goal, reps_performed, weight_performed) VALUES `
	args := make([]any, 0, len(recs)*8)
	valueStrings := make([]string, 0, len(recs))

	for i, r := range recs {
		base := i * 8
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
		))
		var exID *uuid.UUID
		if r.ExerciseID != uuid.Nil {
			id := r.ExerciseID
			exID = &id
		}
		args = append(args, r.SessionID, exID, r.ExerciseName,
			r.Sets, r.RepGoal, r.WeightGoal, r.RepsPerformed, r.WeightPerformed)
	}

	query += strings.Join(valueStrings, ",")
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting session exercises: %w", err)
	}
	return nil
}

// ListSessions returns a program's session history, newest first, with
// per-exercise records attached.
func (db *DB) ListSessions(ctx context.Context, programID uuid.UUID) ([]program.Session, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, program_id, session_date FROM workout_sessions
		 WHERE program_id = $1 ORDER BY session_date DESC`, programID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []program.Session
	byID := make(map[uuid.UUID]int)
	for rows.Next() {
		var s program.Session
		if err := rows.Scan(&s.ID, &s.ProgramID, &s.Date); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		byID[s.ID] = len(sessions)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}

	recRows, err := db.Pool.Query(ctx,
		`SELECT se.id, se.session_id, se.exercise_id, se.exercise_name,
		        se.sets, se.rep_goal, se.weight_goal, se.reps_performed, se.weight_performed
		 FROM session_exercises se
		 JOIN workout_sessions ws ON ws.id = se.session_id
		 WHERE ws.program_id = $1
		 ORDER BY se.id ASC`, programID)
	if err != nil {
		return nil, fmt.Errorf("querying session exercises: %w", err)
	}
	defer recRows.Close()

	for recRows.Next() {
		var r program.SessionExercise
		var exID *uuid.UUID
		if err := recRows.Scan(&r.ID, &r.SessionID, &exID, &r.ExerciseName,
			&r.Sets, &r.RepGoal, &r.WeightGoal, &r.RepsPerformed, &r.WeightPerformed); err != nil {
			return nil, fmt.Errorf("scanning session exercise: %w", err)
		}
		if exID != nil {
			r.ExerciseID = *exID
		}
		if idx, ok := byID[r.SessionID]; ok {
			sessions[idx].Exercises = append(sessions[idx].Exercises, r)
		}
	}
	return sessions, recRows.Err()
}
