package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/ctfbruce/LiftIt/internal/program"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateProgram inserts a program and its slots in one transaction. The
// schedule pointer starts at day 1, group 0.
func (db *DB) CreateProgram(ctx context.Context, p program.Program) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO programs (id, name, current_day_index, current_group_slot, created_at)
			 VALUES ($1, $2, 1, 0, now())`,
			p.ID, p.Name)
		if err != nil {
			return fmt.Errorf("inserting program: %w", err)
		}
		return insertSlots(ctx, tx, p.Slots)
	})
}

// insertSlots batch-inserts slot rows with numbered placeholders.
func insertSlots(ctx context.Context, tx pgx.Tx, slots []program.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	query := `INSERT INTO program_slots (id, program_id, day_index, slot_order, group_label,
		exercise_id, sets, rep_min, rep_max, rep_goal, weight_goal, consecutive_misses) VALUES `
	args := make([]any, 0, len(slots)*12)
	valueStrings := make([]string, 0, len(slots))

	for i, s := range slots {
		base := i * 12
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
			base+7, base+8, base+9, base+10, base+11, base+12,
		))
		var exID *uuid.UUID
		if s.ExerciseID != uuid.Nil {
			id := s.ExerciseID
			exID = &id
		}
		args = append(args, s.ID, s.ProgramID, s.DayIndex, s.Order, s.GroupLabel,
			exID, s.Sets, s.RepMin, s.RepMax, s.RepGoal, s.WeightGoal, s.ConsecutiveMisses)
	}

	query += strings.Join(valueStrings, ",")
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting program slots: %w", err)
	}
	return nil
}

// Program retrieves a program with all its slots, exercise names included.
func (db *DB) Program(ctx context.Context, id uuid.UUID) (program.Program, error) {
	var p program.Program
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, current_day_index, current_group_slot, created_at
		 FROM programs WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.CurrentDayIndex, &p.CurrentGroupSlot, &p.CreatedAt)
	if err != nil {
		return program.Program{}, scanErr(err, ErrProgramNotFound, "querying program")
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT s.id, s.program_id, s.day_index, s.slot_order, s.group_label,
		        s.exercise_id, e.name, e.notes,
		        s.sets, s.rep_min, s.rep_max, s.rep_goal, s.weight_goal, s.consecutive_misses
		 FROM program_slots s
		 LEFT JOIN exercises e ON e.id = s.exercise_id
		 WHERE s.program_id = $1
		 ORDER BY s.day_index ASC, s.slot_order ASC`, id)
	if err != nil {
		return program.Program{}, fmt.Errorf("querying program slots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s program.Slot
		var exID *uuid.UUID
		var exName, exNotes *string
		if err := rows.Scan(&s.ID, &s.ProgramID, &s.DayIndex, &s.Order, &s.GroupLabel,
			&exID, &exName, &exNotes,
			&s.Sets, &s.RepMin, &s.RepMax, &s.RepGoal, &s.WeightGoal, &s.ConsecutiveMisses); err != nil {
			return program.Program{}, fmt.Errorf("scanning program slot: %w", err)
		}
		if exID != nil {
			s.ExerciseID = *exID
			s.Exercise = &program.Exercise{ID: *exID}
			if exName != nil {
				s.Exercise.Name = *exName
			}
			if exNotes != nil {
				s.Exercise.Notes = *exNotes
			}
		}
		p.Slots = append(p.Slots, s)
	}
	return p, rows.Err()
}

// ListPrograms returns all programs without their slots.
func (db *DB) ListPrograms(ctx context.Context) ([]program.Program, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, current_day_index, current_group_slot, created_at
		 FROM programs ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying programs: %w", err)
	}
	defer rows.Close()

	var result []program.Program
	for rows.Next() {
		var p program.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.CurrentDayIndex, &p.CurrentGroupSlot, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning program: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// DeleteProgram removes a program. Slots and sessions cascade in the schema.
func (db *DB) DeleteProgram(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting program: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProgramNotFound
	}
	return nil
}

// AddWorkout appends a labeled group of slots to the end of a day, numbering
// them after the day's current highest order.
func (db *DB) AddWorkout(ctx context.Context, programID uuid.UUID, dayIndex int, label string, slots []program.Slot) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		var nextOrder int
		err := tx.QueryRow(ctx,
			`SELECT COALESCE(MAX(slot_order) + 1, 0) FROM program_slots
			 WHERE program_id = $1 AND day_index = $2`,
			programID, dayIndex).Scan(&nextOrder)
		if err != nil {
			return fmt.Errorf("numbering workout slots: %w", err)
		}

		for i := range slots {
			slots[i].ProgramID = programID
			slots[i].DayIndex = dayIndex
			slots[i].Order = nextOrder + i
			slots[i].GroupLabel = label
		}
		return insertSlots(ctx, tx, slots)
	})
}
