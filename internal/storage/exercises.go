package storage

import (
	"context"
	"fmt"

	"github.com/ctfbruce/LiftIt/internal/program"
	"github.com/google/uuid"
)

// InsertExercise adds a catalog entry.
func (db *DB) InsertExercise(ctx context.Context, ex program.Exercise) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO exercises (id, name, notes) VALUES ($1, $2, $3)`,
		ex.ID, ex.Name, ex.Notes)
	if err != nil {
		return fmt.Errorf("inserting exercise: %w", err)
	}
	return nil
}

// ListExercises returns the full catalog ordered by name.
func (db *DB) ListExercises(ctx context.Context) ([]program.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, notes FROM exercises ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []program.Exercise
	for rows.Next() {
		var ex program.Exercise
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.Notes); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, ex)
	}
	return result, rows.Err()
}

// GetExercise retrieves one catalog entry.
func (db *DB) GetExercise(ctx context.Context, id uuid.UUID) (program.Exercise, error) {
	var ex program.Exercise
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, notes FROM exercises WHERE id = $1`, id).
		Scan(&ex.ID, &ex.Name, &ex.Notes)
	if err != nil {
		return program.Exercise{}, scanErr(err, ErrExerciseNotFound, "querying exercise")
	}
	return ex, nil
}

// DeleteExercise removes a catalog entry. Slot and history references are
// nulled out by the schema (ON DELETE SET NULL), never deleted.
func (db *DB) DeleteExercise(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}
