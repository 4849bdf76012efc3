package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
)

// TestScanErrNoRows verifies only a no-rows lookup maps to the not-found
// sentinel.
func TestScanErrNoRows(t *testing.T) {
	err := scanErr(pgx.ErrNoRows, ErrProgramNotFound, "querying program")
	if !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("err = %v, want ErrProgramNotFound", err)
	}

	wrapped := scanErr(fmt.Errorf("scan: %w", pgx.ErrNoRows), ErrExerciseNotFound, "querying exercise")
	if !errors.Is(wrapped, ErrExerciseNotFound) {
		t.Errorf("wrapped no-rows err = %v, want ErrExerciseNotFound", wrapped)
	}
}

// TestScanErrInfrastructureFailure verifies connection-level errors keep
// their identity instead of masquerading as not-found.
func TestScanErrInfrastructureFailure(t *testing.T) {
	cause := errors.New("connection refused")
	err := scanErr(cause, ErrProgramNotFound, "querying program")

	if errors.Is(err, ErrProgramNotFound) {
		t.Errorf("infrastructure error reported as not found: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("err = %v, want wrapped %v", err, cause)
	}
}
