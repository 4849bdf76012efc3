// Package seed loads an exercise catalog and optional program template from
// a YAML file and writes them to storage. It is a bootstrap collaborator; the
// engine never depends on it.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ctfbruce/LiftIt/internal/program"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// File is the on-disk seed format.
type File struct {
	Exercises []ExerciseSpec `yaml:"exercises"`
	Program   *ProgramSpec   `yaml:"program"`
}

type ExerciseSpec struct {
	Name  string `yaml:"name"`
	Notes string `yaml:"notes"`
}

type ProgramSpec struct {
	Name string    `yaml:"name"`
	Days []DaySpec `yaml:"days"`
}

type DaySpec struct {
	Day      int           `yaml:"day"`
	Workouts []WorkoutSpec `yaml:"workouts"`
}

type WorkoutSpec struct {
	Label     string     `yaml:"label"`
	Exercises []SlotSpec `yaml:"exercises"`
}

type SlotSpec struct {
	Exercise   string  `yaml:"exercise"` // catalog name
	Sets       int     `yaml:"sets"`
	RepMin     int     `yaml:"rep_min"`
	RepMax     int     `yaml:"rep_max"`
	RepGoal    int     `yaml:"rep_goal"`
	WeightGoal float64 `yaml:"weight_goal"`
}

// Store is the write surface the seeder needs. *storage.DB satisfies it.
type Store interface {
	InsertExercise(ctx context.Context, ex program.Exercise) error
	ListExercises(ctx context.Context) ([]program.Exercise, error)
	CreateProgram(ctx context.Context, p program.Program) error
}

// Stats counts what the seeder wrote.
type Stats struct {
	ExercisesInserted int
	ExercisesSkipped  int
	ProgramsCreated   int
	SlotsCreated      int
}

// Parse reads and validates a seed file.
func Parse(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	names := make(map[string]bool, len(f.Exercises))
	for _, ex := range f.Exercises {
		if ex.Name == "" {
			return fmt.Errorf("exercise with empty name")
		}
		if names[ex.Name] {
			return fmt.Errorf("duplicate exercise %q", ex.Name)
		}
		names[ex.Name] = true
	}
	if f.Program == nil {
		return nil
	}
	if f.Program.Name == "" {
		return fmt.Errorf("program name is required")
	}
	for _, day := range f.Program.Days {
		if day.Day < 1 {
			return fmt.Errorf("program day %d: day must be at least 1", day.Day)
		}
		for _, w := range day.Workouts {
			for _, s := range w.Exercises {
				if !names[s.Exercise] {
					return fmt.Errorf("day %d workout %q: unknown exercise %q", day.Day, w.Label, s.Exercise)
				}
				if s.Sets < 1 {
					return fmt.Errorf("day %d exercise %q: sets must be at least 1", day.Day, s.Exercise)
				}
				if s.RepMin > s.RepMax || s.RepGoal < s.RepMin || s.RepGoal > s.RepMax {
					return fmt.Errorf("day %d exercise %q: rep range %d..%d with goal %d is invalid",
						day.Day, s.Exercise, s.RepMin, s.RepMax, s.RepGoal)
				}
				if s.WeightGoal < 0 {
					return fmt.Errorf("day %d exercise %q: weight goal must not be negative", day.Day, s.Exercise)
				}
			}
		}
	}
	return nil
}

// Apply writes the catalog and program to the store. Exercises already in the
// catalog (by name) are reused rather than duplicated.
func Apply(ctx context.Context, store Store, f *File, log *slog.Logger) (*Stats, error) {
	stats := &Stats{}

	existing, err := store.ListExercises(ctx)
	if err != nil {
		return stats, fmt.Errorf("listing exercises: %w", err)
	}
	byName := make(map[string]uuid.UUID, len(existing))
	for _, ex := range existing {
		byName[ex.Name] = ex.ID
	}

	for _, spec := range f.Exercises {
		if _, ok := byName[spec.Name]; ok {
			stats.ExercisesSkipped++
			continue
		}
		ex := program.Exercise{ID: uuid.New(), Name: spec.Name, Notes: spec.Notes}
		if err := store.InsertExercise(ctx, ex); err != nil {
			return stats, fmt.Errorf("inserting exercise %q: %w", spec.Name, err)
		}
		byName[spec.Name] = ex.ID
		stats.ExercisesInserted++
	}

	if f.Program == nil {
		return stats, nil
	}

	p := program.Program{ID: uuid.New(), Name: f.Program.Name, CurrentDayIndex: 1}
	for _, day := range f.Program.Days {
		order := 0
		for _, w := range day.Workouts {
			for _, s := range w.Exercises {
				p.Slots = append(p.Slots, program.Slot{
					ID:         uuid.New(),
					ProgramID:  p.ID,
					DayIndex:   day.Day,
					Order:      order,
					GroupLabel: w.Label,
					ExerciseID: byName[s.Exercise],
					Sets:       s.Sets,
					RepMin:     s.RepMin,
					RepMax:     s.RepMax,
					RepGoal:    s.RepGoal,
					WeightGoal: s.WeightGoal,
				})
				order++
			}
		}
	}

	if err := store.CreateProgram(ctx, p); err != nil {
		return stats, fmt.Errorf("creating program %q: %w", p.Name, err)
	}
	stats.ProgramsCreated = 1
	stats.SlotsCreated = len(p.Slots)

	log.Info("seed applied",
		"exercises_inserted", stats.ExercisesInserted,
		"exercises_skipped", stats.ExercisesSkipped,
		"program", f.Program.Name,
		"slots", stats.SlotsCreated,
	)
	return stats, nil
}
