package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ctfbruce/LiftIt/internal/config"
	"github.com/ctfbruce/LiftIt/internal/seed"
	"github.com/ctfbruce/LiftIt/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	seedPath := flag.String("seed", "", "path to seed YAML file (required)")
	dryRun := flag.Bool("dry-run", false, "validate the seed file without writing to the database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *seedPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftit-seed -config config.yaml -seed seed.yaml [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := seed.Parse(*seedPath)
	if err != nil {
		log.Error("invalid seed file", "path", *seedPath, "error", err)
		os.Exit(1)
	}

	if *dryRun {
		log.Info("DRY RUN: seed file is valid",
			"exercises", len(f.Exercises),
			"has_program", f.Program != nil)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	stats, err := seed.Apply(ctx, db, f, log)
	if err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}

	log.Info("seed complete",
		"exercises_inserted", stats.ExercisesInserted,
		"exercises_skipped", stats.ExercisesSkipped,
		"programs_created", stats.ProgramsCreated,
		"slots_created", stats.SlotsCreated,
	)
}
