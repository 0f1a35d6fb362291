package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/nikhilbhutani/kiswahili/internal/config"
	"github.com/nikhilbhutani/kiswahili/internal/database"
	"github.com/nikhilbhutani/kiswahili/internal/logging"
	"github.com/nikhilbhutani/kiswahili/internal/queue"
	"github.com/nikhilbhutani/kiswahili/internal/queue/workers"
	"github.com/nikhilbhutani/kiswahili/internal/vocabulary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logging.New(os.Stdout, cfg.Log))

	ctx := context.Background()

	// The worker writes imported words, so the database is required here.
	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, os.DirFS(cfg.Database.MigrationsPath)); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	srv := asynq.NewServer(
		queue.RedisOpt(cfg.Redis),
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	registry := queue.NewHandlersRegistry()

	vocabWorker := workers.NewVocabularyWorker(vocabulary.NewRepository(db))
	registry.Register(queue.TypeVocabularyImport, asynq.HandlerFunc(vocabWorker.ProcessTask))

	slog.Info("starting worker", "concurrency", 4, "task_types", registry.Types())
	if err := srv.Run(registry.Mux()); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
