package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/kiswahili/internal/api"
	"github.com/nikhilbhutani/kiswahili/internal/cache"
	"github.com/nikhilbhutani/kiswahili/internal/config"
	"github.com/nikhilbhutani/kiswahili/internal/database"
	"github.com/nikhilbhutani/kiswahili/internal/logging"
	"github.com/nikhilbhutani/kiswahili/internal/multimodal/stt"
	"github.com/nikhilbhutani/kiswahili/internal/multimodal/tts"
	"github.com/nikhilbhutani/kiswahili/internal/nlp"
	"github.com/nikhilbhutani/kiswahili/internal/speech"
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
	deps := api.Dependencies{}

	// Database connection (optional, only needed for the database word source)
	var store vocabulary.DB
	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Warn("database unavailable, running without DB", "error", err)
	} else {
		defer db.Close()
		store = db
		deps.Database = db

		if err := database.RunMigrations(ctx, db, os.DirFS(cfg.Database.MigrationsPath)); err != nil {
			slog.Warn("migrations failed", "error", err)
		}
	}

	// Vocabulary
	vocab := nlp.DefaultVocabulary()
	words, err := vocabulary.Load(ctx, cfg.NLP, store)
	switch {
	case err != nil:
		slog.Warn("word list unavailable, using built-in list", "source", cfg.NLP.WordsSource, "error", err)
	case words != nil:
		vocab = nlp.NewVocabulary(words)
	}
	deps.NLP = nlp.NewService(vocab, cfg.NLP.MaxSuggestions)
	slog.Info("vocabulary loaded", "source", cfg.NLP.WordsSource, "words", deps.NLP.VocabularySize(),
		"max_suggestions", deps.NLP.MaxSuggestions())

	// Speech adapters
	fallback := speech.Fallback(cfg.Speech.Fallback)
	recognizer := speech.NewRecognizer(cfg.STT.Backend, func(ctx context.Context) (stt.STTProvider, error) {
		return stt.Open(ctx, cfg.STT)
	}, cfg.STT.Language, fallback)
	synthesizer := speech.NewSynthesizer(cfg.TTS.Backend, func(ctx context.Context) (tts.TTSProvider, error) {
		return tts.Open(ctx, cfg.TTS)
	}, fallback)

	warmCtx, cancelWarm := context.WithTimeout(ctx, 30*time.Second)
	recognizer.Warm(warmCtx)
	synthesizer.Warm(warmCtx)
	cancelWarm()

	deps.Recognizer = recognizer
	deps.Synthesizer = synthesizer

	// Redis connection (optional, enables the synthesis cache)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	ttsCache := cache.NewCache(rdb, "kiswahili:")
	if err := ttsCache.Ping(ctx); err != nil {
		slog.Warn("redis unavailable, running without cache", "error", err)
	} else {
		deps.Cache = ttsCache
		deps.Synthesizer = speech.NewCachedSynthesizer(synthesizer, ttsCache, cfg.Redis.CacheTTL)
	}

	// Setup router
	router := api.NewRouter(cfg, deps)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.STT.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr(), "fallback", cfg.Speech.Fallback)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
