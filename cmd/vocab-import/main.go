// Command vocab-import reads a newline-delimited word list and queues it for
// insertion into the vocabulary table by the worker.
//
//	vocab-import words.txt
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nikhilbhutani/kiswahili/internal/config"
	"github.com/nikhilbhutani/kiswahili/internal/logging"
	"github.com/nikhilbhutani/kiswahili/internal/queue"
	"github.com/nikhilbhutani/kiswahili/internal/vocabulary"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: vocab-import <words-file>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logging.New(os.Stderr, cfg.Log))

	words, err := vocabulary.LoadFile(path)
	if err != nil {
		slog.Error("read word list", "path", path, "error", err)
		os.Exit(1)
	}

	client := queue.NewClient(cfg.Redis)
	defer client.Close()

	id, err := client.EnqueueVocabularyImport(queue.VocabularyImportPayload{
		Words:  words,
		Source: filepath.Base(path),
	})
	if err != nil {
		slog.Error("enqueue import", "error", err)
		os.Exit(1)
	}

	slog.Info("vocabulary import queued", "task_id", id, "words", len(words))
}
