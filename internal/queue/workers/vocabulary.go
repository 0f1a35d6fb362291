package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/nikhilbhutani/kiswahili/internal/queue"
)

// WordStore persists imported words. vocabulary.Repository implements it.
type WordStore interface {
	Append(ctx context.Context, words []string) (int64, error)
}

type VocabularyWorker struct {
	store WordStore
}

func NewVocabularyWorker(store WordStore) *VocabularyWorker {
	return &VocabularyWorker{store: store}
}

func (w *VocabularyWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.VocabularyImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	if len(payload.Words) == 0 {
		slog.Warn("empty vocabulary import", "source", payload.Source)
		return nil
	}

	inserted, err := w.store.Append(ctx, payload.Words)
	if err != nil {
		return fmt.Errorf("append words: %w", err)
	}

	slog.Info("vocabulary import completed",
		"source", payload.Source,
		"received", len(payload.Words),
		"inserted", inserted,
	)
	return nil
}
