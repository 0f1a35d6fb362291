package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

type HandlersRegistry struct {
	mux   *asynq.ServeMux
	types []string
}

// NewHandlersRegistry returns a registry whose mux logs every processed task.
func NewHandlersRegistry() *HandlersRegistry {
	mux := asynq.NewServeMux()
	mux.Use(logTask)
	return &HandlersRegistry{mux: mux}
}

func (r *HandlersRegistry) Register(taskType string, handler asynq.Handler) {
	r.mux.Handle(taskType, handler)
	r.types = append(r.types, taskType)
}

// Types lists the registered task types in registration order.
func (r *HandlersRegistry) Types() []string {
	return append([]string(nil), r.types...)
}

func (r *HandlersRegistry) Mux() *asynq.ServeMux {
	return r.mux
}

func logTask(next asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
		start := time.Now()
		err := next.ProcessTask(ctx, t)
		if err != nil {
			slog.Error("task failed", "type", t.Type(), "duration_ms", time.Since(start).Milliseconds(), "error", err)
			return err
		}
		slog.Debug("task done", "type", t.Type(), "duration_ms", time.Since(start).Milliseconds())
		return nil
	})
}
