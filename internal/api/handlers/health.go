package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nikhilbhutani/kiswahili/internal/speech"
)

// Pinger is satisfied by the pgx pool and the redis cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

type stater interface {
	State() speech.State
	Name() string
}

type HealthHandler struct {
	adapters map[string]stater
	fallback speech.Fallback
	pingers  map[string]Pinger
}

// NewHealthHandler reports the configured speech adapters and every non-nil
// pinger. A nil adapter is reported as not configured.
func NewHealthHandler(rec speech.SpeechRecognizer, syn speech.SpeechSynthesizer, fallback speech.Fallback, pingers map[string]Pinger) *HealthHandler {
	h := &HealthHandler{
		adapters: map[string]stater{},
		fallback: fallback,
		pingers:  map[string]Pinger{},
	}
	if rec != nil {
		h.adapters["stt"] = rec
	}
	if syn != nil {
		h.adapters["tts"] = syn
	}
	for name, p := range pingers {
		if p != nil {
			h.pingers[name] = p
		}
	}
	return h
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	healthy := true

	for _, key := range []string{"stt", "tts"} {
		a, ok := h.adapters[key]
		if !ok {
			checks[key] = "not configured"
			continue
		}
		state := a.State()
		checks[key] = a.Name() + ": " + state.String()
		if state == speech.Unavailable && h.fallback == speech.FallbackError {
			healthy = false
		}
	}

	for name, p := range h.pingers {
		if err := p.Ping(r.Context()); err != nil {
			checks[name] = "unhealthy: " + err.Error()
			healthy = false
		} else {
			checks[name] = "ok"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{"status": statusStr(status), "checks": checks})
}

func statusStr(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "unhealthy"
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
