package speech

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nikhilbhutani/kiswahili/internal/multimodal/stt"
)

// Recognizer adapts an STT backend to SpeechRecognizer.
type Recognizer struct {
	name     string
	language string
	fallback Fallback
	guard    *guard[stt.STTProvider]
}

func NewRecognizer(name string, open Opener[stt.STTProvider], language string, fallback Fallback) *Recognizer {
	if language == "" {
		language = "sw"
	}
	return &Recognizer{
		name:     name,
		language: language,
		fallback: fallback,
		guard:    newGuard(open),
	}
}

func (r *Recognizer) Name() string { return r.name }

func (r *Recognizer) State() State { return r.guard.current() }

// Warm attempts the initial open so that startup logs report the backend
// state. Failures are not fatal; the next Recognize retries.
func (r *Recognizer) Warm(ctx context.Context) {
	if _, err := r.guard.acquire(ctx); err != nil {
		slog.Warn("speech recognizer unavailable", "backend", r.name, "error", err)
		return
	}
	slog.Info("speech recognizer ready", "backend", r.name)
}

func (r *Recognizer) Recognize(ctx context.Context, audio []byte) (Transcript, error) {
	p, err := r.guard.acquire(ctx)
	if err != nil {
		return r.degrade(ctx, fmt.Errorf("open: %w", err))
	}

	resp, err := p.Transcribe(ctx, stt.TranscriptionRequest{
		Audio:    audio,
		FileName: "audio.wav",
		Language: r.language,
	})
	if err != nil {
		return r.degrade(ctx, fmt.Errorf("transcribe: %w", err))
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		text = NoSpeechText
	}
	return Transcript{Text: text, Backend: r.name}, nil
}

func (r *Recognizer) degrade(ctx context.Context, cause error) (Transcript, error) {
	if ctx.Err() != nil {
		return Transcript{}, ctx.Err()
	}
	if r.fallback == FallbackError {
		return Transcript{}, fmt.Errorf("%w: %s: %v", ErrUnavailable, r.name, cause)
	}
	slog.Warn("returning placeholder transcript", "backend", r.name, "error", cause)
	return Transcript{Text: MockTranscript, Backend: r.name, Degraded: true}, nil
}
