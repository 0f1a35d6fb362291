package speech

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nikhilbhutani/kiswahili/internal/multimodal/tts"
)

// Synthesizer adapts a TTS backend to SpeechSynthesizer.
type Synthesizer struct {
	name     string
	fallback Fallback
	guard    *guard[tts.TTSProvider]
}

func NewSynthesizer(name string, open Opener[tts.TTSProvider], fallback Fallback) *Synthesizer {
	return &Synthesizer{
		name:     name,
		fallback: fallback,
		guard:    newGuard(open),
	}
}

func (s *Synthesizer) Name() string { return s.name }

func (s *Synthesizer) State() State { return s.guard.current() }

func (s *Synthesizer) Warm(ctx context.Context) {
	if _, err := s.guard.acquire(ctx); err != nil {
		slog.Warn("speech synthesizer unavailable", "backend", s.name, "error", err)
		return
	}
	slog.Info("speech synthesizer ready", "backend", s.name)
}

func (s *Synthesizer) Synthesize(ctx context.Context, text string) (Audio, error) {
	p, err := s.guard.acquire(ctx)
	if err != nil {
		return s.degrade(ctx, fmt.Errorf("open: %w", err))
	}

	res, err := p.Synthesize(ctx, tts.SynthesisRequest{Input: text})
	if err != nil {
		return s.degrade(ctx, fmt.Errorf("synthesize: %w", err))
	}

	return Audio{Data: res.Audio, ContentType: res.ContentType, Backend: s.name}, nil
}

func (s *Synthesizer) degrade(ctx context.Context, cause error) (Audio, error) {
	if ctx.Err() != nil {
		return Audio{}, ctx.Err()
	}
	if s.fallback == FallbackError {
		return Audio{}, fmt.Errorf("%w: %s: %v", ErrUnavailable, s.name, cause)
	}
	slog.Warn("returning placeholder audio", "backend", s.name, "error", cause)
	return Audio{
		Data:        MockAudio(),
		ContentType: MockAudioContentType,
		Backend:     s.name,
		Degraded:    true,
	}, nil
}
