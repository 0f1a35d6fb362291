package tts

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikhilbhutani/kiswahili/internal/config"
)

var (
	ErrMissingAPIKey  = errors.New("tts: api key not set")
	ErrModelNotFound  = errors.New("tts: model not found")
	ErrBinaryNotFound = errors.New("tts: binary not found")
)

// SynthesisRequest holds the parameters for text-to-speech generation.
type SynthesisRequest struct {
	Input string  `json:"input"`
	Voice string  `json:"voice,omitempty"`
	Speed float64 `json:"speed,omitempty"`
}

// SynthesisResult holds the generated audio and its content type.
type SynthesisResult struct {
	Audio       []byte
	ContentType string // always "audio/wav" for the backends here
}

// TTSProvider is the interface for text-to-speech backends.
type TTSProvider interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error)
	Name() string
}

// Checker is implemented by providers that can verify their model and
// dependencies before the first synthesis.
type Checker interface {
	Check(ctx context.Context) error
}

// Open builds the provider selected by cfg.Backend and runs its Check.
func Open(ctx context.Context, cfg config.TTSConfig) (TTSProvider, error) {
	var p TTSProvider
	switch cfg.Backend {
	case "openai":
		p = NewOpenAITTS(OpenAITTSConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Voice:   cfg.OpenAIVoice,
			Timeout: cfg.Timeout,
		})
	case "local":
		p = NewLocalTTS(LocalTTSConfig{
			PiperBinPath: cfg.LocalBinPath,
			ModelPath:    cfg.LocalModel,
		})
	default:
		return nil, fmt.Errorf("unknown tts backend %q", cfg.Backend)
	}

	if c, ok := p.(Checker); ok {
		if err := c.Check(ctx); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name(), err)
		}
	}
	return p, nil
}
