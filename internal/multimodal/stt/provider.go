package stt

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikhilbhutani/kiswahili/internal/config"
)

var (
	ErrMissingAPIKey  = errors.New("stt: api key not set")
	ErrModelNotFound  = errors.New("stt: model not found")
	ErrBinaryNotFound = errors.New("stt: binary not found")

	ErrServerUnreachable = errors.New("stt: server unreachable")
)

// TranscriptionRequest holds the parameters for audio transcription.
type TranscriptionRequest struct {
	Audio    []byte
	FileName string // name sent with the upload; the extension hints the format
	Language string
	Prompt   string
}

// TranscriptionResponse holds the transcription result.
type TranscriptionResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
}

// STTProvider is the interface for speech-to-text backends.
type STTProvider interface {
	Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error)
	Name() string
}

// Checker is implemented by providers that can verify their model and
// dependencies before the first transcription.
type Checker interface {
	Check(ctx context.Context) error
}

// Open builds the provider selected by cfg.Backend and runs its Check.
func Open(ctx context.Context, cfg config.STTConfig) (STTProvider, error) {
	var p STTProvider
	switch cfg.Backend {
	case "openai":
		p = NewOpenAISTT(OpenAISTTConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.Timeout,
		})
	case "local":
		p = NewLocalSTT(LocalSTTConfig{BaseURL: cfg.LocalBaseURL, Timeout: cfg.Timeout})
	case "whisper-cli":
		p = NewWhisperCLI(WhisperCLIConfig{
			BinPath:   cfg.WhisperBin,
			ModelPath: cfg.ModelPath,
		})
	default:
		return nil, fmt.Errorf("unknown stt backend %q", cfg.Backend)
	}

	if c, ok := p.(Checker); ok {
		if err := c.Check(ctx); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name(), err)
		}
	}
	return p, nil
}
