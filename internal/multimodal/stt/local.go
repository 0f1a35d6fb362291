package stt

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// LocalSTTConfig holds configuration for the local whisper.cpp STT backend.
type LocalSTTConfig struct {
	BaseURL string // default: "http://localhost:8178"
	Timeout time.Duration
}

// LocalSTT wraps OpenAISTT pointing at a local whisper.cpp server.
// Start the server with: ./server -m models/ggml-small.bin --port 8178
type LocalSTT struct {
	*OpenAISTT
	baseURL string
	probe   *http.Client
}

// NewLocalSTT creates a LocalSTT backed by a local whisper.cpp HTTP server.
func NewLocalSTT(cfg LocalSTTConfig) *LocalSTT {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:8178"
	}
	return &LocalSTT{
		OpenAISTT: NewOpenAISTT(OpenAISTTConfig{
			BaseURL: baseURL,
			Timeout: cfg.Timeout,
			// No API key needed for local server
		}),
		baseURL: baseURL,
		probe:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (l *LocalSTT) Name() string { return "local-whisper" }

// Check verifies the server answers HTTP. whisper.cpp serves a single model
// and has no model listing, so any response status counts as reachable.
func (l *LocalSTT) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrServerUnreachable, l.baseURL, err)
	}
	resp, err := l.probe.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrServerUnreachable, l.baseURL, err)
	}
	resp.Body.Close()
	return nil
}

func (l *LocalSTT) Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error) {
	return l.OpenAISTT.Transcribe(ctx, req)
}
