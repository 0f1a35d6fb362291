package stt

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAISTTConfig holds configuration for the OpenAI STT backend.
type OpenAISTTConfig struct {
	APIKey  string
	BaseURL string // default: "https://api.openai.com/v1"
	Model   string // default: "whisper-1"
	Timeout time.Duration
}

// OpenAISTT transcribes audio using OpenAI's Whisper API (or a compatible endpoint).
type OpenAISTT struct {
	cfg    OpenAISTTConfig
	client *openai.Client
}

// NewOpenAISTT creates an OpenAISTT with sensible defaults applied.
func NewOpenAISTT(cfg OpenAISTTConfig) *OpenAISTT {
	if cfg.Model == "" {
		cfg.Model = openai.Whisper1
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 300 * time.Second
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &OpenAISTT{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientCfg),
	}
}

func (o *OpenAISTT) Name() string { return "openai-whisper" }

// Check resolves the configured model against the API.
func (o *OpenAISTT) Check(ctx context.Context) error {
	if o.cfg.APIKey == "" {
		return ErrMissingAPIKey
	}
	if _, err := o.client.GetModel(ctx, o.cfg.Model); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrModelNotFound, o.cfg.Model, err)
	}
	return nil
}

// Transcribe uploads the audio as multipart form data and returns the text.
func (o *OpenAISTT) Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error) {
	name := req.FileName
	if name == "" {
		name = "audio.wav"
	}

	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.cfg.Model,
		FilePath: name,
		Reader:   bytes.NewReader(req.Audio),
		Language: req.Language,
		Prompt:   req.Prompt,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("transcription request: %w", err)
	}

	return &TranscriptionResponse{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
	}, nil
}
