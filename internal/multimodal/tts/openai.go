package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAITTSConfig holds configuration for the OpenAI TTS backend.
type OpenAITTSConfig struct {
	APIKey  string
	BaseURL string // default: "https://api.openai.com/v1"
	Model   string // default: "tts-1"
	Voice   string // default: "alloy"
	Timeout time.Duration
}

// OpenAITTS synthesizes speech using OpenAI's TTS API.
type OpenAITTS struct {
	cfg    OpenAITTSConfig
	client *openai.Client
}

// NewOpenAITTS creates an OpenAITTS with sensible defaults applied.
func NewOpenAITTS(cfg OpenAITTSConfig) *OpenAITTS {
	if cfg.Model == "" {
		cfg.Model = string(openai.TTSModel1)
	}
	if cfg.Voice == "" {
		cfg.Voice = string(openai.VoiceAlloy)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &OpenAITTS{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientCfg),
	}
}

func (o *OpenAITTS) Name() string { return "openai-tts" }

// Check resolves the configured model id against the API.
func (o *OpenAITTS) Check(ctx context.Context) error {
	if o.cfg.APIKey == "" {
		return ErrMissingAPIKey
	}
	if _, err := o.client.GetModel(ctx, o.cfg.Model); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrModelNotFound, o.cfg.Model, err)
	}
	return nil
}

// Synthesize converts text to audio and returns WAV bytes.
func (o *OpenAITTS) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	voice := req.Voice
	if voice == "" {
		voice = o.cfg.Voice
	}

	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(o.cfg.Model),
		Input:          req.Input,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatWav,
		Speed:          req.Speed,
	})
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	return &SynthesisResult{
		Audio:       audio,
		ContentType: "audio/wav",
	}, nil
}
