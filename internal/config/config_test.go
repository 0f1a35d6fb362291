package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Addr())
	assert.Equal(t, 5, cfg.NLP.MaxSuggestions)
	assert.Equal(t, WordsBuiltin, cfg.NLP.WordsSource)
	assert.Equal(t, FallbackMock, cfg.Speech.Fallback)
	assert.Equal(t, "local", cfg.STT.Backend)
	assert.Equal(t, "sw", cfg.STT.Language)
	assert.Equal(t, "piper", cfg.TTS.LocalBinPath)
	assert.Equal(t, 24*time.Hour, cfg.Redis.CacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("NLP_MAX_SUGGESTIONS", "3")
	t.Setenv("SPEECH_FALLBACK", "error")
	t.Setenv("STT_BACKEND", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TTS_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, 3, cfg.NLP.MaxSuggestions)
	assert.Equal(t, FallbackError, cfg.Speech.Fallback)
	assert.Equal(t, "openai", cfg.STT.Backend)
	assert.Equal(t, "sk-test", cfg.STT.OpenAIKey)
	assert.Equal(t, "sk-test", cfg.TTS.OpenAIKey)
	assert.Equal(t, 5*time.Second, cfg.TTS.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad port", "SERVER_PORT", "abc"},
		{"bad duration", "CACHE_TTL", "forever"},
		{"bad fallback", "SPEECH_FALLBACK", "silent"},
		{"bad stt backend", "STT_BACKEND", "vosk"},
		{"bad tts backend", "TTS_BACKEND", "espeak"},
		{"negative bound", "NLP_MAX_SUGGESTIONS", "-1"},
		{"file source without file", "NLP_WORDS_SOURCE", "file"},
		{"database source without url", "NLP_WORDS_SOURCE", "database"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
