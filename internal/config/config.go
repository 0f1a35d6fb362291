package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	CORS     CORSConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NLP      NLPConfig
	Speech   SpeechConfig
	STT      STTConfig
	TTS      TTSConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

type CORSConfig struct {
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MinConns       int
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// Word list sources.
const (
	WordsBuiltin  = "builtin"
	WordsFile     = "file"
	WordsDatabase = "database"
)

type NLPConfig struct {
	MaxSuggestions int
	WordsSource    string
	WordsFile      string
}

// Fallback policies for unavailable speech models.
const (
	FallbackMock  = "mock"
	FallbackError = "error"
)

type SpeechConfig struct {
	Fallback string
}

type STTConfig struct {
	Backend       string // "openai", "local" or "whisper-cli"
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	LocalBaseURL  string // default: "http://localhost:8178"
	WhisperBin    string
	ModelPath     string // required when backend=whisper-cli
	Language      string
	Timeout       time.Duration
}

type TTSConfig struct {
	Backend       string // "openai" or "local"
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	OpenAIVoice   string
	LocalBinPath  string // default: "piper"
	LocalModel    string // required when backend=local
	Timeout       time.Duration
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 5000)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cacheTTL, err := getEnvDuration("CACHE_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	maxSuggestions, err := getEnvInt("NLP_MAX_SUGGESTIONS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid NLP_MAX_SUGGESTIONS: %w", err)
	}

	sttTimeout, err := getEnvDuration("STT_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid STT_TIMEOUT: %w", err)
	}

	ttsTimeout, err := getEnvDuration("TTS_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid TTS_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       maxConns,
			MinConns:       minConns,
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			CacheTTL: cacheTTL,
		},
		NLP: NLPConfig{
			MaxSuggestions: maxSuggestions,
			WordsSource:    getEnv("NLP_WORDS_SOURCE", WordsBuiltin),
			WordsFile:      getEnv("NLP_WORDS_FILE", ""),
		},
		Speech: SpeechConfig{
			Fallback: getEnv("SPEECH_FALLBACK", FallbackMock),
		},
		STT: STTConfig{
			Backend:       getEnv("STT_BACKEND", "local"),
			OpenAIKey:     getEnv("STT_OPENAI_KEY", getEnv("OPENAI_API_KEY", "")),
			OpenAIBaseURL: getEnv("STT_OPENAI_BASE_URL", ""),
			OpenAIModel:   getEnv("STT_OPENAI_MODEL", "whisper-1"),
			LocalBaseURL:  getEnv("STT_LOCAL_BASE_URL", "http://localhost:8178"),
			WhisperBin:    getEnv("STT_WHISPER_BIN", "whisper-cli"),
			ModelPath:     getEnv("STT_MODEL_PATH", "models/ggml-small-sw.bin"),
			Language:      getEnv("STT_LANGUAGE", "sw"),
			Timeout:       sttTimeout,
		},
		TTS: TTSConfig{
			Backend:       getEnv("TTS_BACKEND", "local"),
			OpenAIKey:     getEnv("TTS_OPENAI_KEY", getEnv("OPENAI_API_KEY", "")),
			OpenAIBaseURL: getEnv("TTS_OPENAI_BASE_URL", ""),
			OpenAIModel:   getEnv("TTS_OPENAI_MODEL", "tts-1"),
			OpenAIVoice:   getEnv("TTS_OPENAI_VOICE", "alloy"),
			LocalBinPath:  getEnv("TTS_LOCAL_PIPER_BIN", "piper"),
			LocalModel:    getEnv("TTS_LOCAL_PIPER_MODEL", "models/sw_CD-lanfrica-medium.onnx"),
			Timeout:       ttsTimeout,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var problems []string

	switch c.Speech.Fallback {
	case FallbackMock, FallbackError:
	default:
		problems = append(problems, fmt.Sprintf("SPEECH_FALLBACK must be %q or %q", FallbackMock, FallbackError))
	}

	switch c.STT.Backend {
	case "openai", "local", "whisper-cli":
	default:
		problems = append(problems, fmt.Sprintf("unknown STT_BACKEND %q", c.STT.Backend))
	}

	switch c.TTS.Backend {
	case "openai", "local":
	default:
		problems = append(problems, fmt.Sprintf("unknown TTS_BACKEND %q", c.TTS.Backend))
	}

	switch c.NLP.WordsSource {
	case WordsBuiltin:
	case WordsFile:
		if c.NLP.WordsFile == "" {
			problems = append(problems, "NLP_WORDS_FILE is required when NLP_WORDS_SOURCE=file")
		}
	case WordsDatabase:
		if c.Database.URL == "" {
			problems = append(problems, "DATABASE_URL is required when NLP_WORDS_SOURCE=database")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown NLP_WORDS_SOURCE %q", c.NLP.WordsSource))
	}

	if c.NLP.MaxSuggestions < 0 {
		problems = append(problems, "NLP_MAX_SUGGESTIONS must be >= 0")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
