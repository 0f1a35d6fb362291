package stt

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// WhisperCLIConfig holds configuration for the whisper.cpp command line backend.
type WhisperCLIConfig struct {
	BinPath   string // default: "whisper-cli"
	ModelPath string // required: path to the ggml model file
}

// WhisperCLI transcribes by running the whisper.cpp binary on a temp file.
type WhisperCLI struct {
	cfg WhisperCLIConfig
}

func NewWhisperCLI(cfg WhisperCLIConfig) *WhisperCLI {
	if cfg.BinPath == "" {
		cfg.BinPath = "whisper-cli"
	}
	return &WhisperCLI{cfg: cfg}
}

func (w *WhisperCLI) Name() string { return "whisper-cli" }

// Check verifies the model file exists and the binary is runnable.
func (w *WhisperCLI) Check(context.Context) error {
	if w.cfg.ModelPath == "" {
		return fmt.Errorf("%w: STT_MODEL_PATH not set", ErrModelNotFound)
	}
	if _, err := os.Stat(w.cfg.ModelPath); err != nil {
		return fmt.Errorf("%w: %s", ErrModelNotFound, w.cfg.ModelPath)
	}
	if _, err := exec.LookPath(w.cfg.BinPath); err != nil {
		return fmt.Errorf("%w: %s", ErrBinaryNotFound, w.cfg.BinPath)
	}
	return nil
}

func (w *WhisperCLI) Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error) {
	prefix := filepath.Join(os.TempDir(), "stt-"+uuid.NewString())
	inPath := prefix + ".wav"
	outPath := prefix + ".txt"

	if err := os.WriteFile(inPath, req.Audio, 0o600); err != nil {
		return nil, fmt.Errorf("write audio: %w", err)
	}
	defer os.Remove(inPath)
	defer os.Remove(outPath)

	args := []string{"-m", w.cfg.ModelPath, "-f", inPath, "-otxt", "-of", prefix, "-nt"}
	if req.Language != "" {
		args = append(args, "-l", req.Language)
	}
	if req.Prompt != "" {
		args = append(args, "--prompt", req.Prompt)
	}

	cmd := exec.CommandContext(ctx, w.cfg.BinPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("whisper failed: %w (stderr: %s)", err, stderr.String())
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	return &TranscriptionResponse{
		Text:     strings.TrimSpace(string(data)),
		Language: req.Language,
	}, nil
}
