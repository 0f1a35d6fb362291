package tts

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

// LocalTTSConfig holds configuration for the local Piper TTS backend.
type LocalTTSConfig struct {
	PiperBinPath string // default: "piper"
	ModelPath    string // required: path to the .onnx voice model
}

// LocalTTS synthesizes speech using the Piper binary via subprocess.
// Voice selection and speed are controlled via the model file, not runtime flags.
type LocalTTS struct {
	cfg LocalTTSConfig
}

// NewLocalTTS creates a LocalTTS backed by a local Piper binary.
func NewLocalTTS(cfg LocalTTSConfig) *LocalTTS {
	if cfg.PiperBinPath == "" {
		cfg.PiperBinPath = "piper"
	}
	return &LocalTTS{cfg: cfg}
}

func (l *LocalTTS) Name() string { return "local-piper" }

// Check verifies the voice model exists and piper is runnable.
func (l *LocalTTS) Check(context.Context) error {
	if l.cfg.ModelPath == "" {
		return fmt.Errorf("%w: TTS_LOCAL_PIPER_MODEL not set", ErrModelNotFound)
	}
	if _, err := os.Stat(l.cfg.ModelPath); err != nil {
		return fmt.Errorf("%w: %s", ErrModelNotFound, l.cfg.ModelPath)
	}
	if _, err := exec.LookPath(l.cfg.PiperBinPath); err != nil {
		return fmt.Errorf("%w: %s", ErrBinaryNotFound, l.cfg.PiperBinPath)
	}
	return nil
}

// Synthesize pipes text into Piper via stdin and returns the WAV file it writes.
func (l *LocalTTS) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	outPath := filepath.Join(os.TempDir(), "tts-"+uuid.NewString()+".wav")
	defer os.Remove(outPath)

	cmd := exec.CommandContext(ctx, l.cfg.PiperBinPath, "--model", l.cfg.ModelPath, "--output_file", outPath)
	cmd.Stdin = strings.NewReader(req.Input)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("piper failed: %w (stderr: %s)", err, stderr.String())
	}

	audio, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read piper output: %w", err)
	}

	return &SynthesisResult{
		Audio:       audio,
		ContentType: "audio/wav",
	}, nil
}
