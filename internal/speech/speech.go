// Package speech wraps the STT and TTS backends behind adapters that open
// their model lazily, track whether it is usable, and fall back to fixed
// placeholder output when it is not.
package speech

import (
	"context"
	"errors"
)

// ErrUnavailable is returned under the error fallback policy when the
// backend model cannot be opened or fails to process a request.
var ErrUnavailable = errors.New("speech model unavailable")

// Placeholder output returned under the mock fallback policy.
const (
	MockTranscript       = "Habari yako"
	MockAudioContentType = "application/octet-stream"

	// NoSpeechText is the transcript for audio in which nothing was recognized.
	NoSpeechText = "Could not recognize speech"
)

var mockAudio = []byte("MOCK_AUDIO_DATA")

// MockAudio returns a fresh copy of the placeholder audio payload.
func MockAudio() []byte {
	return append([]byte(nil), mockAudio...)
}

type State int

const (
	Uninitialized State = iota
	Ready
	Unavailable
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Fallback selects what an adapter returns when its model is unusable.
type Fallback string

const (
	FallbackMock  Fallback = "mock"
	FallbackError Fallback = "error"
)

type Transcript struct {
	Text     string `json:"text"`
	Backend  string `json:"backend"`
	Degraded bool   `json:"degraded,omitempty"`
}

type Audio struct {
	Data        []byte `json:"data"`
	ContentType string `json:"content_type"`
	Backend     string `json:"backend"`
	Degraded    bool   `json:"degraded,omitempty"`
}

type SpeechRecognizer interface {
	Recognize(ctx context.Context, audio []byte) (Transcript, error)
	State() State
	Name() string
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (Audio, error)
	State() State
	Name() string
}
