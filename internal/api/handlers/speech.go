package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nikhilbhutani/kiswahili/internal/speech"
)

var errNotConfigured = fmt.Errorf("%w: no backend configured", speech.ErrUnavailable)

// DegradedHeader is set on responses carrying placeholder speech output.
const DegradedHeader = "X-Speech-Degraded"

type SpeechHandler struct {
	recognizer  speech.SpeechRecognizer
	synthesizer speech.SpeechSynthesizer
}

func NewSpeechHandler(rec speech.SpeechRecognizer, syn speech.SpeechSynthesizer) *SpeechHandler {
	return &SpeechHandler{recognizer: rec, synthesizer: syn}
}

type synthesizeRequest struct {
	Text string `json:"text"`
}

type recognizeRequest struct {
	Audio string `json:"audio"` // base64
}

// Synthesize converts text to audio and returns it base64 encoded.
func (h *SpeechHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No text provided"})
		return
	}

	if h.synthesizer == nil {
		writeSpeechError(w, "synthesize", errNotConfigured)
		return
	}

	audio, err := h.synthesizer.Synthesize(r.Context(), req.Text)
	if err != nil {
		writeSpeechError(w, "synthesize", err)
		return
	}

	resp := map[string]any{
		"audio":        base64.StdEncoding.EncodeToString(audio.Data),
		"content_type": audio.ContentType,
	}
	if audio.Degraded {
		markDegraded(w, resp)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Recognize transcribes base64 encoded audio.
func (h *SpeechHandler) Recognize(w http.ResponseWriter, r *http.Request) {
	var req recognizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Audio == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No audio data provided"})
		return
	}

	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid base64 audio"})
		return
	}

	if h.recognizer == nil {
		writeSpeechError(w, "recognize", errNotConfigured)
		return
	}

	transcript, err := h.recognizer.Recognize(r.Context(), audio)
	if err != nil {
		writeSpeechError(w, "recognize", err)
		return
	}

	resp := map[string]any{"text": transcript.Text}
	if transcript.Degraded {
		markDegraded(w, resp)
	}
	writeJSON(w, http.StatusOK, resp)
}

func markDegraded(w http.ResponseWriter, resp map[string]any) {
	resp["degraded"] = true
	w.Header().Set(DegradedHeader, "true")
}

func writeSpeechError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, speech.ErrUnavailable) {
		slog.Warn("speech unavailable", "op", op, "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	slog.Error("speech request failed", "op", op, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
