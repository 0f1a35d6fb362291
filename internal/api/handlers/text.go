package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nikhilbhutani/kiswahili/internal/nlp"
)

type TextHandler struct {
	nlp *nlp.Service
}

func NewTextHandler(svc *nlp.Service) *TextHandler {
	return &TextHandler{nlp: svc}
}

type textRequest struct {
	Text string `json:"text"`
}

type autocompleteRequest struct {
	Text           string `json:"text"`
	MaxSuggestions *int   `json:"max_suggestions,omitempty"`
}

func (h *TextHandler) Correct(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeText(w, r, &req, &req.Text) {
		return
	}

	corrected, changes := h.nlp.Correct(req.Text)
	writeJSON(w, http.StatusOK, map[string]any{
		"corrected_text": corrected,
		"suggestions":    changes,
	})
}

func (h *TextHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	var req autocompleteRequest
	if !decodeText(w, r, &req, &req.Text) {
		return
	}

	var suggestions []string
	switch {
	case req.MaxSuggestions == nil:
		suggestions = h.nlp.WordSuggestions(req.Text)
	case *req.MaxSuggestions < 0:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "max_suggestions must not be negative"})
		return
	default:
		suggestions = h.nlp.Autocomplete(req.Text, *req.MaxSuggestions)
	}

	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

// Phrases returns the common phrases containing the given text.
func (h *TextHandler) Phrases(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decodeText(w, r, &req, &req.Text) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"phrases": h.nlp.PhraseMatches(req.Text),
	})
}

// decodeText decodes the body into dst and rejects it when *text is empty.
func decodeText(w http.ResponseWriter, r *http.Request, dst any, text *string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	if *text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No text provided"})
		return false
	}
	return true
}
