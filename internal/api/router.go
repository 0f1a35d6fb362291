package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/nikhilbhutani/kiswahili/internal/api/handlers"
	"github.com/nikhilbhutani/kiswahili/internal/api/middleware"
	"github.com/nikhilbhutani/kiswahili/internal/config"
	"github.com/nikhilbhutani/kiswahili/internal/nlp"
	"github.com/nikhilbhutani/kiswahili/internal/speech"
)

// Dependencies are the services the routes call into. Database and Cache
// may be nil; they are only used for readiness.
type Dependencies struct {
	NLP         *nlp.Service
	Recognizer  speech.SpeechRecognizer
	Synthesizer speech.SpeechSynthesizer
	Database    handlers.Pinger
	Cache       handlers.Pinger
}

type Router struct {
	mux  *chi.Mux
	cfg  *config.Config
	deps Dependencies
}

func NewRouter(cfg *config.Config, deps Dependencies) *Router {
	return &Router{
		mux:  chi.NewRouter(),
		cfg:  cfg,
		deps: deps,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(rt.cfg.CORS.AllowedOrigins))

	pingers := map[string]handlers.Pinger{}
	if rt.deps.Database != nil {
		pingers["database"] = rt.deps.Database
	}
	if rt.deps.Cache != nil {
		pingers["redis"] = rt.deps.Cache
	}

	health := handlers.NewHealthHandler(
		rt.deps.Recognizer,
		rt.deps.Synthesizer,
		speech.Fallback(rt.cfg.Speech.Fallback),
		pingers,
	)
	r.Get("/health", health.Health)
	r.Get("/readyz", health.Readyz)

	speechH := handlers.NewSpeechHandler(rt.deps.Recognizer, rt.deps.Synthesizer)
	r.Post("/synthesize", speechH.Synthesize)
	r.Post("/recognize", speechH.Recognize)

	textH := handlers.NewTextHandler(rt.deps.NLP)
	r.Post("/correct", textH.Correct)
	r.Post("/autocomplete", textH.Autocomplete)
	r.Post("/phrases", textH.Phrases)

	return r
}
