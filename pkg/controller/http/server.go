package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riskident-lab/rrit/pkg/usecase"
	"github.com/riskident-lab/rrit/pkg/utils/logging"
	"github.com/riskident-lab/rrit/pkg/utils/safe"
)

// Server is the REST surface consumed by questionnaire renderers. It
// exposes the question catalog, the answer store, scoring, and the
// scenario persistence actions.
type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/questions", s.handleQuestions)
		r.Get("/categories", s.handleCategories)

		r.Get("/answers", s.handleGetAnswers)
		r.Put("/answers/{questionID}", s.handlePutAnswer)

		r.Get("/selection", s.handleGetSelection)
		r.Put("/selection", s.handlePutSelection)

		r.Get("/metadata", s.handleGetMetadata)
		r.Put("/metadata", s.handlePutMetadata)

		r.Put("/language", s.handlePutLanguage)

		r.Get("/summary", s.handleSummary)

		r.Route("/scenario", func(r chi.Router) {
			r.Post("/save", s.handleSave)
			r.Post("/load", s.handleLoad)
			r.Post("/clear", s.handleClear)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("OK"))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
