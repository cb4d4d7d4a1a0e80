package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/manybotts/PingerB/internal/domain"
	"github.com/manybotts/PingerB/internal/httpapi/middleware"
	"github.com/manybotts/PingerB/internal/registry"
)

type Server struct {
	Logger   *zap.Logger
	Registry *registry.Registry
}

func NewServer(l *zap.Logger, reg *registry.Registry) *Server {
	return &Server{Logger: l, Registry: reg}
}

// Router builds the management surface. An empty origin list permits all
// origins; a non-empty one is an allow-list.
func (s *Server) Router(allowedOrigins []string, rpm, burst int) http.Handler {
	r := chi.NewRouter()

	if len(allowedOrigins) == 0 {
		r.Use(cors.AllowAll().Handler)
	} else {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
		}))
	}
	r.Use(middleware.RateLimit(rpm, burst))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "app pinger is running"})
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/apps", s.handleListApps)
	r.Post("/apps", s.handleAddApp)
	r.Delete("/apps", s.handleRemoveApp)

	return r
}

type appPayload struct {
	URL string `json:"url"`
}

func (s *Server) handleListApps(w http.ResponseWriter, r *http.Request) {
	urls := s.Registry.List(r.Context())
	if urls == nil {
		urls = []string{}
	}
	writeJSON(w, http.StatusOK, urls)
}

func (s *Server) handleAddApp(w http.ResponseWriter, r *http.Request) {
	var p appPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.URL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing url"})
		return
	}

	url, err := s.Registry.Add(r.Context(), p.URL)
	switch {
	case errors.Is(err, domain.ErrAlreadyExists):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "App already exists."})
		return
	case err != nil:
		s.Logger.Error("add_app_error", zap.String("url", url), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not add app"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "App added for pinging."})
}

func (s *Server) handleRemoveApp(w http.ResponseWriter, r *http.Request) {
	var p appPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.URL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing url"})
		return
	}

	err := s.Registry.Remove(r.Context(), p.URL)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "App not found."})
		return
	case err != nil:
		s.Logger.Error("remove_app_error", zap.String("url", p.URL), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not remove app"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "App removed from pinging."})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
