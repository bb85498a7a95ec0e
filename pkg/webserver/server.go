package webserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/sze-home/controller/pkg/manager"
	"github.com/sze-home/controller/pkg/status"
	"github.com/sze-home/controller/pkg/version"
)

// Server exposes the manager to the dashboard and control loop.
type Server struct {
	manager *manager.Manager
}

func New(m *manager.Manager) *Server {
	return &Server{manager: m}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/config", s.handleConfig)
		r.Get("/config/status", s.handleConfigStatus)
		r.Post("/refresh", s.handleRefresh)
		r.Post("/boiler-from-furnace", s.handleToggleBoiler)
	})

	return r
}

type statusResponse struct {
	status.SystemStatus
	Version string `json:"version"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, statusResponse{
		SystemStatus: s.manager.Status(),
		Version:      version.Version,
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.manager.ConfigSnapshot())
}

func (s *Server) handleConfigStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.manager.ConfigStatus())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.manager.Refresh()
	respondJSON(w, http.StatusOK, statusResponse{
		SystemStatus: s.manager.Status(),
		Version:      version.Version,
	})
}

func (s *Server) handleToggleBoiler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Enabled == nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "body must be {\"enabled\": bool}"})
		return
	}
	respondJSON(w, http.StatusOK, s.manager.ToggleBoilerFromFurnace(*body.Enabled))
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("webserver: encoding response: %v", err)
	}
}
