// Package server exposes a single kiosk dashboard over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"factory_floor/background"
	"factory_floor/catalog"
	"factory_floor/dashboard"
	"factory_floor/tour"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type Server struct {
	catalog    *catalog.Catalog
	dashboard  *dashboard.Dashboard
	background *background.Cache
}

// New returns a server around one dashboard. bg may be nil, in which case
// the background endpoint always reports no content.
func New(c *catalog.Catalog, sims dashboard.Simulator, bg *background.Cache) *Server {
	return &Server{
		catalog:    c,
		dashboard:  dashboard.New(c, sims),
		background: bg,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/background", s.handleBackground)

		r.Route("/tour", func(r chi.Router) {
			r.Post("/start", s.handleTourStart)
			r.Post("/next", s.handleTourNext)
			r.Post("/exit", s.handleTourExit)
		})

		r.Post("/zones/{id}/select", s.handleSelectZone)
		r.Post("/panel/close", s.handleClosePanel)
		r.Post("/scenario", s.handleScenario)
	})

	return r
}

type zoneView struct {
	catalog.Zone
	Icon  catalog.Icon `json:"icon"`
	Glyph string       `json:"glyph"`
}

type catalogResponse struct {
	Zones []zoneView         `json:"zones"`
	Areas []catalog.Area     `json:"areas"`
	Steps []catalog.TourStep `json:"tourSteps"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	zones := s.catalog.Zones()
	resp := catalogResponse{
		Zones: make([]zoneView, 0, len(zones)),
		Areas: s.catalog.Areas(),
		Steps: s.catalog.Steps(),
	}
	for _, z := range zones {
		resp.Zones = append(resp.Zones, zoneView{Zone: z, Icon: z.Icon(), Glyph: z.Icon().Glyph()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dashboard.View())
}

func (s *Server) handleTourStart(w http.ResponseWriter, r *http.Request) {
	if err := s.dashboard.StartTour(); err != nil {
		if errors.Is(err, tour.ErrNoTourSteps) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, s.dashboard.View())
}

func (s *Server) handleTourNext(w http.ResponseWriter, r *http.Request) {
	s.dashboard.Advance()
	writeJSON(w, http.StatusOK, s.dashboard.View())
}

func (s *Server) handleTourExit(w http.ResponseWriter, r *http.Request) {
	s.dashboard.Exit()
	writeJSON(w, http.StatusOK, s.dashboard.View())
}

func (s *Server) handleSelectZone(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.dashboard.SelectZone(id); err != nil {
		if errors.Is(err, dashboard.ErrUnknownZone) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, s.dashboard.View())
}

func (s *Server) handleClosePanel(w http.ResponseWriter, r *http.Request) {
	s.dashboard.Close()
	writeJSON(w, http.StatusOK, s.dashboard.View())
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	out, err := s.dashboard.RunScenario(r.Context())
	if err != nil {
		if errors.Is(err, dashboard.ErrNoZoneSelected) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBackground(w http.ResponseWriter, r *http.Request) {
	if s.background == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	image, ok := s.background.Load(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image": image})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		logrus.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
		}).Info("HTTP request")
	})
}
