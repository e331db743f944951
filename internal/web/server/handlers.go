package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// resourceSummary is the list-endpoint projection of a descriptor
type resourceSummary struct {
	Name        string `json:"name"`
	ShortName   string `json:"shortName,omitempty"`
	Description string `json:"description,omitempty"`
	Routes      int    `json:"routes"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"resources": s.currentRegistry().Count(),
	})
}

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	registry := s.currentRegistry()

	summaries := make([]resourceSummary, 0, registry.Count())
	for _, name := range registry.List() {
		descriptor, ok := registry.Get(name)
		if !ok {
			continue
		}
		routes, _ := registry.Routes(name)
		summaries = append(summaries, resourceSummary{
			Name:        name,
			ShortName:   descriptor.ShortName,
			Description: descriptor.Description,
			Routes:      len(routes),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"resources": summaries,
		"count":     len(summaries),
	})
}

func (s *Server) handleGetResource(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	registry := s.currentRegistry()

	if s.store != nil {
		if cached, err := s.store.Fetch(r.Context(), name); err == nil {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"name":   name,
				"config": cached.ConfigMap(),
			})
			return
		}
	}

	descriptor, ok := registry.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, "resource not found: "+name)
		return
	}

	if s.store != nil {
		if err := s.store.Put(r.Context(), name, descriptor); err != nil {
			s.logger.Warn("failed to cache descriptor",
				zap.String("resource", name),
				zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":   name,
		"config": descriptor.ConfigMap(),
	})
}

func (s *Server) handleGetRoutes(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	registry := s.currentRegistry()

	routes, err := registry.Routes(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "resource not found: "+name)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"resource": name,
		"routes":   routes,
		"count":    len(routes),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
