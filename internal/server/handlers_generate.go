// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/pdiddy/idea-generator/internal/generate"
	"github.com/pdiddy/idea-generator/pkg/types"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"message":      "Idea Generator API is running",
		"aiConfigured": s.gen.Configured(),
	})
}

// handleGenerateIdeas runs one generation request. With ?save=true every
// returned idea is also stored; the response then carries the stored
// copies.
func (s *Server) handleGenerateIdeas(w http.ResponseWriter, r *http.Request) {
	var req generate.Request
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.gen.Generate(r.Context(), req)
	if err != nil {
		s.metrics.Generations.WithLabelValues("error").Inc()
		s.respondError(w, r, err)
		return
	}
	s.metrics.Generations.WithLabelValues(string(result.Source)).Inc()

	if save, _ := strconv.ParseBool(r.URL.Query().Get("save")); save {
		saved := make([]types.Idea, 0, len(result.Ideas))
		for _, idea := range result.Ideas {
			stored, err := s.repo.SaveIdea(r.Context(), idea)
			if err != nil {
				s.respondError(w, r, err)
				return
			}
			saved = append(saved, stored)
		}
		result.Ideas = saved
	}

	s.logger.Debug("ideas generated",
		zap.String("source", string(result.Source)),
		zap.Int("count", len(result.Ideas)))
	s.respond(w, http.StatusOK, result)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	prefs := s.repo.GetPreferences(r.Context(), s.userID)
	s.respond(w, http.StatusOK, s.gen.Suggest(r.Context(), prefs))
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.repo.GetPreferences(r.Context(), s.userID))
}

func (s *Server) handleSavePreferences(w http.ResponseWriter, r *http.Request) {
	p := types.DefaultPreferences(s.userID)
	if err := decodeBody(r, &p); err != nil {
		s.respondError(w, r, err)
		return
	}
	saved, err := s.repo.SavePreferences(r.Context(), s.userID, p)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, saved)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.repo.Stats(r.Context()))
}
