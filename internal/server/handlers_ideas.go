// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pdiddy/idea-generator/pkg/types"
)

func (s *Server) handleListIdeas(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.repo.ListIdeas(r.Context()))
}

func (s *Server) handleSaveIdea(w http.ResponseWriter, r *http.Request) {
	var idea types.Idea
	if err := decodeBody(r, &idea); err != nil {
		s.respondError(w, r, err)
		return
	}
	saved, err := s.repo.SaveIdea(r.Context(), idea)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, saved)
}

func (s *Server) handleSearchIdeas(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		s.respondError(w, r, fmt.Errorf("%w: query parameter is required", types.ErrInvalidInput))
		return
	}
	s.respond(w, http.StatusOK, s.repo.SearchIdeas(r.Context(), query))
}

func (s *Server) handleGetIdea(w http.ResponseWriter, r *http.Request) {
	idea, err := s.repo.GetIdea(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, idea)
}

func (s *Server) handleUpdateIdea(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var fields map[string]any
	if err := decodeBody(r, &fields); err != nil {
		s.respondError(w, r, err)
		return
	}
	// Clients send back whole ideas; drop the keys the repository owns.
	delete(fields, "id")
	delete(fields, "createdAt")
	if err := s.repo.UpdateIdea(r.Context(), id, fields); err != nil {
		s.respondError(w, r, err)
		return
	}
	idea, err := s.repo.GetIdea(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, idea)
}

func (s *Server) handleDeleteIdea(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.repo.DeleteIdea(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleSetFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	favorite, err := strconv.ParseBool(r.URL.Query().Get("is_favorite"))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: is_favorite must be true or false", types.ErrInvalidInput))
		return
	}
	if err := s.repo.SetFavorite(r.Context(), id, favorite); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]any{"id": id, "isFavorite": favorite})
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	favorite, err := s.repo.ToggleFavorite(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]any{"id": id, "isFavorite": favorite})
}

// handleEnhanceIdea asks the generator for implementation detail and stores
// it. When enhancement fails the idea comes back unchanged and nothing is
// written.
func (s *Server) handleEnhanceIdea(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	idea, err := s.repo.GetIdea(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	enhanced := s.gen.Enhance(r.Context(), idea)
	if enhanced.Enhancement == nil || enhanced.Enhancement == idea.Enhancement {
		s.respond(w, http.StatusOK, map[string]any{"idea": idea, "enhanced": false})
		return
	}

	if err := s.repo.SaveEnhancement(r.Context(), id, *enhanced.Enhancement); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.logger.Debug("idea enhanced", zap.String("id", id))
	s.respond(w, http.StatusOK, map[string]any{"idea": enhanced, "enhanced": true})
}
