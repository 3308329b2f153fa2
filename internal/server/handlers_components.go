// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/idea-generator/pkg/types"
)

func (s *Server) handleListComponents(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.repo.ListComponents(r.Context()))
}

func (s *Server) handleAddComponent(w http.ResponseWriter, r *http.Request) {
	var c types.Component
	if err := decodeBody(r, &c); err != nil {
		s.respondError(w, r, err)
		return
	}
	saved, err := s.repo.AddComponent(r.Context(), c)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, saved)
}

func (s *Server) handleSeedComponents(w http.ResponseWriter, r *http.Request) {
	seeded, err := s.repo.InitializeSampleComponents(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]bool{"seeded": seeded})
}

func (s *Server) handleComponentsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	s.respond(w, http.StatusOK, s.repo.ComponentsByCategory(r.Context(), category))
}

func (s *Server) handleGetComponent(w http.ResponseWriter, r *http.Request) {
	c, err := s.repo.GetComponent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, c)
}

func (s *Server) handleUpdateComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var fields map[string]any
	if err := decodeBody(r, &fields); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.repo.UpdateComponent(r.Context(), id, fields); err != nil {
		s.respondError(w, r, err)
		return
	}
	c, err := s.repo.GetComponent(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, c)
}

func (s *Server) handleDeleteComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.repo.DeleteComponent(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"id": id})
}
