// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/idea-generator/internal/catalog"
	"github.com/pdiddy/idea-generator/internal/docstore"
	"github.com/pdiddy/idea-generator/internal/generate"
	"github.com/pdiddy/idea-generator/internal/session"
)

const defaultHTTPTimeout = 60 * time.Second

// app bundles the services a command needs. Close releases the store.
type app struct {
	store docstore.Store
	repo  *catalog.Repository
	gen   *generate.Generator
}

// openApp opens the configured document store and builds the generator
// from cfg. The generator is Unconfigured when no API key was resolved.
func openApp(ctx context.Context) (*app, error) {
	store, err := docstore.Open(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}

	timeout := cfg.HTTP.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	backend := generate.NewBackend(cfg.AI, &http.Client{Timeout: timeout})
	if _, ok := backend.(generate.Unconfigured); ok {
		logger.Info("no generation API key configured; sample ideas will be served")
	} else {
		logger.Debug("generation backend ready", zap.String("backend", backend.Name()))
	}

	return &app{
		store: store,
		repo:  catalog.New(store, logger),
		gen:   generate.New(backend, logger),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logger.Warn("closing document store", zap.Error(err))
	}
}

func openSession() (*session.Store, error) {
	return session.Open(cfg.Session.Path)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
