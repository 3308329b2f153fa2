// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate produces electronics project ideas from a hosted
// chat-completion model.
//
// Generation degrades in three tiers. With no API credential the Generator
// never calls out and serves a fixed list of sample ideas. Provider failures
// (quota, credential, rate limit, anything else) are classified and returned
// to the caller without retry. A reply that cannot be decoded into ideas is
// replaced by one idea synthesized from the request.
package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/idea-generator/pkg/types"
)

// Request defaults.
const (
	DefaultTheme      = "General"
	DefaultSkillLevel = "Beginner"
	DefaultCount      = 5
)

// Source reports which tier produced a Result.
type Source string

const (
	SourceModel    Source = "model"
	SourceSamples  Source = "samples"
	SourceFallback Source = "fallback"
)

// Request describes the ideas to generate.
type Request struct {
	// Components are component names, not store ids.
	Components []string `json:"selectedComponents" yaml:"components"`
	Theme      string   `json:"theme" yaml:"theme"`
	SkillLevel string   `json:"skillLevel" yaml:"skill_level"`
	Count      int      `json:"count" yaml:"count"`
}

func (r Request) withDefaults() Request {
	if r.Theme == "" {
		r.Theme = DefaultTheme
	}
	if r.SkillLevel == "" {
		r.SkillLevel = DefaultSkillLevel
	}
	if r.Count <= 0 {
		r.Count = DefaultCount
	}
	if r.Components == nil {
		r.Components = []string{}
	}
	return r
}

// Result is the outcome of one Generate call.
type Result struct {
	Ideas  []types.Idea `json:"ideas"`
	Source Source       `json:"source"`
}

// Generator turns requests into ideas using a Backend.
type Generator struct {
	backend Backend
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

// New returns a Generator. A nil backend behaves as Unconfigured.
func New(backend Backend, logger *zap.Logger) *Generator {
	if backend == nil {
		backend = Unconfigured{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		backend: backend,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Configured reports whether the Generator can reach a model.
func (g *Generator) Configured() bool {
	_, unconfigured := g.backend.(Unconfigured)
	return !unconfigured
}

// Generate returns ideas for req. The only errors returned are classified
// provider failures wrapping ErrQuotaExceeded, ErrInvalidCredential,
// ErrRateLimited or ErrProviderFailure.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	req = req.withDefaults()

	if !g.Configured() {
		g.logger.Info("generation API not configured; serving sample ideas", zap.Int("count", req.Count))
		return Result{Ideas: g.stamp(sampleIdeas(req), req, types.GeneratedBySamples), Source: SourceSamples}, nil
	}

	prompt, err := renderIdeasPrompt(req)
	if err != nil {
		return Result{}, fmt.Errorf("rendering prompt: %w", err)
	}

	text, err := g.backend.Complete(ctx, Completion{
		System: ideasSystemPrompt,
		Prompt: prompt,
		TopP:   ideasTopP,
	})
	if err != nil {
		classified := classify(err)
		g.logger.Error("generating ideas failed", zap.Error(err))
		return Result{}, classified
	}

	ideas, err := parseIdeas(text)
	if err != nil {
		g.logger.Warn("unparseable generation reply; synthesizing idea",
			zap.Error(err), zap.Int("reply_bytes", len(text)))
		return Result{Ideas: g.stamp([]types.Idea{synthesize(req)}, req, types.GeneratedByFallback), Source: SourceFallback}, nil
	}
	if len(ideas) > req.Count {
		ideas = ideas[:req.Count]
	}

	g.logger.Debug("ideas generated", zap.Int("count", len(ideas)), zap.String("backend", g.backend.Name()))
	return Result{Ideas: g.stamp(ideas, req, g.backend.Name()), Source: SourceModel}, nil
}

// stamp fills the fields every generated idea carries.
func (g *Generator) stamp(ideas []types.Idea, req Request, generatedBy string) []types.Idea {
	now := g.now()
	for i := range ideas {
		ideas[i].ID = g.newID()
		ideas[i].IsFavorite = false
		ideas[i].CreatedAt = now
		ideas[i].UpdatedAt = now
		ideas[i].Theme = req.Theme
		ideas[i].SkillLevel = req.SkillLevel
		ideas[i].GeneratedBy = generatedBy
		if ideas[i].Difficulty == "" {
			ideas[i].Difficulty = req.SkillLevel
		}
	}
	return ideas
}

// Enhance asks the model for implementation detail and attaches it to idea.
// Any failure, including an unconfigured backend, returns idea unchanged.
func (g *Generator) Enhance(ctx context.Context, idea types.Idea) types.Idea {
	if !g.Configured() {
		g.logger.Debug("generation API not configured; skipping enhancement", zap.String("idea", idea.ID))
		return idea
	}

	prompt, err := renderEnhancePrompt(idea)
	if err != nil {
		g.logger.Warn("rendering enhancement prompt failed", zap.Error(err))
		return idea
	}

	text, err := g.backend.Complete(ctx, Completion{
		System:      enhanceSystemPrompt,
		Prompt:      prompt,
		MaxTokens:   enhanceMaxTokens,
		Temperature: enhanceTemperature,
	})
	if err != nil {
		g.logger.Warn("enhancing idea failed", zap.String("idea", idea.ID), zap.Error(classify(err)))
		return idea
	}

	enhancement, err := parseEnhancement(text)
	if err != nil {
		g.logger.Warn("unparseable enhancement reply", zap.String("idea", idea.ID), zap.Error(err))
		return idea
	}

	enhancement.EnhancedAt = g.now()
	idea.Enhancement = &enhancement
	return idea
}

// Suggest asks for up to three trending projects matching prefs. Any
// failure yields an empty list.
func (g *Generator) Suggest(ctx context.Context, prefs types.Preferences) []types.Suggestion {
	if !g.Configured() {
		return []types.Suggestion{}
	}

	prompt, err := renderSuggestPrompt(prefs)
	if err != nil {
		g.logger.Warn("rendering suggestion prompt failed", zap.Error(err))
		return []types.Suggestion{}
	}

	text, err := g.backend.Complete(ctx, Completion{
		System:      suggestSystemPrompt,
		Prompt:      prompt,
		MaxTokens:   suggestMaxTokens,
		Temperature: suggestTemperature,
	})
	if err != nil {
		g.logger.Warn("fetching suggestions failed", zap.Error(classify(err)))
		return []types.Suggestion{}
	}

	suggestions, err := parseSuggestions(text)
	if err != nil {
		g.logger.Warn("unparseable suggestion reply", zap.Error(err))
		return []types.Suggestion{}
	}
	if len(suggestions) > suggestionCount {
		suggestions = suggestions[:suggestionCount]
	}
	return suggestions
}

// IsProviderError reports whether err is one of the classified generation
// failures.
func IsProviderError(err error) bool {
	return errors.Is(err, types.ErrQuotaExceeded) ||
		errors.Is(err, types.ErrInvalidCredential) ||
		errors.Is(err, types.ErrRateLimited) ||
		errors.Is(err, types.ErrProviderFailure)
}
