// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/idea-generator/internal/validation"
	"github.com/pdiddy/idea-generator/pkg/types"
)

// ideaReply is one element of the JSON array the model is asked for.
type ideaReply struct {
	Title              string   `json:"title" validate:"required"`
	Description        string   `json:"description" validate:"required"`
	ProblemStatement   flexText `json:"problemStatement"`
	WorkingPrinciple   flexText `json:"workingPrinciple"`
	Difficulty         string   `json:"difficulty"`
	EstimatedCost      flexText `json:"estimatedCost"`
	Components         flexList `json:"components"`
	InnovationElements flexList `json:"innovationElements"`
	ScalabilityOptions flexList `json:"scalabilityOptions"`
	Tags               flexList `json:"tags"`
}

type ideasReply struct {
	Ideas []ideaReply `json:"ideas" validate:"required,min=1,dive"`
}

type enhancementReply struct {
	ImplementationSteps flexList `json:"implementationSteps" validate:"required,min=1"`
	CircuitDiagram      flexText `json:"circuitDiagram"`
	CodeSnippet         flexText `json:"codeSnippet"`
	Troubleshooting     flexList `json:"troubleshooting"`
	LearningOutcomes    flexList `json:"learningOutcomes"`
}

type suggestionReply struct {
	Title              string   `json:"title" validate:"required"`
	Description        flexText `json:"description"`
	RequiredComponents flexList `json:"requiredComponents"`
}

type suggestionsReply struct {
	Suggestions []suggestionReply `json:"suggestions" validate:"required,min=1,dive"`
}

// parseIdeas decodes and validates a reply. Every failure wraps
// types.ErrMalformedReply.
func parseIdeas(text string) ([]types.Idea, error) {
	var reply ideasReply
	if err := json.Unmarshal([]byte(stripFences(text)), &reply.Ideas); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedReply, err)
	}
	if err := validation.Struct(reply); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedReply, err)
	}

	ideas := make([]types.Idea, 0, len(reply.Ideas))
	for _, r := range reply.Ideas {
		ideas = append(ideas, types.Idea{
			Title:              r.Title,
			Description:        r.Description,
			ProblemStatement:   string(r.ProblemStatement),
			WorkingPrinciple:   string(r.WorkingPrinciple),
			Difficulty:         r.Difficulty,
			EstimatedCost:      string(r.EstimatedCost),
			Components:         r.Components.values(),
			InnovationElements: r.InnovationElements.values(),
			ScalabilityOptions: r.ScalabilityOptions.values(),
			Tags:               r.Tags.values(),
		})
	}
	return ideas, nil
}

func parseEnhancement(text string) (types.Enhancement, error) {
	var reply enhancementReply
	if err := json.Unmarshal([]byte(stripFences(text)), &reply); err != nil {
		return types.Enhancement{}, fmt.Errorf("%w: %v", types.ErrMalformedReply, err)
	}
	if err := validation.Struct(reply); err != nil {
		return types.Enhancement{}, fmt.Errorf("%w: %v", types.ErrMalformedReply, err)
	}
	return types.Enhancement{
		ImplementationSteps: reply.ImplementationSteps.values(),
		CircuitDiagram:      string(reply.CircuitDiagram),
		CodeSnippet:         string(reply.CodeSnippet),
		Troubleshooting:     reply.Troubleshooting.values(),
		LearningOutcomes:    reply.LearningOutcomes.values(),
	}, nil
}

func parseSuggestions(text string) ([]types.Suggestion, error) {
	var reply suggestionsReply
	if err := json.Unmarshal([]byte(stripFences(text)), &reply.Suggestions); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedReply, err)
	}
	if err := validation.Struct(reply); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedReply, err)
	}

	out := make([]types.Suggestion, 0, len(reply.Suggestions))
	for _, r := range reply.Suggestions {
		out = append(out, types.Suggestion{
			Title:              r.Title,
			Description:        string(r.Description),
			RequiredComponents: r.RequiredComponents.values(),
		})
	}
	return out, nil
}

// stripFences removes a surrounding Markdown code fence, which chat models
// often add despite instructions.
func stripFences(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		t = t[nl+1:]
	} else {
		t = strings.TrimPrefix(t, "```")
	}
	t = strings.TrimSpace(t)
	return strings.TrimSpace(strings.TrimSuffix(t, "```"))
}

// flexList accepts a JSON array, a single string, or an object and
// flattens it to strings. Objects become "key: value" entries.
type flexList []string

func (l *flexList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = flatten(raw)
	return nil
}

func (l flexList) values() []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}

func flatten(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case string:
		if t == "" {
			return []string{}
		}
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s := textOf(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	case map[string]any:
		keys := sortedKeys(t)
		out := make([]string, 0, len(keys))
		for _, k := range keys {
			out = append(out, k+": "+textOf(t[k]))
		}
		return out
	default:
		return []string{textOf(t)}
	}
}

// flexText accepts a JSON string or any other value, which is rendered as
// text.
type flexText string

func (s *flexText) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = flexText(textOf(raw))
	return nil
}

func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		return strings.Join(flatten(t), "\n")
	case map[string]any:
		return strings.Join(flatten(t), "; ")
	default:
		data, _ := json.Marshal(t)
		return string(data)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
