// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Provenance markers recorded in Idea.GeneratedBy.
const (
	GeneratedBySamples  = "Sample Ideas"
	GeneratedByFallback = "Fallback Generator"
	GeneratedByManual   = "Manual Entry"
)

// Idea is a generated or manually entered project suggestion.
type Idea struct {
	ID string `json:"id" yaml:"id"`

	Title string `json:"title" yaml:"title" validate:"required"`

	Description string `json:"description" yaml:"description"`

	// ProblemStatement is the real-world problem the project addresses.
	ProblemStatement string `json:"problemStatement" yaml:"problem_statement"`

	// WorkingPrinciple explains how the project works technically.
	WorkingPrinciple string `json:"workingPrinciple" yaml:"working_principle"`

	Difficulty string `json:"difficulty" yaml:"difficulty"`

	// EstimatedCost is free text such as "₹800" or "₹500-1000".
	EstimatedCost string `json:"estimatedCost" yaml:"estimated_cost"`

	// Components lists component names, not store IDs.
	Components []string `json:"components" yaml:"components"`

	InnovationElements []string `json:"innovationElements" yaml:"innovation_elements"`

	ScalabilityOptions []string `json:"scalabilityOptions" yaml:"scalability_options"`

	Tags []string `json:"tags" yaml:"tags"`

	Theme      string `json:"theme,omitempty" yaml:"theme,omitempty"`
	SkillLevel string `json:"skillLevel,omitempty" yaml:"skill_level,omitempty"`
	Notes      string `json:"notes,omitempty" yaml:"notes,omitempty"`

	IsFavorite bool `json:"isFavorite" yaml:"is_favorite"`

	// GeneratedBy records which generator produced the idea.
	GeneratedBy string `json:"generatedBy" yaml:"generated_by"`

	Enhancement *Enhancement `json:"enhancement,omitempty" yaml:"enhancement,omitempty"`

	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`
}

// Enhancement holds the implementation detail added to an idea on request.
type Enhancement struct {
	ImplementationSteps []string  `json:"implementationSteps" yaml:"implementation_steps"`
	CircuitDiagram      string    `json:"circuitDiagram" yaml:"circuit_diagram"`
	CodeSnippet         string    `json:"codeSnippet" yaml:"code_snippet"`
	Troubleshooting     []string  `json:"troubleshooting" yaml:"troubleshooting"`
	LearningOutcomes    []string  `json:"learningOutcomes" yaml:"learning_outcomes"`
	EnhancedAt          time.Time `json:"enhancedAt" yaml:"enhanced_at"`
}

// Suggestion is a lightweight project pointer derived from user preferences.
// Suggestions are never persisted.
type Suggestion struct {
	Title              string   `json:"title" yaml:"title"`
	Description        string   `json:"description" yaml:"description"`
	RequiredComponents []string `json:"requiredComponents" yaml:"required_components"`
}
