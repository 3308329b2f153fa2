// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pdiddy/idea-generator/pkg/types"
)

// Sampling parameters per call. Idea generation uses the backend's
// configured max tokens and temperature, whose defaults are these.
const (
	ideasMaxTokens   = 2500
	ideasTemperature = 0.8
	ideasTopP        = 0.9

	enhanceMaxTokens   = 1500
	enhanceTemperature = 0.7

	suggestMaxTokens   = 800
	suggestTemperature = 0.8
	suggestionCount    = 3
)

const ideasSystemPrompt = "You are an expert electronics engineer and educator. Generate practical, educational, and innovative project ideas that match the user's skill level and available components. Always respond with valid JSON only."

const enhanceSystemPrompt = "You are an electronics engineering instructor. Provide detailed, educational enhancements to project ideas."

const suggestSystemPrompt = "You are a project advisor. Suggest relevant, trending electronics projects."

// ideasPromptTmpl asks for exactly .Count ideas as a bare JSON array.
var ideasPromptTmpl = template.Must(template.New("ideas").Parse(`Generate {{.Count}} innovative electronic project ideas using these components: {{.Components}}

Theme: {{.Theme}}
Skill Level: {{.SkillLevel}}

For each project idea, provide a detailed JSON object with these exact fields:
- title: Creative and engaging project name
- description: 2-3 sentence project overview
- problemStatement: What real-world problem does this solve?
- workingPrinciple: How does the project work technically?
- difficulty: {{.SkillLevel}}
- estimatedCost: Cost in ₹ (Indian Rupees)
- components: Array of components used from the provided list
- innovationElements: Array of unique/innovative features
- scalabilityOptions: Array of ways to expand/improve the project
- tags: Array of relevant keywords/categories

Return ONLY a valid JSON array with {{.Count}} project objects. No additional text or explanation.

Example format:
[
  {
    "title": "Smart Plant Watering System",
    "description": "Automated plant care system that waters plants based on soil moisture levels.",
    "problemStatement": "Plants often die due to inconsistent watering schedules.",
    "workingPrinciple": "Soil moisture sensor triggers water pump when moisture is low.",
    "difficulty": "{{.SkillLevel}}",
    "estimatedCost": "₹800",
    "components": ["Arduino Uno", "Soil Moisture Sensor", "Water Pump"],
    "innovationElements": ["Automated scheduling", "Mobile notifications"],
    "scalabilityOptions": ["Multiple plant monitoring", "Weather integration"],
    "tags": ["Agriculture", "IoT", "Automation"]
  }
]`))

var enhancePromptTmpl = template.Must(template.New("enhance").Parse(`Enhance this project idea with more technical details and implementation steps:

Project: {{.Title}}
Description: {{.Description}}
Components: {{.Components}}

Provide enhanced details in JSON format with these additional fields:
- implementationSteps: Array of step-by-step instructions
- circuitDiagram: Text description of circuit connections
- codeSnippet: Basic Arduino/microcontroller code structure
- troubleshooting: Common issues and solutions
- learningOutcomes: Educational benefits

Return only valid JSON.`))

var suggestPromptTmpl = template.Must(template.New("suggest").Parse(`Based on user preferences, suggest {{.Count}} trending project ideas:

Skill Level: {{.SkillLevel}}
Themes: {{.Themes}}
Interests: {{.Interests}}

Provide suggestions as a JSON array with title, description, and requiredComponents fields.`))

func renderIdeasPrompt(req Request) (string, error) {
	return render(ideasPromptTmpl, struct {
		Count      int
		Components string
		Theme      string
		SkillLevel string
	}{
		Count:      req.Count,
		Components: strings.Join(req.Components, ", "),
		Theme:      req.Theme,
		SkillLevel: req.SkillLevel,
	})
}

func renderEnhancePrompt(idea types.Idea) (string, error) {
	return render(enhancePromptTmpl, struct {
		Title       string
		Description string
		Components  string
	}{
		Title:       idea.Title,
		Description: idea.Description,
		Components:  strings.Join(idea.Components, ", "),
	})
}

func renderSuggestPrompt(p types.Preferences) (string, error) {
	skill := p.SkillLevel
	if skill == "" {
		skill = DefaultSkillLevel
	}
	themes := strings.Join(p.SelectedThemes, ", ")
	if themes == "" {
		themes = "General Electronics"
	}
	interests := strings.Join(p.Interests, ", ")
	if interests == "" {
		interests = "Learning"
	}
	return render(suggestPromptTmpl, struct {
		Count      int
		SkillLevel string
		Themes     string
		Interests  string
	}{suggestionCount, skill, themes, interests})
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
