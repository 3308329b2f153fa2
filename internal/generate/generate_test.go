// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/idea-generator/pkg/types"
)

// --- test helpers ---

type fakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	calls    int
	requests []chatRequest
	headers  []http.Header
}

// newFakeAPI serves every chat-completion call with status and body.
func newFakeAPI(t *testing.T, status int, body string) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		f.calls++
		f.requests = append(f.requests, req)
		f.headers = append(f.headers, r.Header.Clone())
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(f.Close)
	return f
}

// replyBody wraps content as a chat-completion response.
func replyBody(t *testing.T, content string) string {
	t.Helper()
	data, err := json.Marshal(chatResponse{Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: content}}}})
	require.NoError(t, err)
	return string(data)
}

func errorBody(message, typ, code string) string {
	data, _ := json.Marshal(errorEnvelope{Error: &apiError{Message: message, Type: typ, Code: code}})
	return string(data)
}

func newTestGenerator(t *testing.T, api *fakeAPI) *Generator {
	t.Helper()
	backend := NewBackend(types.AIConfig{APIKey: "sk-test", BaseURL: api.URL}, api.Client())
	g := New(backend, zap.NewNop())
	g.now = func() time.Time { return time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC) }
	return g
}

const twoIdeas = `[
  {
    "title": "Smart Plant Watering System",
    "description": "Waters plants when the soil is dry.",
    "problemStatement": "Plants die from irregular watering.",
    "workingPrinciple": "Moisture sensor drives a pump through a relay.",
    "difficulty": "Intermediate",
    "estimatedCost": "₹800",
    "components": ["Arduino Uno", "Relay Module"],
    "innovationElements": ["Automated scheduling"],
    "scalabilityOptions": ["Weather integration"],
    "tags": ["Agriculture", "IoT"]
  },
  {
    "title": "Radar Sweep Display",
    "description": "Servo sweeps an ultrasonic sensor and plots distance.",
    "estimatedCost": 650,
    "components": "Servo Motor SG90",
    "tags": ["Robotics"]
  }
]`

// --- backend selection ---

func TestNewBackend(t *testing.T) {
	assert.Equal(t, Unconfigured{}, NewBackend(types.AIConfig{}, nil))
	assert.Equal(t, Unconfigured{}, NewBackend(types.AIConfig{APIKey: "   "}, nil))

	b, ok := NewBackend(types.AIConfig{APIKey: " sk-live "}, nil).(*OpenAIBackend)
	require.True(t, ok)
	assert.Equal(t, "sk-live", b.APIKey)
	assert.Equal(t, DefaultModel, b.Model)
	assert.Equal(t, ideasMaxTokens, b.MaxTokens)
	assert.Equal(t, ideasTemperature, b.Temperature)
	assert.Equal(t, "OpenAI gpt-3.5-turbo", b.Name())

	b = NewBackend(types.AIConfig{APIKey: "k", Model: "gpt-4o-mini", MaxTokens: 1000, Temperature: 0.2}, nil).(*OpenAIBackend)
	assert.Equal(t, "gpt-4o-mini", b.Model)
	assert.Equal(t, 1000, b.MaxTokens)
	assert.Equal(t, 0.2, b.Temperature)
}

// --- unconfigured tier ---

func TestGenerate_UnconfiguredServesSamples(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{count: 1, want: 1},
		{count: 3, want: 3},
		{count: 5, want: 5},
		{count: 8, want: 5},
		{count: 0, want: 5},
	}

	g := New(Unconfigured{}, zap.NewNop())
	for _, tt := range tests {
		t.Run(fmt.Sprintf("count=%d", tt.count), func(t *testing.T) {
			res, err := g.Generate(context.Background(), Request{
				Components: []string{"Arduino Uno"},
				Theme:      "Healthcare",
				SkillLevel: "Advanced",
				Count:      tt.count,
			})
			require.NoError(t, err)
			assert.Equal(t, SourceSamples, res.Source)
			require.Len(t, res.Ideas, tt.want)

			seen := map[string]bool{}
			for _, idea := range res.Ideas {
				assert.Equal(t, "Healthcare", idea.Theme)
				assert.Equal(t, "Advanced", idea.SkillLevel)
				assert.Equal(t, "Advanced", idea.Difficulty)
				assert.Contains(t, idea.Tags, "Healthcare")
				assert.Equal(t, types.GeneratedBySamples, idea.GeneratedBy)
				assert.False(t, idea.IsFavorite)
				assert.NotEmpty(t, idea.ID)
				assert.False(t, seen[idea.ID], "ids are unique")
				seen[idea.ID] = true
			}
		})
	}
}

func TestGenerate_UnconfiguredAppliesDefaults(t *testing.T) {
	res, err := New(nil, nil).Generate(context.Background(), Request{})
	require.NoError(t, err)
	require.Len(t, res.Ideas, DefaultCount)
	assert.Equal(t, DefaultTheme, res.Ideas[0].Theme)
	assert.Equal(t, DefaultSkillLevel, res.Ideas[0].SkillLevel)
}

func TestUnconfigured_Complete(t *testing.T) {
	_, err := Unconfigured{}.Complete(context.Background(), Completion{})
	assert.ErrorIs(t, err, types.ErrCredentialMissing)
}

// --- model tier ---

func TestGenerate_ModelReply(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, replyBody(t, "```json\n"+twoIdeas+"\n```"))
	g := newTestGenerator(t, api)

	res, err := g.Generate(context.Background(), Request{
		Components: []string{"Arduino Uno", "Servo Motor SG90"},
		Theme:      "Robotics",
		SkillLevel: "Intermediate",
		Count:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, SourceModel, res.Source)
	require.Len(t, res.Ideas, 2)

	first := res.Ideas[0]
	assert.Equal(t, "Smart Plant Watering System", first.Title)
	assert.Equal(t, []string{"Arduino Uno", "Relay Module"}, first.Components)
	assert.Equal(t, "OpenAI gpt-3.5-turbo", first.GeneratedBy)
	assert.Equal(t, "Robotics", first.Theme)
	assert.Equal(t, "Intermediate", first.SkillLevel)
	assert.Equal(t, time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC), first.CreatedAt)

	second := res.Ideas[1]
	assert.Equal(t, "650", second.EstimatedCost)
	assert.Equal(t, []string{"Servo Motor SG90"}, second.Components)
	assert.Equal(t, "Intermediate", second.Difficulty, "missing difficulty falls back to skill level")
	assert.Equal(t, []string{}, second.InnovationElements)

	require.Equal(t, 1, api.calls)
	req := api.requests[0]
	assert.Equal(t, DefaultModel, req.Model)
	assert.Equal(t, ideasMaxTokens, req.MaxTokens)
	assert.Equal(t, ideasTemperature, req.Temperature)
	assert.Equal(t, ideasTopP, req.TopP)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, ideasSystemPrompt, req.Messages[0].Content)
	assert.Contains(t, req.Messages[1].Content, "Generate 2 innovative electronic project ideas using these components: Arduino Uno, Servo Motor SG90")
	assert.Contains(t, req.Messages[1].Content, "Theme: Robotics")
	assert.Equal(t, "Bearer sk-test", api.headers[0].Get("Authorization"))
}

func TestGenerate_TruncatesToCount(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, replyBody(t, twoIdeas))
	g := newTestGenerator(t, api)

	res, err := g.Generate(context.Background(), Request{Count: 1})
	require.NoError(t, err)
	assert.Len(t, res.Ideas, 1)
}

// --- provider failure tier ---

func TestGenerate_ProviderErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
	}{
		{
			name:     "insufficient quota",
			status:   http.StatusTooManyRequests,
			body:     errorBody("You exceeded your current quota", "insufficient_quota", "insufficient_quota"),
			sentinel: types.ErrQuotaExceeded,
			message:  msgQuotaExceeded,
		},
		{
			name:     "invalid api key",
			status:   http.StatusUnauthorized,
			body:     errorBody("Incorrect API key provided", "invalid_request_error", "invalid_api_key"),
			sentinel: types.ErrInvalidCredential,
			message:  msgInvalidCredential,
		},
		{
			name:     "rate limit code",
			status:   http.StatusTooManyRequests,
			body:     errorBody("Rate limit reached for requests", "requests", "rate_limit_exceeded"),
			sentinel: types.ErrRateLimited,
			message:  msgRateLimited,
		},
		{
			name:     "rate limit status without body",
			status:   http.StatusTooManyRequests,
			body:     "",
			sentinel: types.ErrRateLimited,
			message:  msgRateLimited,
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     errorBody("The server had an error while processing your request.", "server_error", ""),
			sentinel: types.ErrProviderFailure,
			message:  "AI service error: The server had an error while processing your request.",
		},
		{
			name:     "non-JSON error body",
			status:   http.StatusBadGateway,
			body:     "upstream unavailable",
			sentinel: types.ErrProviderFailure,
			message:  "AI service error: upstream unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, tt.status, tt.body)
			g := newTestGenerator(t, api)

			res, err := g.Generate(context.Background(), Request{Components: []string{"ESP32 DevKit"}})
			require.Error(t, err)
			assert.Empty(t, res.Ideas)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.message, err.Error())
			assert.True(t, IsProviderError(err))

			var pe *ProviderError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.status, pe.StatusCode)
			assert.Equal(t, 1, api.calls, "failures are not retried")
		})
	}
}

func TestProviderMessagesAreDistinct(t *testing.T) {
	assert.Contains(t, msgQuotaExceeded, "billing")
	assert.NotContains(t, msgRateLimited, "billing")
	assert.NotContains(t, msgInvalidCredential, "billing")
	assert.NotEqual(t, msgQuotaExceeded, msgRateLimited)
	assert.NotEqual(t, msgQuotaExceeded, msgInvalidCredential)
}

func TestGenerate_NetworkFailure(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, "")
	g := newTestGenerator(t, api)
	api.Close()

	_, err := g.Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrProviderFailure)
	assert.True(t, strings.HasPrefix(err.Error(), msgServicePrefix))
}

// --- malformed reply tier ---

func TestGenerate_MalformedReplySynthesizesOneIdea(t *testing.T) {
	replies := map[string]string{
		"prose":         "Sure! Here are some great project ideas for you.",
		"empty array":   "[]",
		"missing title": `[{"description": "no title"}]`,
		"object":        `{"title": "not an array", "description": "x"}`,
		"wrong types":   `[{"title": 42, "description": "x"}]`,
	}

	for name, reply := range replies {
		t.Run(name, func(t *testing.T) {
			api := newFakeAPI(t, http.StatusOK, replyBody(t, reply))
			g := newTestGenerator(t, api)

			req := Request{
				Components: []string{"PIR Motion Sensor", "Buzzer"},
				Theme:      "Security",
				SkillLevel: "Beginner",
				Count:      4,
			}
			res, err := g.Generate(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, SourceFallback, res.Source)
			require.Len(t, res.Ideas, 1)

			idea := res.Ideas[0]
			assert.Equal(t, req.Components, idea.Components)
			assert.Equal(t, types.GeneratedByFallback, idea.GeneratedBy)
			assert.Equal(t, "Security Project with PIR Motion Sensor", idea.Title)
			assert.Equal(t, "An innovative beginner level project using PIR Motion Sensor, Buzzer.", idea.Description)
			assert.Equal(t, "Security", idea.Theme)
			assert.NotEmpty(t, idea.ID)
		})
	}
}

func TestSynthesize_NoComponents(t *testing.T) {
	idea := synthesize(Request{Theme: "General", SkillLevel: "Beginner", Components: []string{}})
	assert.Equal(t, "General Project with Arduino", idea.Title)
	assert.Equal(t, []string{}, idea.Components)
}

// --- enhance ---

func TestEnhance(t *testing.T) {
	original := types.Idea{
		ID:          "i1",
		Title:       "Weather Station",
		Description: "Logs temperature and humidity.",
		Components:  []string{"ESP32 DevKit", "DHT22"},
	}

	t.Run("attaches enhancement", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusOK, replyBody(t, `{
			"implementationSteps": ["Wire DHT22 data to GPIO4", "Flash firmware"],
			"circuitDiagram": "DHT22 VCC to 3V3, GND to GND, DATA to GPIO4",
			"codeSnippet": "void setup() {}",
			"troubleshooting": [{"issue": "NaN readings", "solution": "Add a 10k pull-up"}],
			"learningOutcomes": "Sensor timing"
		}`))
		g := newTestGenerator(t, api)

		got := g.Enhance(context.Background(), original)
		require.NotNil(t, got.Enhancement)
		assert.Equal(t, []string{"Wire DHT22 data to GPIO4", "Flash firmware"}, got.Enhancement.ImplementationSteps)
		assert.Equal(t, []string{"issue: NaN readings; solution: Add a 10k pull-up"}, got.Enhancement.Troubleshooting)
		assert.Equal(t, []string{"Sensor timing"}, got.Enhancement.LearningOutcomes)
		assert.False(t, got.Enhancement.EnhancedAt.IsZero())
		assert.Equal(t, original.Title, got.Title)

		req := api.requests[0]
		assert.Equal(t, enhanceMaxTokens, req.MaxTokens)
		assert.Equal(t, enhanceTemperature, req.Temperature)
		assert.Contains(t, req.Messages[1].Content, "Components: ESP32 DevKit, DHT22")
	})

	t.Run("provider failure returns original", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusInternalServerError, errorBody("boom", "server_error", ""))
		got := newTestGenerator(t, api).Enhance(context.Background(), original)
		assert.Equal(t, original, got)
	})

	t.Run("malformed reply returns original", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusOK, replyBody(t, `{"circuitDiagram": "no steps"}`))
		got := newTestGenerator(t, api).Enhance(context.Background(), original)
		assert.Equal(t, original, got)
	})

	t.Run("unconfigured returns original", func(t *testing.T) {
		got := New(Unconfigured{}, zap.NewNop()).Enhance(context.Background(), original)
		assert.Equal(t, original, got)
	})
}

// --- suggest ---

func TestSuggest(t *testing.T) {
	prefs := types.Preferences{SkillLevel: "Intermediate", SelectedThemes: []string{"IoT", "Robotics"}}

	t.Run("caps at three", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusOK, replyBody(t, `[
			{"title": "A", "description": "a", "requiredComponents": ["ESP32 DevKit"]},
			{"title": "B", "description": "b", "requiredComponents": "Servo Motor SG90"},
			{"title": "C", "description": "c"},
			{"title": "D", "description": "d"}
		]`))
		got := newTestGenerator(t, api).Suggest(context.Background(), prefs)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"Servo Motor SG90"}, got[1].RequiredComponents)
		assert.Equal(t, []string{}, got[2].RequiredComponents)

		prompt := api.requests[0].Messages[1].Content
		assert.Contains(t, prompt, "Themes: IoT, Robotics")
		assert.Contains(t, prompt, "Interests: Learning")
		assert.Equal(t, suggestMaxTokens, api.requests[0].MaxTokens)
	})

	t.Run("failure yields empty list", func(t *testing.T) {
		api := newFakeAPI(t, http.StatusTooManyRequests, errorBody("slow down", "requests", "rate_limit_exceeded"))
		got := newTestGenerator(t, api).Suggest(context.Background(), prefs)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("unconfigured yields empty list", func(t *testing.T) {
		got := New(Unconfigured{}, zap.NewNop()).Suggest(context.Background(), prefs)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

// --- parsing helpers ---

func TestStripFences(t *testing.T) {
	tests := map[string]string{
		"[1]":               "[1]",
		"  [1]  ":           "[1]",
		"```json\n[1]\n```": "[1]",
		"```\n[1]\n```\n":   "[1]",
		"```[1]```":         "[1]",
	}
	for in, want := range tests {
		assert.Equal(t, want, stripFences(in), "input %q", in)
	}
}

func TestRenderIdeasPrompt(t *testing.T) {
	prompt, err := renderIdeasPrompt(Request{Components: []string{"A", "B"}, Theme: "Education", SkillLevel: "Beginner", Count: 3})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Generate 3 innovative electronic project ideas using these components: A, B")
	assert.Contains(t, prompt, "Return ONLY a valid JSON array with 3 project objects.")
	assert.Contains(t, prompt, `"difficulty": "Beginner"`)
}
