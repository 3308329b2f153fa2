// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultUserID is used when the caller does not identify a user.
const DefaultUserID = "default_user"

// Preferences is the single per-user settings record.
type Preferences struct {
	// UserID doubles as the document ID in the preferences collection.
	UserID string `json:"id" yaml:"id"`

	SkillLevel      string    `json:"skillLevel" yaml:"skill_level"`
	SelectedThemes  []string  `json:"selectedThemes" yaml:"selected_themes"`
	Interests       []string  `json:"interests" yaml:"interests"`
	DarkModeEnabled bool      `json:"darkModeEnabled" yaml:"dark_mode_enabled"`
	ProjectDuration string    `json:"projectDuration" yaml:"project_duration"`
	TeamSize        string    `json:"teamSize" yaml:"team_size"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty" yaml:"updated_at,omitempty"`
}

// DefaultPreferences returns the record created on a user's first read.
func DefaultPreferences(userID string) Preferences {
	if userID == "" {
		userID = DefaultUserID
	}
	return Preferences{
		UserID:          userID,
		SkillLevel:      "Beginner",
		SelectedThemes:  []string{},
		Interests:       []string{},
		DarkModeEnabled: false,
		ProjectDuration: "Short-term",
		TeamSize:        "Individual",
	}
}

// Stats are counts derived from persisted records.
type Stats struct {
	IdeasGenerated      int `json:"ideasGenerated" yaml:"ideas_generated"`
	ComponentsAvailable int `json:"componentsAvailable" yaml:"components_available"`

	// ProjectsCompleted is not tracked yet and is always zero.
	ProjectsCompleted int `json:"projectsCompleted" yaml:"projects_completed"`

	FavoriteIdeas int `json:"favoriteIdeas" yaml:"favorite_ideas"`
}
