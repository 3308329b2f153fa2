// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Availability values used by the sample catalog.
const (
	AvailabilityInStock    = "Available"
	AvailabilityOutOfStock = "Out of Stock"
)

// ComponentSourceFallback marks components served from the built-in sample
// list rather than the document store.
const ComponentSourceFallback = "fallback"

// Component is an electronic part catalog entry.
type Component struct {
	// ID is assigned by the document store.
	ID string `json:"id" yaml:"id"`

	// Name is the part name shown to makers (e.g. "Arduino Uno").
	Name string `json:"name" yaml:"name" validate:"required"`

	// Category groups parts for browsing (e.g. "Sensors", "Motors").
	Category string `json:"category" yaml:"category" validate:"required"`

	Description string `json:"description" yaml:"description"`

	// Price is in Indian Rupees.
	Price float64 `json:"price" yaml:"price" validate:"gte=0"`

	Availability string `json:"availability" yaml:"availability"`

	Stock int `json:"stock" yaml:"stock" validate:"gte=0"`

	ImageURL string `json:"imageUrl,omitempty" yaml:"image_url,omitempty"`

	// Specifications is a free-form map of datasheet values.
	Specifications map[string]any `json:"specifications,omitempty" yaml:"specifications,omitempty"`

	// Source is "fallback" when the record did not come from the store.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`
}
