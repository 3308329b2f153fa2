// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/idea-generator/pkg/types"
)

// Export formats accepted by ExportIdeas.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ExportIdeas writes every stored idea, newest first, to w in the given
// format and returns how many were written. Favorites restricts the export
// to favorite ideas.
func (r *Repository) ExportIdeas(ctx context.Context, w io.Writer, format string, favorites bool) (int, error) {
	ideas := r.ListIdeas(ctx)
	if favorites {
		kept := ideas[:0]
		for _, idea := range ideas {
			if idea.IsFavorite {
				kept = append(kept, idea)
			}
		}
		ideas = kept
	}

	var data []byte
	var err error
	switch format {
	case FormatYAML, "":
		data, err = yaml.Marshal(ideas)
		if err != nil {
			return 0, fmt.Errorf("marshaling YAML: %w", err)
		}
	case FormatJSON:
		data, err = json.MarshalIndent(ideas, "", "  ")
		if err != nil {
			return 0, fmt.Errorf("marshaling JSON: %w", err)
		}
		data = append(data, '\n')
	default:
		return 0, fmt.Errorf("%w: unsupported format %q: use yaml or json", types.ErrInvalidInput, format)
	}

	if _, err := w.Write(data); err != nil {
		return 0, fmt.Errorf("writing export: %w", err)
	}
	return len(ideas), nil
}
