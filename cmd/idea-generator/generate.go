// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/idea-generator/internal/generate"
	"github.com/pdiddy/idea-generator/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate project ideas from selected components",
	Long: `Generate asks the language model for project ideas that use the given
components. Components come from repeated --component flags or, when none
are given, from the selection saved with "session select".

Without an API key, up to five sample ideas are returned. If the model reply
cannot be parsed, one idea is synthesized from the request. Quota, credential
and rate-limit failures are reported and not retried.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	components, _ := cmd.Flags().GetStringSlice("component")
	theme, _ := cmd.Flags().GetString("theme")
	skill, _ := cmd.Flags().GetString("skill")
	count, _ := cmd.Flags().GetInt("count")
	save, _ := cmd.Flags().GetBool("save")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if len(components) == 0 {
		selected, err := selectedFromSession()
		if err != nil {
			return err
		}
		components = selected
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.gen.Generate(cmd.Context(), generate.Request{
		Components: components,
		Theme:      theme,
		SkillLevel: skill,
		Count:      count,
	})
	if err != nil {
		return err
	}

	if save {
		saved := make([]types.Idea, 0, len(result.Ideas))
		for _, idea := range result.Ideas {
			stored, err := a.repo.SaveIdea(cmd.Context(), idea)
			if err != nil {
				return err
			}
			saved = append(saved, stored)
		}
		result.Ideas = saved
	}

	if jsonOutput {
		return printJSON(result)
	}

	fmt.Fprintf(os.Stdout, "%d ideas (source: %s)\n\n", len(result.Ideas), result.Source)
	for i, idea := range result.Ideas {
		fmt.Fprintf(os.Stdout, "%d. %s [%s, %s]\n", i+1, idea.Title, idea.Difficulty, idea.EstimatedCost)
		fmt.Fprintf(os.Stdout, "   %s\n", idea.Description)
		if len(idea.Components) > 0 {
			fmt.Fprintf(os.Stdout, "   Components: %s\n", strings.Join(idea.Components, ", "))
		}
		if save {
			fmt.Fprintf(os.Stdout, "   Saved as %s\n", idea.ID)
		}
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

// selectedFromSession reads the saved component selection. A session that
// cannot be opened (for example, locked by another process) yields none.
func selectedFromSession() ([]string, error) {
	s, err := openSession()
	if err != nil {
		logger.Warn("session store unavailable; generating without components", zap.Error(err))
		return nil, nil
	}
	defer s.Close()
	return s.SelectedComponents()
}

func init() {
	generateCmd.Flags().StringSlice("component", nil, "component name to build with (repeatable)")
	generateCmd.Flags().String("theme", generate.DefaultTheme, "project theme")
	generateCmd.Flags().String("skill", generate.DefaultSkillLevel, "skill level: Beginner, Intermediate, Advanced")
	generateCmd.Flags().Int("count", generate.DefaultCount, "number of ideas to request")
	generateCmd.Flags().Bool("save", false, "store the generated ideas")
	generateCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(generateCmd)
}
