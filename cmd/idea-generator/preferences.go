// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var preferencesCmd = &cobra.Command{
	Use:   "preferences",
	Short: "Show or change your preferences",
	Long: `Preferences are stored once per user (user_id in configuration). Reading
them for the first time saves the defaults.`,
}

var preferencesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		return printJSON(a.repo.GetPreferences(cmd.Context(), cfg.UserID))
	},
}

var preferencesSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change preferences; unset flags keep their stored values",
	RunE:  runPreferencesSet,
}

func runPreferencesSet(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	p := a.repo.GetPreferences(cmd.Context(), cfg.UserID)

	flags := cmd.Flags()
	if flags.Changed("skill") {
		p.SkillLevel, _ = flags.GetString("skill")
	}
	if flags.Changed("theme") {
		p.SelectedThemes, _ = flags.GetStringSlice("theme")
	}
	if flags.Changed("interest") {
		p.Interests, _ = flags.GetStringSlice("interest")
	}
	if flags.Changed("dark-mode") {
		p.DarkModeEnabled, _ = flags.GetBool("dark-mode")
	}
	if flags.Changed("duration") {
		p.ProjectDuration, _ = flags.GetString("duration")
	}
	if flags.Changed("team-size") {
		p.TeamSize, _ = flags.GetString("team-size")
	}

	saved, err := a.repo.SavePreferences(cmd.Context(), cfg.UserID, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Saved preferences for %s: %s, themes [%s]\n",
		saved.UserID, saved.SkillLevel, strings.Join(saved.SelectedThemes, ", "))
	return nil
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest trending projects from your preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		prefs := a.repo.GetPreferences(cmd.Context(), cfg.UserID)
		suggestions := a.gen.Suggest(cmd.Context(), prefs)
		if jsonOutput {
			return printJSON(suggestions)
		}
		if len(suggestions) == 0 {
			fmt.Println("No suggestions available.")
			return nil
		}
		for i, s := range suggestions {
			fmt.Fprintf(os.Stdout, "%d. %s\n   %s\n", i+1, s.Title, s.Description)
			if len(s.RequiredComponents) > 0 {
				fmt.Fprintf(os.Stdout, "   Needs: %s\n", strings.Join(s.RequiredComponents, ", "))
			}
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show counts of ideas, components and favorites",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		stats := a.repo.Stats(cmd.Context())
		if jsonOutput {
			return printJSON(stats)
		}
		fmt.Fprintf(os.Stdout, "Ideas generated:      %d\n", stats.IdeasGenerated)
		fmt.Fprintf(os.Stdout, "Components available: %d\n", stats.ComponentsAvailable)
		fmt.Fprintf(os.Stdout, "Projects completed:   %d\n", stats.ProjectsCompleted)
		fmt.Fprintf(os.Stdout, "Favorite ideas:       %d\n", stats.FavoriteIdeas)
		return nil
	},
}

func init() {
	preferencesSetCmd.Flags().String("skill", "", "skill level: Beginner, Intermediate, Advanced")
	preferencesSetCmd.Flags().StringSlice("theme", nil, "preferred theme (repeatable)")
	preferencesSetCmd.Flags().StringSlice("interest", nil, "interest (repeatable)")
	preferencesSetCmd.Flags().Bool("dark-mode", false, "enable dark mode")
	preferencesSetCmd.Flags().String("duration", "", "project duration, e.g. Short-term")
	preferencesSetCmd.Flags().String("team-size", "", "team size, e.g. Individual")

	preferencesCmd.AddCommand(preferencesShowCmd)
	preferencesCmd.AddCommand(preferencesSetCmd)

	suggestCmd.Flags().Bool("json", false, "output as JSON")
	statsCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(preferencesCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(statsCmd)
}
