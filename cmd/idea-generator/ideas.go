// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/idea-generator/internal/catalog"
	"github.com/pdiddy/idea-generator/pkg/types"
)

var ideasCmd = &cobra.Command{
	Use:   "ideas",
	Short: "Browse, favorite, enhance and export saved ideas",
}

// --- list subcommand ---

var ideasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved ideas, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		favorites, _ := cmd.Flags().GetBool("favorites")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		ideas := a.repo.ListIdeas(cmd.Context())
		if favorites {
			ideas = onlyFavorites(ideas)
		}
		return formatIdeas(ideas, jsonOutput)
	},
}

// --- search subcommand ---

var ideasSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Find ideas whose title, description or tags contain a term",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		return formatIdeas(a.repo.SearchIdeas(cmd.Context(), strings.Join(args, " ")), jsonOutput)
	},
}

func formatIdeas(ideas []types.Idea, jsonOutput bool) error {
	if jsonOutput {
		return printJSON(ideas)
	}
	if len(ideas) == 0 {
		fmt.Println("No ideas found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-3s  %-40s  %-12s  %s\n", "ID", "Fav", "Title", "Difficulty", "Generated By")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, idea := range ideas {
		fav := ""
		if idea.IsFavorite {
			fav = "*"
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-3s  %-40s  %-12s  %s\n",
			idea.ID, fav, truncate(idea.Title, 40), idea.Difficulty, idea.GeneratedBy)
	}
	fmt.Fprintf(os.Stdout, "\n%d ideas\n", len(ideas))
	return nil
}

func onlyFavorites(ideas []types.Idea) []types.Idea {
	out := make([]types.Idea, 0, len(ideas))
	for _, idea := range ideas {
		if idea.IsFavorite {
			out = append(out, idea)
		}
	}
	return out
}

// --- get subcommand ---

var ideasGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one idea in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		idea, err := a.repo.GetIdea(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(idea)
	},
}

// --- favorite / toggle subcommands ---

var ideasFavoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Mark an idea as favorite (--off to clear)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		off, _ := cmd.Flags().GetBool("off")

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.repo.SetFavorite(cmd.Context(), args[0], !off); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Idea %s favorite: %t\n", args[0], !off)
		return nil
	},
}

var ideasToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip an idea's favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		favorite, err := a.repo.ToggleFavorite(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Idea %s favorite: %t\n", args[0], favorite)
		return nil
	},
}

// --- delete subcommand ---

var ideasDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a saved idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.repo.DeleteIdea(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Deleted idea %s\n", args[0])
		return nil
	},
}

// --- enhance subcommand ---

var ideasEnhanceCmd = &cobra.Command{
	Use:   "enhance <id>",
	Short: "Add implementation steps, circuit notes and code to an idea",
	Long: `Enhance asks the language model for implementation detail and stores it
on the idea. Without an API key, or when the model reply cannot be used, the
idea is left unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		idea, err := a.repo.GetIdea(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		enhanced := a.gen.Enhance(cmd.Context(), idea)
		if enhanced.Enhancement == nil || enhanced.Enhancement == idea.Enhancement {
			fmt.Fprintf(os.Stdout, "Idea %s was not enhanced.\n", args[0])
			return nil
		}
		if err := a.repo.SaveEnhancement(cmd.Context(), args[0], *enhanced.Enhancement); err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Enhanced %q\n\n", enhanced.Title)
		for i, step := range enhanced.Enhancement.ImplementationSteps {
			fmt.Fprintf(os.Stdout, "%2d. %s\n", i+1, step)
		}
		return nil
	},
}

// --- export subcommand ---

var ideasExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved ideas to YAML or JSON",
	Long: `Export writes every saved idea (or only favorites) to stdout, or to the
file named by --output.`,
	RunE: runIdeasExport,
}

func runIdeasExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	favorites, _ := cmd.Flags().GetBool("favorites")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := exportIdeas(cmd.Context(), a.repo, os.Stdout, output, format, favorites)
	if err != nil {
		return err
	}
	if output != "" {
		fmt.Fprintf(os.Stdout, "Exported %d ideas to %s\n", n, output)
	}
	return nil
}

// exportIdeas renders the export in memory and only then writes it to
// output, or to stdout when output is empty. A failed export leaves an
// existing output file untouched.
func exportIdeas(ctx context.Context, repo *catalog.Repository, stdout io.Writer, output, format string, favorites bool) (int, error) {
	var buf bytes.Buffer
	n, err := repo.ExportIdeas(ctx, &buf, format, favorites)
	if err != nil {
		return 0, err
	}
	if output == "" {
		_, err = buf.WriteTo(stdout)
		return n, err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", output, err)
	}
	return n, nil
}

func init() {
	ideasListCmd.Flags().Bool("favorites", false, "only list favorite ideas")
	ideasListCmd.Flags().Bool("json", false, "output as JSON")

	ideasSearchCmd.Flags().Bool("json", false, "output as JSON")

	ideasFavoriteCmd.Flags().Bool("off", false, "clear the favorite flag instead of setting it")

	ideasExportCmd.Flags().String("format", catalog.FormatYAML, "export format: yaml or json")
	ideasExportCmd.Flags().String("output", "", "write to this file instead of stdout")
	ideasExportCmd.Flags().Bool("favorites", false, "only export favorite ideas")

	ideasCmd.AddCommand(ideasListCmd)
	ideasCmd.AddCommand(ideasGetCmd)
	ideasCmd.AddCommand(ideasSearchCmd)
	ideasCmd.AddCommand(ideasFavoriteCmd)
	ideasCmd.AddCommand(ideasToggleCmd)
	ideasCmd.AddCommand(ideasDeleteCmd)
	ideasCmd.AddCommand(ideasEnhanceCmd)
	ideasCmd.AddCommand(ideasExportCmd)

	rootCmd.AddCommand(ideasCmd)
}
