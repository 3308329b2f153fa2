// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/idea-generator/pkg/types"
)

var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "Browse and edit the component catalog",
	Long: `Components manages the electronic parts catalog. Listing an empty catalog
seeds it with eight sample parts; when the store cannot be read, the same
samples are shown marked as fallback.`,
}

// --- list subcommand ---

var componentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List components, optionally filtered by category",
	RunE:  runComponentsList,
}

func runComponentsList(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	var components []types.Component
	if category != "" {
		components = a.repo.ComponentsByCategory(cmd.Context(), category)
	} else {
		components = a.repo.ListComponents(cmd.Context())
	}

	if jsonOutput {
		return printJSON(components)
	}
	return formatComponents(components)
}

func formatComponents(components []types.Component) error {
	if len(components) == 0 {
		fmt.Println("No components found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-28s  %-16s  %8s  %5s\n", "ID", "Name", "Category", "Price", "Stock")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, c := range components {
		fmt.Fprintf(os.Stdout, "%-36s  %-28s  %-16s  %8.2f  %5d\n",
			c.ID, truncate(c.Name, 28), truncate(c.Category, 16), c.Price, c.Stock)
	}
	fmt.Fprintf(os.Stdout, "\n%d components\n", len(components))
	return nil
}

// --- get subcommand ---

var componentsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one component",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.repo.GetComponent(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(c)
	},
}

// --- add subcommand ---

var componentsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a component to the catalog",
	RunE:  runComponentsAdd,
}

func runComponentsAdd(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	category, _ := cmd.Flags().GetString("category")
	description, _ := cmd.Flags().GetString("description")
	price, _ := cmd.Flags().GetFloat64("price")
	stock, _ := cmd.Flags().GetInt("stock")
	availability, _ := cmd.Flags().GetString("availability")
	imageURL, _ := cmd.Flags().GetString("image-url")
	specs, _ := cmd.Flags().GetStringToString("spec")

	c := types.Component{
		Name:         name,
		Category:     category,
		Description:  description,
		Price:        price,
		Stock:        stock,
		Availability: availability,
		ImageURL:     imageURL,
	}
	if len(specs) > 0 {
		c.Specifications = make(map[string]any, len(specs))
		for k, v := range specs {
			c.Specifications[k] = v
		}
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	saved, err := a.repo.AddComponent(cmd.Context(), c)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Added %s (%s)\n", saved.Name, saved.ID)
	return nil
}

// --- update subcommand ---

var componentsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a component",
	Long: `Update merges --set key=value pairs into the stored component. Values
that parse as JSON (numbers, booleans, arrays, objects) are stored typed;
anything else is stored as a string.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, _ := cmd.Flags().GetStringToString("set")

		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.repo.UpdateComponent(cmd.Context(), args[0], parseFields(set, componentText)); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Updated component %s\n", args[0])
		return nil
	},
}

// --- delete subcommand ---

var componentsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a component",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.repo.DeleteComponent(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Deleted component %s\n", args[0])
		return nil
	},
}

// --- seed subcommand ---

var componentsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample parts into an empty catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		seeded, err := a.repo.InitializeSampleComponents(cmd.Context())
		if err != nil {
			return err
		}
		if seeded {
			fmt.Println("Seeded sample components.")
		} else {
			fmt.Println("Catalog already has components; nothing to do.")
		}
		return nil
	},
}

// componentText holds the json names of the text fields of a component.
var componentText = textFields(types.Component{})

// textFields returns the json names of v's string-typed fields.
func textFields(v any) map[string]bool {
	names := map[string]bool{}
	t := reflect.TypeOf(v)
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Type.Kind() != reflect.String {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name != "" && name != "-" {
			names[name] = true
		}
	}
	return names
}

// parseFields turns key=value flags into an update document. Values for the
// keys in text are kept verbatim; others are read as JSON when they parse.
func parseFields(set map[string]string, text map[string]bool) map[string]any {
	fields := make(map[string]any, len(set))
	for k, v := range set {
		if text[k] {
			fields[k] = v
			continue
		}
		var typed any
		if err := json.Unmarshal([]byte(v), &typed); err == nil {
			fields[k] = typed
			continue
		}
		fields[k] = v
	}
	return fields
}

func init() {
	componentsListCmd.Flags().String("category", "", "only list components in this category")
	componentsListCmd.Flags().Bool("json", false, "output as JSON")

	componentsAddCmd.Flags().String("name", "", "component name (required)")
	componentsAddCmd.Flags().String("category", "", "component category (required)")
	componentsAddCmd.Flags().String("description", "", "short description")
	componentsAddCmd.Flags().Float64("price", 0, "price in rupees")
	componentsAddCmd.Flags().Int("stock", 0, "units in stock")
	componentsAddCmd.Flags().String("availability", types.AvailabilityInStock, "availability label")
	componentsAddCmd.Flags().String("image-url", "", "image URL")
	componentsAddCmd.Flags().StringToString("spec", nil, "specification key=value (repeatable)")

	componentsUpdateCmd.Flags().StringToString("set", nil, "field=value to merge (repeatable)")

	componentsCmd.AddCommand(componentsListCmd)
	componentsCmd.AddCommand(componentsGetCmd)
	componentsCmd.AddCommand(componentsAddCmd)
	componentsCmd.AddCommand(componentsUpdateCmd)
	componentsCmd.AddCommand(componentsDeleteCmd)
	componentsCmd.AddCommand(componentsSeedCmd)

	rootCmd.AddCommand(componentsCmd)
}
