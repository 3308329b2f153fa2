// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage device-local session state",
	Long: `Session keeps small flags on this machine between runs: whether
onboarding is done and which components are selected for generate.`,
}

var sessionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		st, err := s.State()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Onboarding complete: %t\n", st.OnboardingComplete)
		if len(st.SelectedComponents) == 0 {
			fmt.Fprintln(os.Stdout, "Selected components: none")
		} else {
			fmt.Fprintf(os.Stdout, "Selected components: %s\n", strings.Join(st.SelectedComponents, ", "))
		}
		if !st.UpdatedAt.IsZero() {
			fmt.Fprintf(os.Stdout, "Updated: %s\n", st.UpdatedAt.Local().Format(time.RFC1123))
		}
		return nil
	},
}

var sessionOnboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Mark onboarding complete (--undo to clear)",
	RunE: func(cmd *cobra.Command, args []string) error {
		undo, _ := cmd.Flags().GetBool("undo")

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SetOnboardingComplete(!undo); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Onboarding complete: %t\n", !undo)
		return nil
	},
}

var sessionSelectCmd = &cobra.Command{
	Use:   "select [component...]",
	Short: "Replace the component selection used by generate",
	Long: `Select stores the given component names as the selection for generate.
With no arguments the selection is cleared.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SetSelectedComponents(args); err != nil {
			return err
		}
		selected, err := s.SelectedComponents()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Selected %d components\n", len(selected))
		return nil
	},
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Reset(); err != nil {
			return err
		}
		fmt.Println("Session cleared.")
		return nil
	},
}

func init() {
	sessionOnboardCmd.Flags().Bool("undo", false, "mark onboarding as not complete")

	sessionCmd.AddCommand(sessionStatusCmd)
	sessionCmd.AddCommand(sessionOnboardCmd)
	sessionCmd.AddCommand(sessionSelectCmd)
	sessionCmd.AddCommand(sessionResetCmd)

	rootCmd.AddCommand(sessionCmd)
}
