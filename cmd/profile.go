package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vietdv277/awsprof/internal/aws"
	"github.com/vietdv277/awsprof/internal/config"
	"github.com/vietdv277/awsprof/internal/ui"
	pkgtypes "github.com/vietdv277/awsprof/pkg/types"
)

var (
	lsValidOnly   bool
	lsInvalidOnly bool
	showOutput    string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage AWS profiles",
	Long: `Inspect and select AWS profiles.

When run without subcommands, shows an interactive selector to choose a profile.

Examples:
  awsprof profile                    # Interactive profile selector
  awsprof profile ls                 # List all profiles with type and status
  awsprof profile ls --invalid       # Only profiles that failed validation
  awsprof profile show prod -o yaml  # Show one profile
  awsprof profile validate           # Check every profile
  awsprof profile set my-profile     # Set a specific profile`,
	Args: cobra.NoArgs,
	RunE: runProfileInteractive,
}

var profileLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List AWS profiles with their type and validation status",
	Long: `List every profile from the shared config and credentials files.

Examples:
  awsprof profile ls
  awsprof profile ls --valid`,
	Args: cobra.NoArgs,
	RunE: runProfileList,
}

var profileShowCmd = &cobra.Command{
	Use:   "show <profile-name>",
	Short: "Show every field of a profile",
	Long: `Show the merged settings, type and validation result of a profile.

Output formats: table (default), yaml, json, ini.

Examples:
  awsprof profile show prod
  awsprof profile show prod -o ini`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileShow,
}

var profileValidateCmd = &cobra.Command{
	Use:   "validate [profile-name...]",
	Short: "Validate profiles and exit non-zero if any is invalid",
	Long: `Validate the named profiles, or every profile when none is named.
Invalid profiles are listed with the reason; the command fails if there is at least one.

Examples:
  awsprof profile validate
  awsprof profile validate prod staging`,
	RunE: runProfileValidate,
}

var profileSetCmd = &cobra.Command{
	Use:   "set <profile-name>",
	Short: "Set the active AWS profile",
	Long: `Set a specific AWS profile as active.

The profile will be saved to ~/.config/awsprof/config.yaml and used by future awsprof commands.

Examples:
  awsprof profile set my-profile
  awsprof profile set production`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileSet,
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileLsCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileValidateCmd)
	profileCmd.AddCommand(profileSetCmd)

	profileLsCmd.Flags().BoolVar(&lsValidOnly, "valid", false, "only list valid profiles")
	profileLsCmd.Flags().BoolVar(&lsInvalidOnly, "invalid", false, "only list invalid profiles")
	profileLsCmd.MarkFlagsMutuallyExclusive("valid", "invalid")

	profileShowCmd.Flags().StringVarP(&showOutput, "output", "o", "table", "output format: table, yaml, json, ini")
}

func runProfileInteractive(cmd *cobra.Command, args []string) error {
	m := newProfileManager(cmd)
	out := cmd.OutOrStdout()

	selected, err := ui.SelectProfile(m.Profiles(), m.CurrentProfile())
	if err != nil {
		if errors.Is(err, ui.ErrSelectionCancelled) {
			return nil
		}
		return err
	}

	if !selected.IsValid {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: profile %s is invalid: %s\n", selected.Name, selected.ErrorMessage)
	}

	return saveProfile(out, selected.Name)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	m := newProfileManager(cmd)
	out := cmd.OutOrStdout()

	var profiles []pkgtypes.AWSProfile
	switch {
	case lsValidOnly:
		profiles = m.ValidProfiles()
	case lsInvalidOnly:
		profiles = m.InvalidProfiles()
	default:
		profiles = m.Profiles()
	}

	if len(profiles) == 0 {
		fmt.Fprintln(out, "No matching AWS profiles")
		return nil
	}

	ui.PrintProfileTable(out, profiles, m.CurrentProfile())
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	m := newProfileManager(cmd)

	p, ok := m.GetProfile(args[0])
	if !ok {
		return fmt.Errorf("%w: %q", aws.ErrProfileNotFound, args[0])
	}

	return writeProfile(cmd.OutOrStdout(), p, showOutput, m.CurrentProfile())
}

// writeProfile renders a single profile in the requested output format
func writeProfile(w io.Writer, p pkgtypes.AWSProfile, format, activeProfile string) error {
	switch format {
	case "", "table":
		ui.PrintProfileDetail(w, p, activeProfile)
		return nil

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		return enc.Close()

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		return nil

	case "ini":
		return aws.ExportINI(w, p)

	default:
		return fmt.Errorf("unsupported output format %q (use table, yaml, json or ini)", format)
	}
}

func runProfileValidate(cmd *cobra.Command, args []string) error {
	m := newProfileManager(cmd)
	out := cmd.OutOrStdout()

	var profiles []pkgtypes.AWSProfile
	if len(args) == 0 {
		profiles = m.Profiles()
	} else {
		for _, name := range args {
			p, ok := m.GetProfile(name)
			if !ok {
				return fmt.Errorf("%w: %q", aws.ErrProfileNotFound, name)
			}
			profiles = append(profiles, p)
		}
	}

	ui.PrintProfileIssues(out, profiles)

	invalid := 0
	for _, p := range profiles {
		if !p.IsValid {
			invalid++
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d profiles failed validation", aws.ErrInvalidProfile, invalid, len(profiles))
	}

	fmt.Fprintf(out, "%s %d profiles valid\n", ui.ValidStyle.Render(ui.ValidMark), len(profiles))
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	m := newProfileManager(cmd)
	profileName := args[0]

	// Validate profile exists
	if err := m.SetCurrentProfile(profileName); err != nil {
		return err
	}

	p, _ := m.GetProfile(profileName)
	if !p.IsValid {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: profile %s is invalid: %s\n", p.Name, p.ErrorMessage)
	}

	return saveProfile(cmd.OutOrStdout(), profileName)
}

// saveProfile stores the selection and prints how to use it in the current shell
func saveProfile(out io.Writer, profileName string) error {
	if err := config.SetProfile(profileName); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	fmt.Fprintf(out, "Profile set to: %s\n", profileName)
	fmt.Fprintf(out, "Saved to: %s\n\n", config.GetConfigPath())
	fmt.Fprintln(out, "To use this profile in your current shell, run:")
	fmt.Fprintf(out, "  export AWS_PROFILE=%s\n", profileName)

	return nil
}
