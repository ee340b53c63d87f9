package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vietdv277/awsprof/internal/aws"
	"github.com/vietdv277/awsprof/internal/ui"
	pkgtypes "github.com/vietdv277/awsprof/pkg/types"
)

var statusCheck bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active profile and whether it is usable",
	Long: `Display the active AWS profile, how it obtains credentials and whether it
passed validation. With --check, valid profiles are also verified against STS.

Examples:
  awsprof status
  awsprof status --check
  awsprof status -p staging --check`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusCheck, "check", false, "call sts:GetCallerIdentity with the active profile")
}

func runStatus(cmd *cobra.Command, args []string) error {
	m := newProfileManager(cmd)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Current Status")
	fmt.Fprintln(out, ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Fprintln(out)

	name := m.CurrentProfile()
	if requested := getActiveProfile(loadSettings()); requested != "" && name == "" {
		fmt.Fprintf(out, "Profile:  %s\n", ui.NameStyle.Render(requested))
		fmt.Fprintf(out, "Config:   %s\n", ui.InvalidStyle.Render(ui.InvalidMark+" Not configured"))
		fmt.Fprintf(out, "          %s\n", ui.MutedStyle.Render(fmt.Sprintf("no profile named %q in %s or %s",
			requested, m.Paths().ConfigFile, m.Paths().CredentialsFile)))
		return nil
	}

	if name == "" {
		name = pkgtypes.DefaultProfileName
		fmt.Fprintf(out, "Profile:  %s %s\n", ui.NameStyle.Render(name), ui.MutedStyle.Render("(no profile selected)"))
	} else {
		fmt.Fprintf(out, "Profile:  %s\n", ui.NameStyle.Render(name))
	}

	p, _ := m.GetProfile(name)
	fmt.Fprintf(out, "Type:     %s\n", ui.TypeStyle.Render(p.Type.String()))
	if p.Region != "" {
		fmt.Fprintf(out, "Region:   %s\n", p.Region)
	}
	fmt.Fprintf(out, "Profiles: %d of %d valid\n", m.ValidProfileCount(), len(m.ProfileNames()))
	fmt.Fprintln(out)

	if !p.IsValid {
		fmt.Fprintf(out, "Config:   %s\n", ui.InvalidStyle.Render(ui.InvalidMark+" Invalid"))
		fmt.Fprintf(out, "          %s\n", ui.MutedStyle.Render(p.ErrorMessage))
		return nil
	}

	if p.ErrorMessage != "" {
		fmt.Fprintf(out, "Config:   %s\n", ui.NoticeStyle.Render(ui.NoticeMark+" Not verified"))
		fmt.Fprintf(out, "          %s\n", ui.MutedStyle.Render(p.ErrorMessage))
	} else {
		fmt.Fprintf(out, "Config:   %s\n", ui.ValidStyle.Render(ui.ValidMark+" Valid"))
	}

	if statusCheck {
		displayIdentity(cmd, out, m, p)
	}

	return nil
}

func displayIdentity(cmd *cobra.Command, out io.Writer, m *aws.ProfileManager, p pkgtypes.AWSProfile) {
	fmt.Fprint(out, "Auth:     ")

	identity, err := checkIdentity(cmd, m, p)
	if err != nil {
		fmt.Fprintln(out, ui.InvalidStyle.Render(ui.InvalidMark+" Not authenticated"))
		fmt.Fprintf(out, "          %s\n", ui.MutedStyle.Render(err.Error()))
		if p.Type == pkgtypes.ProfileTypeSSO {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "To authenticate:")
			fmt.Fprintf(out, "  aws sso login --profile %s\n", p.Name)
		}
		return
	}

	fmt.Fprintln(out, ui.ValidStyle.Render(ui.ValidMark+" Authenticated"))
	fmt.Fprintf(out, "Account:  %s\n", identity.Account)
	fmt.Fprintf(out, "User:     %s\n", identity.UserID)
	if identity.Arn != "" {
		fmt.Fprintf(out, "ARN:      %s\n", ui.MutedStyle.Render(identity.Arn))
	}
}

func checkIdentity(cmd *cobra.Command, m *aws.ProfileManager, p pkgtypes.AWSProfile) (*aws.CallerIdentity, error) {
	ctx := cmd.Context()

	client, err := aws.NewSTSClient(ctx, m.Paths(), p.Name, p.Region)
	if err != nil {
		return nil, err
	}

	logger.Debugw("checking caller identity", "profile", p.Name)
	return aws.GetCallerIdentity(ctx, client, p)
}
