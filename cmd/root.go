package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vietdv277/awsprof/internal/aws"
	"github.com/vietdv277/awsprof/internal/config"
	"github.com/vietdv277/awsprof/internal/logging"
)

var (
	// Global flags
	profile         string
	configFile      string
	credentialsFile string
	verbose         bool

	logger = zap.NewNop().Sugar()
)

var rootCmd = &cobra.Command{
	Use:   "awsprof",
	Short: "Inspect, classify and validate AWS CLI profiles",
	Long: `awsprof reads ~/.aws/config and ~/.aws/credentials, works out how every profile
obtains credentials and checks that it is configured well enough to work.

Examples:
  awsprof profile                # Interactive profile selector
  awsprof profile ls             # List profiles with their type and status
  awsprof profile validate       # Exit non-zero if any profile is invalid
  awsprof profile show prod      # Show every field of a profile
  awsprof status --check         # Verify the active profile against STS`,
	SilenceUsage: true,
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "AWS profile to treat as active")
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "path to the shared AWS config file")
	rootCmd.PersistentFlags().StringVar(&credentialsFile, "credentials-file", "", "path to the shared AWS credentials file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log load and validation details")

	// Bind flags to viper
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("config-file", rootCmd.PersistentFlags().Lookup("config-file"))
	_ = viper.BindPFlag("credentials-file", rootCmd.PersistentFlags().Lookup("credentials-file"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	// The AWS CLI's own variables take part in resolution
	_ = viper.BindEnv("profile", "AWS_PROFILE")
	_ = viper.BindEnv("config-file", "AWS_CONFIG_FILE")
	_ = viper.BindEnv("credentials-file", "AWS_SHARED_CREDENTIALS_FILE")
	_ = viper.BindEnv("verbose", "AWSPROF_VERBOSE")

	logger = logging.New(os.Stderr, viper.GetBool("verbose"))
}

// loadSettings reads the saved settings, falling back to an empty config on error
func loadSettings() *config.Config {
	settings, err := config.LoadConfig()
	if err != nil {
		logger.Warnw("ignoring unreadable settings file", "path", config.GetConfigPath(), "error", err)
		return &config.Config{}
	}
	return settings
}

// resolvePaths locates the shared files.
// Priority: flag > AWS_CONFIG_FILE / AWS_SHARED_CREDENTIALS_FILE > settings file > SDK default
func resolvePaths(settings *config.Config) aws.Paths {
	configPath := viper.GetString("config-file")
	if configPath == "" {
		configPath = settings.ConfigFile
	}

	credentialsPath := viper.GetString("credentials-file")
	if credentialsPath == "" {
		credentialsPath = settings.CredentialsFile
	}

	return aws.ResolvePaths(configPath, credentialsPath)
}

// getActiveProfile returns the profile the user is working with.
// Priority: --profile flag > AWS_PROFILE env > settings file
func getActiveProfile(settings *config.Config) string {
	if p := viper.GetString("profile"); p != "" {
		return p
	}
	return settings.Profile
}

// newProfileManager loads and validates every profile and selects the active one.
// A file that cannot be read is reported on stderr; whatever loaded is still returned.
func newProfileManager(cmd *cobra.Command) *aws.ProfileManager {
	settings := loadSettings()
	paths := resolvePaths(settings)

	m, err := aws.NewProfileManager(paths, aws.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	if active := getActiveProfile(settings); active != "" {
		if err := m.SetCurrentProfile(active); err != nil {
			logger.Warnw("active profile is not configured", "profile", active)
		}
	}

	return m
}
