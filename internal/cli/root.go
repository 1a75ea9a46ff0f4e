package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clweng/arenadump/internal/cli/brackets"
	"github.com/clweng/arenadump/internal/cli/config"
	"github.com/clweng/arenadump/internal/cli/dump"
)

var (
	// Global flags
	cfgFile string
	jsonOut bool
	quiet   bool
	verbose bool

	// Global logger
	logger *slog.Logger
)

// NewRootCommand creates and returns the root cobra command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "arenadump",
		Short: "Dump WoW Classic TW PvP leaderboards to JSON",
		Long: `arenadump pulls WoW Classic PvP leaderboard standings for the TW region
from the Blizzard community API and writes one JSON file per season and
bracket.

It handles both API eras: season 9 and later use the season-scoped
leaderboard endpoints (and add the rbg bracket), older seasons go through
the legacy region-scoped endpoints. Each ranked character can optionally
be enriched with its class and race from the character profile endpoint;
repeated characters are looked up only once per run.

API credentials come from the ARENADUMP_CLIENT_ID / ARENADUMP_CLIENT_SECRET
environment variables, a .env file, the config file, or flags.`,
		Example: `  # Dump season 10 2v2 and 3v3
  arenadump dump --seasons 10 --brackets 2v2,3v3

  # Dump seasons 5 through 11, every bracket, with class/race enrichment
  arenadump dump --seasons 5-11 --enrich

  # Pick seasons and brackets interactively
  arenadump dump --interactive

  # Show which brackets exist for a season
  arenadump brackets 7`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize logger based on flags
			if err := initLogger(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			// Initialize config
			if err := initConfig(); err != nil {
				logger.Error("failed to initialize config", "error", err)
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			return nil
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/arenadump/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")

	rootCmd.MarkFlagsMutuallyExclusive("json", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(dump.NewCommand())
	rootCmd.AddCommand(brackets.NewCommand())
	rootCmd.AddCommand(config.NewCommand())

	return rootCmd
}

// initLogger initializes the global logger based on flags
func initLogger(out io.Writer) error {
	var level slog.Level
	var handler slog.Handler

	// Determine log level
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if jsonOut {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)

	return nil
}

// initConfig reads in the .env file, config file and ENV variables if set
func initConfig() error {
	// Credentials commonly live in a .env next to the working directory;
	// a missing file is fine.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Debug("no .env file loaded", "error", err)
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("get user home directory: %w", err)
		}

		// Search config in ~/.config/arenadump directory
		configDir := filepath.Join(home, ".config", "arenadump")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	config.SetDefaults()

	// Read in environment variables that match
	viper.SetEnvPrefix("ARENADUMP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Mirror the global output-mode flag so subcommand packages can read it.
	viper.Set("json", jsonOut)

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config file: %w", err)
		}
	} else {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	}

	return nil
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	return logger
}

// IsJSONOutput returns true if JSON output is enabled
func IsJSONOutput() bool {
	return jsonOut
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quiet
}

// IsVerbose returns true if verbose mode is enabled
func IsVerbose() bool {
	return verbose
}
