// Package config exposes the config command group and the settings schema
// shared by the rest of the CLI.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Viper keys for every setting.
const (
	KeyRegion           = "region"
	KeyClientID         = "client_id"
	KeyClientSecret     = "client_secret"
	KeyOutputDir        = "output_dir"
	KeyEnrich           = "enrich"
	KeyBracketPause     = "pacing.bracket_pause"
	KeySeasonPause      = "pacing.season_pause"
	KeyEnrichPauseEvery = "pacing.enrich_pause_every"
	KeyEnrichPause      = "pacing.enrich_pause"
)

// SetDefaults registers the default value for every setting. Called once
// during CLI initialization, before the config file is read.
func SetDefaults() {
	viper.SetDefault(KeyRegion, "tw")
	viper.SetDefault(KeyOutputDir, "./data")
	viper.SetDefault(KeyEnrich, false)
	viper.SetDefault(KeyBracketPause, 3*time.Second)
	viper.SetDefault(KeySeasonPause, 5*time.Second)
	viper.SetDefault(KeyEnrichPauseEvery, 10)
	viper.SetDefault(KeyEnrichPause, 2*time.Second)
}

// NewCommand creates the config command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long: `View the effective arenadump configuration.

Settings come from (in order of precedence) flags, ARENADUMP_* environment
variables, a .env file, and ~/.config/arenadump/config.yaml.`,
		Example: `  # View effective configuration
  arenadump config show

  # Show the config file in use
  arenadump config path`,
		Aliases: []string{"cfg"},
	}

	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newPathCommand())

	return cmd
}

// newShowCommand creates the config show subcommand
func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The client secret is redacted; everything else prints as
			// YAML.
			settings := map[string]any{
				KeyRegion:    viper.GetString(KeyRegion),
				KeyClientID:  viper.GetString(KeyClientID),
				KeyOutputDir: viper.GetString(KeyOutputDir),
				KeyEnrich:    viper.GetBool(KeyEnrich),
				"pacing": map[string]any{
					"bracket_pause":      viper.GetDuration(KeyBracketPause).String(),
					"season_pause":       viper.GetDuration(KeySeasonPause).String(),
					"enrich_pause_every": viper.GetInt(KeyEnrichPauseEvery),
					"enrich_pause":       viper.GetDuration(KeyEnrichPause).String(),
				},
			}
			if viper.GetString(KeyClientSecret) != "" {
				settings[KeyClientSecret] = "<redacted>"
			}

			out, err := yaml.Marshal(settings)
			if err != nil {
				return fmt.Errorf("encode configuration: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// newPathCommand creates the config path subcommand
func newPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := viper.ConfigFileUsed()
			if path == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no config file in use")
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}
