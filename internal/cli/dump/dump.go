// Package dump implements the dump command: the season × bracket ingestion
// pipeline behind a cobra command.
package dump

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clweng/arenadump/internal/blizzard"
	"github.com/clweng/arenadump/internal/cli/config"
	"github.com/clweng/arenadump/internal/output"
	"github.com/clweng/arenadump/internal/runner"
	"github.com/clweng/arenadump/internal/tui"
)

// Flags holds all flags for the dump command
type Flags struct {
	Seasons      string
	Brackets     []string
	Enrich       bool
	Output       string
	Region       string
	ClientID     string
	ClientSecret string
	Interactive  bool
	DryRun       bool
}

// Output is the JSON-mode result envelope.
type Output struct {
	Status  string         `json:"status"`
	Data    map[string]any `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// NewCommand creates the dump command
func NewCommand() *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Fetch leaderboards and write them to JSON files",
		Long: `Fetch PvP leaderboards for the selected seasons and brackets and write
one JSON file per (season, bracket) pair to the output directory.

Brackets a season does not serve (rbg before season 9) are skipped
silently. A failed bracket never stops the run; the remaining seasons and
brackets are still attempted and the final tally reports what succeeded.

With --enrich, every ranked character is looked up on the character
profile endpoint and its class and race are merged into the entry. This
multiplies request volume by the number of distinct characters, so it is
off by default and paced with configurable pauses.`,
		Example: `  # Season 10, two brackets
  arenadump dump --seasons 10 --brackets 2v2,3v3

  # Seasons 5 through 11, all brackets, enriched
  arenadump dump --seasons 5-11 --enrich

  # Preview the plan without network calls
  arenadump dump --seasons 5-11 --dry-run

  # Pick everything interactively
  arenadump dump --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfig(cmd, flags)
			return runDump(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.Seasons, "seasons", "", "seasons to dump: numbers and ranges, e.g. 10 or 5-11,13")
	cmd.Flags().StringSliceVar(&flags.Brackets, "brackets", nil, "brackets to dump (default: all of 2v2,3v3,5v5,rbg)")
	cmd.Flags().BoolVar(&flags.Enrich, "enrich", false, "look up class/race for every ranked character")
	cmd.Flags().StringVar(&flags.Output, "output", "", "output directory (default: ./data)")
	cmd.Flags().StringVar(&flags.Region, "region", "", "API region (default: tw)")
	cmd.Flags().StringVar(&flags.ClientID, "client-id", "", "API client ID (default: ARENADUMP_CLIENT_ID)")
	cmd.Flags().StringVar(&flags.ClientSecret, "client-secret", "", "API client secret (default: ARENADUMP_CLIENT_SECRET)")
	cmd.Flags().BoolVarP(&flags.Interactive, "interactive", "i", false, "pick seasons and brackets interactively")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "show the plan without fetching anything")

	return cmd
}

// applyConfig fills unset flags from viper-backed configuration.
func applyConfig(cmd *cobra.Command, flags *Flags) {
	if flags.Region == "" {
		flags.Region = viper.GetString(config.KeyRegion)
	}
	if flags.ClientID == "" {
		flags.ClientID = viper.GetString(config.KeyClientID)
	}
	if flags.ClientSecret == "" {
		flags.ClientSecret = viper.GetString(config.KeyClientSecret)
	}
	if flags.Output == "" {
		flags.Output = viper.GetString(config.KeyOutputDir)
	}
	if !cmd.Flags().Changed("enrich") {
		flags.Enrich = viper.GetBool(config.KeyEnrich)
	}
}

// runDump executes the dump command
func runDump(ctx context.Context, stdout io.Writer, flags *Flags) error {
	jsonMode := isJSONMode()

	if flags.Interactive {
		selection, err := tui.Run(func(s string) error {
			_, err := ParseSeasons(s)
			return err
		})
		if err != nil {
			return outputError(stdout, jsonMode, fmt.Errorf("interactive selection: %w", err))
		}
		if !selection.Accepted {
			return outputError(stdout, jsonMode, fmt.Errorf("selection cancelled"))
		}
		flags.Seasons = selection.Seasons
		flags.Brackets = nil
		for _, b := range selection.Brackets {
			flags.Brackets = append(flags.Brackets, string(b))
		}
		flags.Enrich = selection.Enrich
	}

	seasons, err := ParseSeasons(flags.Seasons)
	if err != nil {
		return outputError(stdout, jsonMode, err)
	}

	brackets, err := ParseBrackets(flags.Brackets)
	if err != nil {
		return outputError(stdout, jsonMode, err)
	}

	if flags.DryRun {
		return showDryRun(stdout, jsonMode, seasons, brackets, flags)
	}

	if flags.ClientID == "" || flags.ClientSecret == "" {
		return outputError(stdout, jsonMode, fmt.Errorf("missing API credentials: set ARENADUMP_CLIENT_ID and ARENADUMP_CLIENT_SECRET"))
	}

	client := blizzard.NewClient(&blizzard.Config{
		Region:       flags.Region,
		ClientID:     flags.ClientID,
		ClientSecret: flags.ClientSecret,
	})

	pacing := runner.Pacing{
		BetweenBrackets:  viper.GetDuration(config.KeyBracketPause),
		BetweenSeasons:   viper.GetDuration(config.KeySeasonPause),
		EnrichPauseEvery: viper.GetInt(config.KeyEnrichPauseEvery),
		EnrichPause:      viper.GetDuration(config.KeyEnrichPause),
	}

	run := runner.New(client, output.NewWriter(flags.Output), pacing)

	summary, err := run.Run(ctx, runner.Spec{
		Seasons:  seasons,
		Brackets: brackets,
		Enrich:   flags.Enrich,
	})
	if err != nil {
		return outputError(stdout, jsonMode, err)
	}

	return outputSummary(stdout, jsonMode, flags, summary)
}

// showDryRun prints the units that would be fetched, after availability
// filtering, without any network calls.
func showDryRun(stdout io.Writer, jsonMode bool, seasons []int, brackets []blizzard.Bracket, flags *Flags) error {
	type unit struct {
		Season  int    `json:"season"`
		Bracket string `json:"bracket"`
	}

	var units []unit
	for _, season := range seasons {
		for _, b := range brackets {
			if blizzard.BracketAvailable(season, b) {
				units = append(units, unit{Season: season, Bracket: string(b)})
			}
		}
	}

	if jsonMode {
		out := Output{
			Status: "dry-run",
			Data: map[string]any{
				"units":  units,
				"enrich": flags.Enrich,
				"output": flags.Output,
			},
			Message: "Dry run - nothing fetched",
		}
		return json.NewEncoder(stdout).Encode(out)
	}

	_, _ = fmt.Fprintf(stdout, "Dry run - %d file(s) would be written to %s:\n\n", len(units), flags.Output)
	for _, u := range units {
		_, _ = fmt.Fprintf(stdout, "  season %-3d %s\n", u.Season, u.Bracket)
	}
	if flags.Enrich {
		_, _ = fmt.Fprintf(stdout, "\nCharacter enrichment is on.\n")
	}
	_, _ = fmt.Fprintf(stdout, "\nNothing fetched. Remove --dry-run to start the dump.\n")

	return nil
}

// outputSummary prints the final tally.
func outputSummary(stdout io.Writer, jsonMode bool, flags *Flags, summary *runner.Summary) error {
	if jsonMode {
		var files []string
		var failures []map[string]any
		for _, u := range summary.Units {
			if u.OK() {
				files = append(files, u.Path)
			} else {
				failures = append(failures, map[string]any{
					"season":  u.Season,
					"bracket": string(u.Bracket),
					"error":   u.Err.Error(),
				})
			}
		}

		out := Output{
			Status: "success",
			Data: map[string]any{
				"succeeded":       summary.Succeeded,
				"attempted":       summary.Attempted,
				"elapsed_seconds": summary.Elapsed.Seconds(),
				"files":           files,
				"failures":        failures,
			},
		}
		return json.NewEncoder(stdout).Encode(out)
	}

	_, _ = fmt.Fprintf(stdout, "\nDump complete: %d/%d file(s) written to %s\n",
		summary.Succeeded, summary.Attempted, flags.Output)

	for _, u := range summary.Units {
		if u.OK() {
			_, _ = fmt.Fprintf(stdout, "  ✓ season %-3d %-4s %5d entries  %s\n", u.Season, u.Bracket, u.Entries, u.Path)
		} else {
			_, _ = fmt.Fprintf(stdout, "  ✗ season %-3d %-4s %v\n", u.Season, u.Bracket, u.Err)
		}
	}

	if flags.Enrich {
		_, _ = fmt.Fprintf(stdout, "\nEntries include character class and race.\n")
	}
	_, _ = fmt.Fprintf(stdout, "Total time: %s\n", units.HumanDuration(summary.Elapsed))

	return nil
}

// outputError outputs an error message
func outputError(stdout io.Writer, jsonMode bool, err error) error {
	if jsonMode {
		out := Output{
			Status: "error",
			Error:  err.Error(),
		}
		_ = json.NewEncoder(stdout).Encode(out)
	}
	return err
}

// isJSONMode checks if JSON output mode is enabled via the root --json flag
// (mirrored into viper) or the environment.
func isJSONMode() bool {
	return viper.GetBool("json") || os.Getenv("ARENADUMP_JSON") == "true"
}
