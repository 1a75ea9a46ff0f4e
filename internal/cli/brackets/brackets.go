// Package brackets implements the brackets command: a season-era bracket
// availability lookup.
package brackets

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clweng/arenadump/internal/blizzard"
)

// NewCommand creates the brackets command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brackets <season>",
		Short: "List the brackets a season serves",
		Long: `List the leaderboard brackets the API serves for a season.

Seasons before 9 predate rated battlegrounds, so rbg only appears from
season 9 onward.`,
		Example: `  # Arena-only era
  arenadump brackets 7

  # Season with rated battlegrounds
  arenadump brackets 10`,
		Args: requireSeason,
		RunE: func(cmd *cobra.Command, args []string) error {
			season, err := strconv.Atoi(args[0])
			if err != nil || season < 1 {
				return fmt.Errorf("season must be a positive number, got %q", args[0])
			}
			return printBrackets(cmd.OutOrStdout(), season)
		},
	}

	return cmd
}

// requireSeason validates that exactly one season argument is provided
func requireSeason(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("a single season number is required\nUsage: %s", cmd.UseLine())
	}
	return nil
}

// printBrackets prints the available brackets in the appropriate format
func printBrackets(w io.Writer, season int) error {
	available := blizzard.AvailableBrackets(season)

	if isJSONMode() {
		names := make([]string, 0, len(available))
		for _, b := range available {
			names = append(names, string(b))
		}

		out := struct {
			Status string         `json:"status"`
			Data   map[string]any `json:"data"`
		}{
			Status: "success",
			Data: map[string]any{
				"season":   season,
				"brackets": names,
			},
		}
		return json.NewEncoder(w).Encode(out)
	}

	_, _ = fmt.Fprintf(w, "Season %d brackets:\n", season)
	for _, b := range available {
		_, _ = fmt.Fprintf(w, "  %s\n", b)
	}
	if season < 9 {
		_, _ = fmt.Fprintf(w, "\nrbg is unavailable before season 9.\n")
	}

	return nil
}

// isJSONMode checks if JSON output mode is enabled via the root --json flag.
func isJSONMode() bool {
	return viper.GetBool("json") || os.Getenv("ARENADUMP_JSON") == "true"
}
