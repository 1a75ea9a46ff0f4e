package blizzard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// leaderboardPath returns the API path for one (season, bracket) pair.
// Season 9 introduced the season-scoped URL shape; older seasons are only
// reachable through the legacy region-scoped shape. The legacy region index
// is fixed at 0, which is all the vendor has ever exposed for classic
// regions.
func leaderboardPath(season int, bracket Bracket) string {
	if season >= firstRBGSeason {
		return fmt.Sprintf("/data/wow/pvp-season/%d/pvp-leaderboard/%s", season, bracket)
	}
	return fmt.Sprintf("/data/wow/pvp-region/0/pvp-season/%d/pvp-leaderboard/%s", season, bracket)
}

// FetchLeaderboard retrieves one bracket's leaderboard for a season.
//
// Preconditions: Authenticate has succeeded and the bracket is available for
// the season. Outcomes are classified per the failure taxonomy: non-200
// responses, empty bodies, vendor-reported errors inside a 200 body, decode
// failures, timeouts and connection failures each surface as distinct
// errors. A leaderboard with zero entries is a success.
func (c *Client) FetchLeaderboard(ctx context.Context, season int, bracket Bracket) (*LeaderboardData, error) {
	if !BracketAvailable(season, bracket) {
		return nil, fmt.Errorf("%w: season %d has no %s leaderboard", ErrBracketUnavailable, season, bracket)
	}

	resp, err := c.apiGet(ctx, leaderboardPath(season, bracket), c.dynamicNamespace())
	if err != nil {
		return nil, fmt.Errorf("fetch season %d %s leaderboard: %w", season, bracket, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch season %d %s leaderboard: read body: %w", season, bracket, classifyTransport(err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch season %d %s leaderboard: %w", season, bracket, NewAPIError(resp.StatusCode, string(body)))
	}

	if strings.TrimSpace(string(body)) == "" {
		return nil, fmt.Errorf("fetch season %d %s leaderboard: %w", season, bracket, ErrEmptyResponse)
	}

	var data LeaderboardData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("fetch season %d %s leaderboard: decode response: %w", season, bracket, err)
	}

	if raw, ok := data.Meta("error"); ok {
		return nil, fmt.Errorf("fetch season %d %s leaderboard: %w", season, bracket, parseVendorError(raw))
	}

	slog.Info("leaderboard fetched",
		"season", season,
		"bracket", bracket,
		"entries", len(data.Entries))

	return &data, nil
}

// parseVendorError extracts a message from an error payload delivered with
// HTTP 200. The vendor is not consistent about the shape: it may be an
// object with a message field or a bare string.
func parseVendorError(raw json.RawMessage) *VendorError {
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return &VendorError{Message: obj.Message}
	}

	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil && msg != "" {
		return &VendorError{Message: msg}
	}

	return &VendorError{Message: "unknown error"}
}
