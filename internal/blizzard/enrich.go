package blizzard

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const (
	// DefaultEnrichPauseEvery is how many entries are processed between
	// pacing pauses during enrichment.
	DefaultEnrichPauseEvery = 10

	// DefaultEnrichPause is the length of each pacing pause.
	DefaultEnrichPause = 2 * time.Second
)

// EnrichOptions controls pacing during enrichment. The zero value pauses
// for DefaultEnrichPause after every DefaultEnrichPauseEvery entries; set
// PauseEvery to a negative value to disable pausing entirely.
type EnrichOptions struct {
	PauseEvery int
	Pause      time.Duration
}

func (o *EnrichOptions) pauseEvery() int {
	if o == nil || o.PauseEvery == 0 {
		return DefaultEnrichPauseEvery
	}
	return o.PauseEvery
}

func (o *EnrichOptions) pause() time.Duration {
	if o == nil || o.Pause == 0 {
		return DefaultEnrichPause
	}
	return o.Pause
}

// EnrichStats summarizes one enrichment pass.
type EnrichStats struct {
	// Characters is the number of character refs visited.
	Characters int

	// Enriched is the number of refs that gained class/race data.
	Enriched int

	// Failed is the number of refs whose profile lookup failed. Those
	// entries are kept, just without class/race.
	Failed int
}

// EnrichEntries walks the entries of a leaderboard in order and merges class
// and race into every character ref it finds, solo or team-nested. Entry
// order and non-character content are never altered. Individual lookup
// failures are logged and counted, not propagated; the only error returned
// is context cancellation.
func (c *Client) EnrichEntries(ctx context.Context, entries []LeaderboardEntry, opts *EnrichOptions) (EnrichStats, error) {
	var stats EnrichStats

	total := len(entries)
	slog.Info("enriching leaderboard entries", "entries", total)

	for i := range entries {
		entry := &entries[i]

		switch {
		case entry.Character != nil:
			if err := c.enrichOne(ctx, entry.Character, &stats); err != nil {
				return stats, err
			}

		case entry.Team != nil:
			for j := range entry.Team.Members {
				if err := c.enrichOne(ctx, entry.Team.Members[j].Character, &stats); err != nil {
					return stats, err
				}
			}
		}

		if n := opts.pauseEvery(); n > 0 && (i+1)%n == 0 && i+1 < total {
			slog.Debug("pacing pause", "processed", i+1, "total", total, "pause", opts.pause())
			select {
			case <-time.After(opts.pause()):
			case <-ctx.Done():
				return stats, ctx.Err()
			}
		}
	}

	slog.Info("enrichment complete",
		"characters", stats.Characters,
		"enriched", stats.Enriched,
		"failed", stats.Failed)

	return stats, nil
}

// enrichOne enriches a single ref and folds the outcome into stats. Context
// cancellation is the only error that propagates.
func (c *Client) enrichOne(ctx context.Context, ref *CharacterRef, stats *EnrichStats) error {
	if ref == nil {
		return nil
	}

	stats.Characters++

	if err := c.EnrichCharacter(ctx, ref); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		stats.Failed++
		slog.Warn("character enrichment failed",
			"realm", ref.Realm.Slug,
			"name", ref.Name,
			"error", err)
		return nil
	}

	stats.Enriched++
	return nil
}
