// Package runner drives the dump pipeline: it walks the requested seasons
// and brackets in order, fetching, optionally enriching and persisting each
// unit, and tallies what succeeded.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clweng/arenadump/internal/blizzard"
	"github.com/clweng/arenadump/internal/output"
)

// Pacing holds the configurable pause points between units of work. Zero
// values disable the corresponding pause.
type Pacing struct {
	// BetweenBrackets is slept after each bracket of a season except the
	// last.
	BetweenBrackets time.Duration

	// BetweenSeasons is slept after each season except the last.
	BetweenSeasons time.Duration

	// EnrichPauseEvery and EnrichPause pace character lookups during
	// enrichment; see blizzard.EnrichOptions.
	EnrichPauseEvery int
	EnrichPause      time.Duration
}

// Spec is one run request. Seasons and Brackets are processed in the order
// given.
type Spec struct {
	Seasons  []int
	Brackets []blizzard.Bracket
	Enrich   bool
}

// UnitResult records the outcome for one (season, bracket) pair that was
// actually attempted. Brackets unavailable for a season are skipped before
// a unit is created.
type UnitResult struct {
	Season  int
	Bracket blizzard.Bracket
	Path    string
	Entries int
	Err     error
}

// OK reports whether the unit produced an output file.
func (u *UnitResult) OK() bool {
	return u.Err == nil
}

// Summary aggregates a run.
type Summary struct {
	Succeeded int
	Attempted int
	Elapsed   time.Duration
	Units     []UnitResult
}

// Runner wires the API client and the persistence writer together.
type Runner struct {
	client *blizzard.Client
	writer *output.Writer
	pacing Pacing
}

// New creates a runner.
func New(client *blizzard.Client, writer *output.Writer, pacing Pacing) *Runner {
	return &Runner{
		client: client,
		writer: writer,
		pacing: pacing,
	}
}

// Run executes the pipeline for the whole spec. Authentication failure is
// fatal and aborts before any leaderboard work. Every other failure is
// fatal only to its own (season, bracket) unit: the run always attempts
// every remaining unit and reports a per-unit outcome plus the aggregate
// tally.
func (r *Runner) Run(ctx context.Context, spec Spec) (*Summary, error) {
	start := time.Now()

	if err := r.client.Authenticate(ctx); err != nil {
		return nil, fmt.Errorf("run aborted: %w", err)
	}

	summary := &Summary{}

	for si, season := range spec.Seasons {
		brackets := selectBrackets(season, spec.Brackets)
		if len(brackets) == 0 {
			slog.Warn("season has none of the requested brackets", "season", season)
			continue
		}

		slog.Info("processing season",
			"season", season,
			"brackets", len(brackets),
			"legacy_api", season < 9)

		for bi, bracket := range brackets {
			unit := r.runUnit(ctx, season, bracket, spec.Enrich)
			summary.Attempted++
			if unit.OK() {
				summary.Succeeded++
			} else {
				slog.Error("bracket failed",
					"season", season,
					"bracket", bracket,
					"error", unit.Err)
			}
			summary.Units = append(summary.Units, unit)

			if err := ctx.Err(); err != nil {
				summary.Elapsed = time.Since(start)
				return summary, err
			}

			if bi < len(brackets)-1 {
				if err := sleepCtx(ctx, r.pacing.BetweenBrackets); err != nil {
					summary.Elapsed = time.Since(start)
					return summary, err
				}
			}
		}

		if si < len(spec.Seasons)-1 {
			if err := sleepCtx(ctx, r.pacing.BetweenSeasons); err != nil {
				summary.Elapsed = time.Since(start)
				return summary, err
			}
		}
	}

	summary.Elapsed = time.Since(start)

	slog.Info("run complete",
		"succeeded", summary.Succeeded,
		"attempted", summary.Attempted,
		"elapsed", summary.Elapsed)

	return summary, nil
}

// runUnit performs fetch → enrich → persist for one (season, bracket) pair.
func (r *Runner) runUnit(ctx context.Context, season int, bracket blizzard.Bracket, enrich bool) UnitResult {
	unit := UnitResult{Season: season, Bracket: bracket}

	data, err := r.client.FetchLeaderboard(ctx, season, bracket)
	if err != nil {
		unit.Err = err
		return unit
	}
	unit.Entries = len(data.Entries)

	if enrich && len(data.Entries) > 0 {
		opts := &blizzard.EnrichOptions{
			PauseEvery: r.pacing.EnrichPauseEvery,
			Pause:      r.pacing.EnrichPause,
		}
		if _, err := r.client.EnrichEntries(ctx, data.Entries, opts); err != nil {
			unit.Err = err
			return unit
		}
	}

	path, err := r.writer.SaveLeaderboard(data, season, bracket)
	if err != nil {
		unit.Err = err
		return unit
	}
	unit.Path = path

	return unit
}

// selectBrackets intersects the requested brackets with what the season
// serves, preserving request order. Brackets outside the season's era are
// silently dropped: they count as neither success nor failure.
func selectBrackets(season int, requested []blizzard.Bracket) []blizzard.Bracket {
	selected := make([]blizzard.Bracket, 0, len(requested))
	for _, b := range requested {
		if blizzard.BracketAvailable(season, b) {
			selected = append(selected, b)
		} else {
			slog.Debug("bracket skipped", "season", season, "bracket", b)
		}
	}
	return selected
}

// sleepCtx sleeps for d unless the context ends first. A non-positive d is
// a no-op.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
