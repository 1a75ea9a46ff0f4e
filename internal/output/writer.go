// Package output persists fetched leaderboards as per-season, per-bracket
// JSON files under a fixed naming convention.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/clweng/arenadump/internal/blizzard"
)

// DefaultDir is the default output directory.
const DefaultDir = "./data"

// filePerm is the mode for written dump files.
const filePerm = os.FileMode(0644)

// Writer serializes leaderboards to a directory. Re-running a dump for the
// same (season, bracket) overwrites the prior file; there is no versioning.
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir. An empty dir selects DefaultDir.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = DefaultDir
	}
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Path returns the deterministic output path for a (season, bracket) pair.
func (w *Writer) Path(season int, bracket blizzard.Bracket) string {
	return filepath.Join(w.dir, fmt.Sprintf("season_%d_%s_tw_arena.json", season, bracket))
}

// SaveLeaderboard writes one bracket's dataset to its deterministic path as
// indented UTF-8 JSON with non-ASCII characters left unescaped. The output
// directory is created if missing. Returns the written path.
func (w *Writer) SaveLeaderboard(data *blizzard.LeaderboardData, season int, bracket blizzard.Bracket) (string, error) {
	if err := os.MkdirAll(w.dir, 0750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return "", fmt.Errorf("encode leaderboard: %w", err)
	}

	path := w.Path(season, bracket)
	if err := atomicWrite(path, buf.Bytes(), filePerm); err != nil {
		return "", fmt.Errorf("save leaderboard: %w", err)
	}

	slog.Info("leaderboard saved",
		"season", season,
		"bracket", bracket,
		"path", path,
		"entries", len(data.Entries))

	return path, nil
}
