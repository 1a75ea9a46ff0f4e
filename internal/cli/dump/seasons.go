package dump

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clweng/arenadump/internal/blizzard"
)

// ParseSeasons parses a season selection string: comma-separated season
// numbers and inclusive ranges, e.g. "10" or "5-11,13". Seasons must be
// positive; duplicates are dropped, first occurrence wins, order is
// preserved.
func ParseSeasons(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("no seasons given")
	}

	seen := make(map[int]bool)
	var seasons []int

	add := func(n int) error {
		if n < 1 {
			return fmt.Errorf("season must be positive, got %d", n)
		}
		if !seen[n] {
			seen[n] = true
			seasons = append(seasons, n)
		}
		return nil
	}

	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if lo, hi, ok := strings.Cut(token, "-"); ok {
			from, err := strconv.Atoi(strings.TrimSpace(lo))
			if err != nil {
				return nil, fmt.Errorf("invalid season range %q", token)
			}
			to, err := strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("invalid season range %q", token)
			}
			if to < from {
				return nil, fmt.Errorf("invalid season range %q: end before start", token)
			}
			for n := from; n <= to; n++ {
				if err := add(n); err != nil {
					return nil, err
				}
			}
			continue
		}

		n, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("invalid season %q", token)
		}
		if err := add(n); err != nil {
			return nil, err
		}
	}

	if len(seasons) == 0 {
		return nil, fmt.Errorf("no seasons given")
	}

	return seasons, nil
}

// ParseBrackets parses a bracket selection. An empty selection means every
// bracket. Duplicates are dropped, order is preserved.
func ParseBrackets(names []string) ([]blizzard.Bracket, error) {
	if len(names) == 0 {
		return blizzard.AllBrackets(), nil
	}

	seen := make(map[blizzard.Bracket]bool)
	var brackets []blizzard.Bracket

	for _, name := range names {
		b, err := blizzard.ParseBracket(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		if !seen[b] {
			seen[b] = true
			brackets = append(brackets, b)
		}
	}

	return brackets, nil
}
