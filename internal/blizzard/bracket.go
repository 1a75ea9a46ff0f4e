package blizzard

import "fmt"

// Bracket is a PvP format bucket.
type Bracket string

// Known brackets. Rated battlegrounds only exist from season 9 onward.
const (
	Bracket2v2 Bracket = "2v2"
	Bracket3v3 Bracket = "3v3"
	Bracket5v5 Bracket = "5v5"
	BracketRBG Bracket = "rbg"
)

// firstRBGSeason is the season that introduced rated battlegrounds and the
// season-scoped leaderboard API shape.
const firstRBGSeason = 9

// AllBrackets returns every bracket the vendor has ever exposed, in fetch
// order.
func AllBrackets() []Bracket {
	return []Bracket{Bracket2v2, Bracket3v3, Bracket5v5, BracketRBG}
}

// ParseBracket validates a bracket name.
func ParseBracket(s string) (Bracket, error) {
	switch Bracket(s) {
	case Bracket2v2, Bracket3v3, Bracket5v5, BracketRBG:
		return Bracket(s), nil
	}
	return "", fmt.Errorf("unknown bracket %q (valid: 2v2, 3v3, 5v5, rbg)", s)
}

// AvailableBrackets returns the brackets the vendor serves for the given
// season. Seasons before 9 have no rated battleground leaderboard.
func AvailableBrackets(season int) []Bracket {
	if season < firstRBGSeason {
		return []Bracket{Bracket2v2, Bracket3v3, Bracket5v5}
	}
	return AllBrackets()
}

// BracketAvailable reports whether the bracket exists for the season.
func BracketAvailable(season int, bracket Bracket) bool {
	for _, b := range AvailableBrackets(season) {
		if b == bracket {
			return true
		}
	}
	return false
}
