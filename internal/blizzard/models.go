package blizzard

import (
	"encoding/json"
	"fmt"
)

// LeaderboardData is one bracket's leaderboard for one season. The entries
// are decoded into typed values so they can be enriched in place; every other
// top-level key of the vendor payload (season link, bracket metadata, name
// and so on) is retained raw and written back out untouched.
type LeaderboardData struct {
	Entries []LeaderboardEntry

	meta map[string]json.RawMessage
}

// UnmarshalJSON decodes the vendor payload, splitting the entries sequence
// off from the surrounding metadata.
func (d *LeaderboardData) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["entries"]; ok {
		if err := json.Unmarshal(raw, &d.Entries); err != nil {
			return fmt.Errorf("decode entries: %w", err)
		}
		delete(fields, "entries")
	}

	d.meta = fields
	return nil
}

// MarshalJSON reassembles the vendor payload, re-serializing the (possibly
// enriched) entries next to the retained metadata.
func (d *LeaderboardData) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(d.meta)+1)
	for k, v := range d.meta {
		fields[k] = v
	}

	if d.Entries != nil {
		raw, err := json.Marshal(d.Entries)
		if err != nil {
			return nil, fmt.Errorf("encode entries: %w", err)
		}
		fields["entries"] = raw
	}

	return json.Marshal(fields)
}

// Meta returns the raw value of a retained top-level key, if present.
func (d *LeaderboardData) Meta(key string) (json.RawMessage, bool) {
	raw, ok := d.meta[key]
	return raw, ok
}

// LeaderboardEntry is a single ranked entry. Season 9+ leaderboards carry
// solo entries (Character set), season 8 and below carry team entries (Team
// set); the vendor never sets both. Rank, rating and statistics fields are
// retained raw alongside the decoded variant.
type LeaderboardEntry struct {
	Character *CharacterRef
	Team      *Team

	extra map[string]json.RawMessage
}

// IsTeam reports whether the entry is a team record.
func (e *LeaderboardEntry) IsTeam() bool {
	return e.Team != nil
}

// UnmarshalJSON decodes an entry, discriminating the solo/team variant by
// which key is present.
func (e *LeaderboardEntry) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["character"]; ok {
		e.Character = &CharacterRef{}
		if err := json.Unmarshal(raw, e.Character); err != nil {
			return fmt.Errorf("decode character: %w", err)
		}
		delete(fields, "character")
	}

	if raw, ok := fields["team"]; ok {
		e.Team = &Team{}
		if err := json.Unmarshal(raw, e.Team); err != nil {
			return fmt.Errorf("decode team: %w", err)
		}
		delete(fields, "team")
	}

	e.extra = fields
	return nil
}

// MarshalJSON re-emits the entry with the decoded variant merged back into
// the retained fields.
func (e *LeaderboardEntry) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(e.extra)+1)
	for k, v := range e.extra {
		fields[k] = v
	}

	if e.Character != nil {
		raw, err := json.Marshal(e.Character)
		if err != nil {
			return nil, fmt.Errorf("encode character: %w", err)
		}
		fields["character"] = raw
	}

	if e.Team != nil {
		raw, err := json.Marshal(e.Team)
		if err != nil {
			return nil, fmt.Errorf("encode team: %w", err)
		}
		fields["team"] = raw
	}

	return json.Marshal(fields)
}

// Team is the team variant of a leaderboard entry. Members are decoded for
// enrichment; team name, realm and the rest stay raw.
type Team struct {
	Members []TeamMember

	extra map[string]json.RawMessage
}

// UnmarshalJSON decodes a team record.
func (t *Team) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["members"]; ok {
		if err := json.Unmarshal(raw, &t.Members); err != nil {
			return fmt.Errorf("decode members: %w", err)
		}
		delete(fields, "members")
	}

	t.extra = fields
	return nil
}

// MarshalJSON re-emits a team record.
func (t *Team) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(t.extra)+1)
	for k, v := range t.extra {
		fields[k] = v
	}

	if t.Members != nil {
		raw, err := json.Marshal(t.Members)
		if err != nil {
			return nil, fmt.Errorf("encode members: %w", err)
		}
		fields["members"] = raw
	}

	return json.Marshal(fields)
}

// TeamMember is one roster slot of a team entry. Per-member statistics are
// retained raw.
type TeamMember struct {
	Character *CharacterRef

	extra map[string]json.RawMessage
}

// UnmarshalJSON decodes a team member.
func (m *TeamMember) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["character"]; ok {
		m.Character = &CharacterRef{}
		if err := json.Unmarshal(raw, m.Character); err != nil {
			return fmt.Errorf("decode character: %w", err)
		}
		delete(fields, "character")
	}

	m.extra = fields
	return nil
}

// MarshalJSON re-emits a team member.
func (m *TeamMember) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(m.extra)+1)
	for k, v := range m.extra {
		fields[k] = v
	}

	if m.Character != nil {
		raw, err := json.Marshal(m.Character)
		if err != nil {
			return nil, fmt.Errorf("encode character: %w", err)
		}
		fields["character"] = raw
	}

	return json.Marshal(fields)
}

// CharacterRef is the minimal character identity carried inside a
// leaderboard entry. PlayableClass and PlayableRace are absent in the vendor
// payload and are filled in by enrichment; the class/race objects are copied
// verbatim from the character profile, so they stay raw.
type CharacterRef struct {
	Name          string          `json:"name"`
	ID            int64           `json:"id,omitempty"`
	Realm         Realm           `json:"realm"`
	PlayableClass json.RawMessage `json:"playable_class,omitempty"`
	PlayableRace  json.RawMessage `json:"playable_race,omitempty"`
}

// Realm identifies the game server a character lives on. The slug is the
// canonical identifier used in profile URLs.
type Realm struct {
	Key  json.RawMessage `json:"key,omitempty"`
	ID   int64           `json:"id,omitempty"`
	Slug string          `json:"slug"`
}

// CharacterDetails is the slice of the character profile response the tool
// cares about. Immutable once fetched; cached for the lifetime of the run.
type CharacterDetails struct {
	CharacterClass json.RawMessage `json:"character_class,omitempty"`
	Race           json.RawMessage `json:"race,omitempty"`
}

// tokenResponse is the body of a successful client-credentials exchange.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}
