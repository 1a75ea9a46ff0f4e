package blizzard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// characterPath returns the profile API path for a character. The name
// segment is the ASCII-lowercased, percent-encoded form that also keys the
// cache.
func characterPath(realmSlug, name string) string {
	return fmt.Sprintf("/profile/wow/character/%s/%s", realmSlug, encodeCharacterName(name))
}

// FetchCharacter retrieves a character's class and race from the profile
// endpoint. Results are cached by (realm slug, encoded name); a cache hit
// issues no network call. Only successful lookups are cached, so a flaky
// profile is retried on its next occurrence.
func (c *Client) FetchCharacter(ctx context.Context, realmSlug, name string) (*CharacterDetails, error) {
	key := CacheKey(realmSlug, name)

	if c.cache != nil {
		if details, ok := c.cache.Get(key); ok {
			slog.Debug("character cache hit", "realm", realmSlug, "name", name)
			return details, nil
		}
	}

	resp, err := c.apiGet(ctx, characterPath(realmSlug, name), c.profileNamespace())
	if err != nil {
		return nil, fmt.Errorf("fetch character %s/%s: %w", realmSlug, name, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch character %s/%s: %w", realmSlug, name, NewAPIError(resp.StatusCode, string(body)))
	}

	var details CharacterDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("fetch character %s/%s: decode response: %w", realmSlug, name, err)
	}

	if c.cache != nil {
		c.cache.Set(key, &details)
	}

	return &details, nil
}

// EnrichCharacter merges class and race from the character profile into a
// leaderboard character ref, in place. On any lookup failure the ref is left
// untouched and the error is returned for reporting; enrichment failures
// are never fatal to a run.
func (c *Client) EnrichCharacter(ctx context.Context, ref *CharacterRef) error {
	if ref == nil || ref.Name == "" {
		return nil
	}

	details, err := c.FetchCharacter(ctx, ref.Realm.Slug, ref.Name)
	if err != nil {
		return err
	}

	if details.CharacterClass != nil {
		ref.PlayableClass = details.CharacterClass
	}
	if details.Race != nil {
		ref.PlayableRace = details.Race
	}

	return nil
}
