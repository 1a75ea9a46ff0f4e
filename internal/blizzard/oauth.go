package blizzard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// Authenticate performs the two-legged client-credentials exchange and
// stores the bearer token for the rest of the run.
//
// There is no refresh: the token is assumed to stay valid for the full run,
// and an expiry mid-run surfaces as API failures on later calls. Only a 200
// response carrying an access_token counts as success; every other outcome
// wraps ErrAuthFailed.
func (c *Client) Authenticate(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	tokenURL := c.oauthBaseURL + "/oauth/token"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrAuthFailed, err)
	}

	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	slog.Debug("requesting access token", "url", tokenURL, "region", c.region)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthFailed, classifyTransport(err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrAuthFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %v", ErrAuthFailed, NewAPIError(resp.StatusCode, string(body)))
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrAuthFailed, err)
	}

	if token.AccessToken == "" {
		return fmt.Errorf("%w: response carries no access_token", ErrAuthFailed)
	}

	c.token = token.AccessToken

	slog.Info("access token acquired", "region", c.region)
	return nil
}
