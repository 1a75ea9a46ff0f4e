package blizzard

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultRegion is the region this tool was built for.
	DefaultRegion = "tw"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	// UserAgent is the user agent string sent with API requests.
	UserAgent = "arenadump/dev (https://github.com/clweng/arenadump)"

	// Locale is the locale requested on every data and profile call.
	Locale = "en_TW"

	// DefaultRateLimit is the per-second request budget. Blizzard allows
	// 100 requests per second per client.
	DefaultRateLimit = 100
)

// Client talks to the Blizzard OAuth and community API endpoints for one
// region. It holds the bearer token for the run, the character cache and a
// request rate limiter.
type Client struct {
	oauthBaseURL string
	apiBaseURL   string
	region       string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	userAgent    string
	rateLimiter  *RateLimiter
	cache        *CharacterCache

	token string
}

// Config holds client configuration.
type Config struct {
	Region       string
	ClientID     string
	ClientSecret string

	// OAuthBaseURL and APIBaseURL override the regional defaults. Mainly
	// for tests.
	OAuthBaseURL string
	APIBaseURL   string

	Timeout      time.Duration
	UserAgent    string
	RateLimit    int
	DisableCache bool
}

// NewClient creates a new Blizzard API client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = &Config{}
	}

	region := config.Region
	if region == "" {
		region = DefaultRegion
	}

	oauthBaseURL := config.OAuthBaseURL
	if oauthBaseURL == "" {
		oauthBaseURL = fmt.Sprintf("https://%s.battle.net", region)
	}

	apiBaseURL := config.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = fmt.Sprintf("https://%s.api.blizzard.com", region)
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = UserAgent
	}

	rateLimit := config.RateLimit
	if rateLimit <= 0 {
		rateLimit = DefaultRateLimit
	}

	var cache *CharacterCache
	if !config.DisableCache {
		cache = NewCharacterCache()
	}

	slog.Debug("creating Blizzard API client",
		"region", region,
		"api_base_url", apiBaseURL,
		"timeout", timeout,
		"cache_enabled", !config.DisableCache)

	return &Client{
		oauthBaseURL: oauthBaseURL,
		apiBaseURL:   apiBaseURL,
		region:       region,
		clientID:     config.ClientID,
		clientSecret: config.ClientSecret,
		httpClient:   &http.Client{Timeout: timeout},
		userAgent:    userAgent,
		rateLimiter:  NewRateLimiter(rateLimit, time.Second),
		cache:        cache,
	}
}

// Authenticated reports whether a bearer token has been acquired.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// dynamicNamespace is the namespace for season and leaderboard data.
func (c *Client) dynamicNamespace() string {
	return "dynamic-classic-" + c.region
}

// profileNamespace is the namespace for character profiles.
func (c *Client) profileNamespace() string {
	return "profile-classic-" + c.region
}

// apiGet performs a rate-limited, bearer-authorized GET against the data
// API. The caller owns the response body.
func (c *Client) apiGet(ctx context.Context, path, namespace string) (*http.Response, error) {
	if !c.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	query := url.Values{}
	query.Set("namespace", namespace)
	query.Set("locale", Locale)

	fullURL := c.apiBaseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	slog.Debug("blizzard API request", "url", fullURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}

	return resp, nil
}

// CacheLen returns the number of cached character profiles.
func (c *Client) CacheLen() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// ClearCache drops every cached character profile.
func (c *Client) ClearCache() {
	if c.cache != nil {
		c.cache.Clear()
	}
}
