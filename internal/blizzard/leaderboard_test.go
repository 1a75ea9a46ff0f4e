package blizzard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds an authenticated client whose OAuth and data API
// endpoints both point at the given handler.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token": "test-token"}`))
	})
	mux.Handle("/", handler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(&Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		OAuthBaseURL: server.URL,
		APIBaseURL:   server.URL,
	})
	require.NoError(t, client.Authenticate(context.Background()))

	return client, server
}

func TestLeaderboardPath(t *testing.T) {
	tests := []struct {
		name    string
		season  int
		bracket Bracket
		want    string
	}{
		{
			name:    "season-scoped shape",
			season:  10,
			bracket: Bracket3v3,
			want:    "/data/wow/pvp-season/10/pvp-leaderboard/3v3",
		},
		{
			name:    "boundary season uses new shape",
			season:  9,
			bracket: BracketRBG,
			want:    "/data/wow/pvp-season/9/pvp-leaderboard/rbg",
		},
		{
			name:    "legacy region-scoped shape",
			season:  8,
			bracket: Bracket2v2,
			want:    "/data/wow/pvp-region/0/pvp-season/8/pvp-leaderboard/2v2",
		},
		{
			name:    "season 1 legacy shape",
			season:  1,
			bracket: Bracket5v5,
			want:    "/data/wow/pvp-region/0/pvp-season/1/pvp-leaderboard/5v5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, leaderboardPath(tt.season, tt.bracket))
			// Pure function: same inputs, same output.
			assert.Equal(t, leaderboardPath(tt.season, tt.bracket), leaderboardPath(tt.season, tt.bracket))
		})
	}
}

func TestClient_FetchLeaderboard(t *testing.T) {
	body := `{
		"season": {"id": 10},
		"name": "2v2",
		"entries": [
			{"character": {"name": "Arthas", "realm": {"slug": "maladath"}}, "rank": 1, "rating": 2700},
			{"character": {"name": "Jaina", "realm": {"slug": "maladath"}}, "rank": 2, "rating": 2650},
			{"character": {"name": "Thrall", "realm": {"slug": "murloc"}}, "rank": 3, "rating": 2600}
		]
	}`

	var gotPath, gotNamespace, gotLocale, gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotNamespace = r.URL.Query().Get("namespace")
		gotLocale = r.URL.Query().Get("locale")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(body))
	}))

	data, err := client.FetchLeaderboard(context.Background(), 10, Bracket2v2)
	require.NoError(t, err)

	assert.Equal(t, "/data/wow/pvp-season/10/pvp-leaderboard/2v2", gotPath)
	assert.Equal(t, "dynamic-classic-tw", gotNamespace)
	assert.Equal(t, "en_TW", gotLocale)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Len(t, data.Entries, 3)
}

func TestClient_FetchLeaderboard_ZeroEntriesIsSuccess(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"season": {"id": 10}, "entries": []}`))
	}))

	data, err := client.FetchLeaderboard(context.Background(), 10, Bracket3v3)
	require.NoError(t, err)
	assert.Empty(t, data.Entries)
}

func TestClient_FetchLeaderboard_Failures(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    error
		wantAPIErr bool
	}{
		{
			name:       "http error",
			statusCode: http.StatusInternalServerError,
			body:       "internal error",
			wantAPIErr: true,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			body:       `{"detail": "Not Found"}`,
			wantAPIErr: true,
		},
		{
			name:       "empty body",
			statusCode: http.StatusOK,
			body:       "   ",
			wantErr:    ErrEmptyResponse,
		},
		{
			name:       "malformed json",
			statusCode: http.StatusOK,
			body:       `{broken`,
		},
		{
			name:       "vendor error payload",
			statusCode: http.StatusOK,
			body:       `{"error": {"message": "leaderboard unavailable"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))

			data, err := client.FetchLeaderboard(context.Background(), 10, Bracket2v2)
			require.Error(t, err)
			assert.Nil(t, data)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantAPIErr {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.statusCode, apiErr.StatusCode)
			}
		})
	}
}

func TestClient_FetchLeaderboard_VendorErrorMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": {"message": "season not active"}}`))
	}))

	_, err := client.FetchLeaderboard(context.Background(), 10, Bracket2v2)
	require.Error(t, err)

	var vendorErr *VendorError
	require.ErrorAs(t, err, &vendorErr)
	assert.Equal(t, "season not active", vendorErr.Message)
}

func TestClient_FetchLeaderboard_NotAuthenticated(t *testing.T) {
	client := NewClient(&Config{})

	_, err := client.FetchLeaderboard(context.Background(), 10, Bracket2v2)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestClient_FetchLeaderboard_BracketUnavailable(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued for an unavailable bracket")
	}))

	_, err := client.FetchLeaderboard(context.Background(), 7, BracketRBG)
	assert.ErrorIs(t, err, ErrBracketUnavailable)
}

func TestClient_FetchLeaderboard_Timeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token": "test-token"}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"entries": []}`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(&Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		OAuthBaseURL: server.URL,
		APIBaseURL:   server.URL,
		Timeout:      50 * time.Millisecond,
	})
	require.NoError(t, client.Authenticate(context.Background()))

	_, err := client.FetchLeaderboard(context.Background(), 10, Bracket2v2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestTimeout)
}

func TestParseVendorError(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "object with message", raw: `{"message": "oops"}`, want: "oops"},
		{name: "bare string", raw: `"oops"`, want: "oops"},
		{name: "unrecognized shape", raw: `42`, want: "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseVendorError([]byte(tt.raw))
			assert.Equal(t, tt.want, got.Message)
		})
	}
}
