package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeSpotify serves the token endpoint under /api/token and API routes under /v1.
type fakeSpotify struct {
	*httptest.Server
	mu       sync.Mutex
	mux      *http.ServeMux
	apiHits  atomic.Int32
	requests []*http.Request
}

func newFakeSpotify(t *testing.T) *fakeSpotify {
	t.Helper()

	f := &fakeSpotify{mux: http.NewServeMux()}
	f.mux.HandleFunc("POST /api/token", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":  "test-token",
			"token_type":    "Bearer",
			"expires_in":    3600,
			"refresh_token": "test-refresh",
			"scope":         "user-read-private user-library-read",
		})
	})

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/token" {
			f.apiHits.Add(1)
			f.mu.Lock()
			f.requests = append(f.requests, r.Clone(context.Background()))
			f.mu.Unlock()
		}
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.Close)
	return f
}

// handle registers a route on the API root, e.g. "GET /albums/{id}".
func (f *fakeSpotify) handle(pattern string, h http.HandlerFunc) {
	method, p, ok := cutPattern(pattern)
	if ok {
		f.mux.HandleFunc(method+" /v1"+p, h)
		return
	}
	f.mux.HandleFunc("/v1"+pattern, h)
}

func cutPattern(pattern string) (string, string, bool) {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == ' ' {
			return pattern[:i], pattern[i+1:], true
		}
	}
	return "", pattern, false
}

func (f *fakeSpotify) lastRequest(t *testing.T) *http.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "expected at least one API request")
	return f.requests[len(f.requests)-1]
}

func (f *fakeSpotify) service(t *testing.T, opts ...Option) *SpotifyService {
	t.Helper()
	flow := &ClientCredentials{ClientID: "id", ClientSecret: "secret", TokenURL: f.URL + "/api/token"}
	opts = append([]Option{WithBaseURL(f.URL + "/v1"), WithHTTPClient(f.Client())}, opts...)

	srv, err := NewSpotifyService(context.Background(), flow, opts...)
	require.NoError(t, err)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondRaw(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}
