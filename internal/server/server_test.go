package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, h *OAuthHandler) OAuthResult {
	t.Helper()
	select {
	case r := <-h.Result():
		return r
	case <-time.After(time.Second):
		t.Fatal("no result sent")
		return OAuthResult{}
	}
}

func TestOAuthHandler(t *testing.T) {
	t.Run("Routes Follow Redirect URI", func(t *testing.T) {
		h, err := NewOAuthHandler("http://127.0.0.1:3000/spotify/callback", "s", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"/spotify/callback"}, h.Routes())

		h, err = NewOAuthHandler("http://127.0.0.1:3000", "s", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"/"}, h.Routes())
	})

	t.Run("Captures Code", func(t *testing.T) {
		h, err := NewOAuthHandler("http://127.0.0.1:3000/callback", "state-1", nil)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=state-1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Connected to Spotify")

		result := receive(t, h)
		require.NoError(t, result.Error())
		assert.Equal(t, "abc", result.Code)
		assert.Nil(t, result.Credential)
	})

	t.Run("Exchanges Code", func(t *testing.T) {
		exchange := func(_ context.Context, code string) (*models.AccessCredential, error) {
			return &models.AccessCredential{AccessToken: "token-for-" + code}, nil
		}
		h, err := NewOAuthHandler("http://127.0.0.1:3000/callback", "s", exchange)
		require.NoError(t, err)

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=s", nil))

		result := receive(t, h)
		require.NoError(t, result.Error())
		assert.Equal(t, "token-for-abc", result.Credential.AccessToken)
	})

	t.Run("Exchange Failure", func(t *testing.T) {
		exchange := func(context.Context, string) (*models.AccessCredential, error) {
			return nil, shared.ErrAuthFailed
		}
		h, err := NewOAuthHandler("http://127.0.0.1:3000/callback", "s", exchange)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=s", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		res := receive(t, h)
		assert.ErrorIs(t, res.Error(), shared.ErrAuthFailed)
	})

	t.Run("State Mismatch", func(t *testing.T) {
		h, err := NewOAuthHandler("http://127.0.0.1:3000/callback", "expected", nil)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=forged", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		res := receive(t, h)
		assert.ErrorIs(t, res.Error(), shared.ErrStateMismatch)
	})

	t.Run("User Denied", func(t *testing.T) {
		h, err := NewOAuthHandler("http://127.0.0.1:3000/callback", "s", nil)
		require.NoError(t, err)

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/callback?error=access_denied&state=s", nil))

		res := receive(t, h)
		err = res.Error()
		assert.ErrorIs(t, err, shared.ErrAuthFailed)
		assert.Contains(t, err.Error(), "access_denied")
	})

	t.Run("Second Callback Rejected", func(t *testing.T) {
		h, err := NewOAuthHandler("http://127.0.0.1:3000/callback", "s", nil)
		require.NoError(t, err)

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/callback?code=1&state=s", nil))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=2&state=s", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "1", receive(t, h).Code)
	})
}

func TestCallbackRouter(t *testing.T) {
	newHandler := func(t *testing.T) *OAuthHandler {
		h, err := NewOAuthHandler("http://127.0.0.1:3000/callback", "s", nil)
		require.NoError(t, err)
		return h
	}

	t.Run("Serves GET On The Callback Path", func(t *testing.T) {
		h := newHandler(t)
		r := NewCallbackRouter()
		r.Handler(h)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=c&state=s", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "c", receive(t, h).Code)
	})

	t.Run("Rejects Other Methods", func(t *testing.T) {
		h := newHandler(t)
		r := NewCallbackRouter()
		r.Handler(h)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/callback?code=c&state=s", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

		select {
		case res := <-h.Result():
			t.Fatalf("expected no result, got %+v", res)
		default:
		}
	})

	t.Run("Unknown Path", func(t *testing.T) {
		r := NewCallbackRouter()
		r.Handler(newHandler(t))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Middleware Order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		r := NewCallbackRouter()
		r.Use(mark("first"), mark("second"))
		r.Handler(newHandler(t))

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/callback?code=c&state=s", nil))
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("Request Logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.New(&buf)
		logger.SetLevel(log.DebugLevel)

		r := NewCallbackRouter()
		r.Use(RequestLogger(logger))
		r.Handler(newHandler(t))

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/callback?code=c&state=s", nil))
		assert.Contains(t, buf.String(), "/callback")
	})
}

func TestCallbackServer(t *testing.T) {
	h, err := NewOAuthHandler("http://127.0.0.1/callback", "s", nil)
	require.NoError(t, err)

	r := NewCallbackRouter()
	r.Handler(h)

	srv, err := Listen("127.0.0.1:0", r)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()

	resp, err := http.Get("http://" + srv.Addr() + "/callback?code=live&state=s")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "live", receive(t, h).Code)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("serve returned %v", err)
	}
}
