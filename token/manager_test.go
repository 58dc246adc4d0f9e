package token_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sabitahmadumid/bkash-go/config"
	"github.com/sabitahmadumid/bkash-go/token"
)

func testConfig(serverURL string) *config.Config {
	cfg := config.Default()
	cfg.Credentials = config.Credentials{
		AppKey:    "test-key",
		AppSecret: "test-secret",
		Username:  "sandbox-user",
		Password:  "sandbox-pass",
	}
	cfg.SandboxURLs = map[string]string{
		config.EndpointToken:        serverURL + "/token/grant",
		config.EndpointTokenRefresh: serverURL + "/token/refresh",
	}
	cfg.TokenTTL = time.Minute
	return cfg
}

func TestManager_FreshCacheGeneratesExactlyOnce(t *testing.T) {
	var grants int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token/grant", r.URL.Path)
		require.Equal(t, "sandbox-user", r.Header.Get("username"))
		require.Equal(t, "sandbox-pass", r.Header.Get("password"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "test-key", body["app_key"])
		require.Equal(t, "test-secret", body["app_secret"])

		atomic.AddInt64(&grants, 1)
		json.NewEncoder(w).Encode(map[string]any{"id_token": "tok-1", "expires_in": 3600})
	}))
	defer srv.Close()

	m := token.NewManager(testConfig(srv.URL), token.NewMemoryCache(), srv.Client(), nil, nil)

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)
	require.EqualValues(t, 1, atomic.LoadInt64(&grants))

	// second call within TTL hits the cache, zero network calls
	tok, err = m.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)
	require.EqualValues(t, 1, atomic.LoadInt64(&grants))
}

func TestManager_GenerateFailsOnNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"errorCode":    "2011",
			"errorMessage": "Invalid App Key",
		})
	}))
	defer srv.Close()

	m := token.NewManager(testConfig(srv.URL), token.NewMemoryCache(), srv.Client(), nil, nil)

	_, err := m.Token(context.Background())

	var authErr *token.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, token.ReasonGenerationFailed, authErr.Reason)
	require.Contains(t, authErr.Error(), "Invalid App Key")
}

func TestManager_GenerateFailsOnMissingIDToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"statusCode": "0000"})
	}))
	defer srv.Close()

	m := token.NewManager(testConfig(srv.URL), token.NewMemoryCache(), srv.Client(), nil, nil)

	_, err := m.Token(context.Background())

	var authErr *token.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, token.ReasonGenerationFailed, authErr.Reason)
}

func TestManager_GenerateFailsOnConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	m := token.NewManager(testConfig(srv.URL), token.NewMemoryCache(), &http.Client{}, nil, nil)

	_, err := m.Token(context.Background())

	var authErr *token.AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestManager_InvalidateForcesRegeneration(t *testing.T) {
	var grants int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&grants, 1)
		tok := "tok-1"
		if n > 1 {
			tok = "tok-2"
		}
		json.NewEncoder(w).Encode(map[string]any{"id_token": tok})
	}))
	defer srv.Close()

	m := token.NewManager(testConfig(srv.URL), token.NewMemoryCache(), srv.Client(), nil, nil)

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	m.Invalidate()
	m.Invalidate() // idempotent

	tok, err = m.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok-2", tok)
	require.EqualValues(t, 2, atomic.LoadInt64(&grants))
}

func TestManager_RefreshUsesCachedTokenAsBearer(t *testing.T) {
	var refreshes int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/grant":
			json.NewEncoder(w).Encode(map[string]any{"id_token": "tok-old"})
		case "/token/refresh":
			atomic.AddInt64(&refreshes, 1)
			require.Equal(t, "tok-old", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]any{"id_token": "tok-new"})
		}
	}))
	defer srv.Close()

	cache := token.NewMemoryCache()
	m := token.NewManager(testConfig(srv.URL), cache, srv.Client(), nil, nil)

	_, err := m.Token(context.Background())
	require.NoError(t, err)

	tok, err := m.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok-new", tok)
	require.EqualValues(t, 1, atomic.LoadInt64(&refreshes))

	// the refreshed token is now the cached one
	tok, err = m.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok-new", tok)
}

func TestManager_RefreshFallsBackToGenerateOnFailure(t *testing.T) {
	var grants int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/grant":
			n := atomic.AddInt64(&grants, 1)
			if n == 1 {
				json.NewEncoder(w).Encode(map[string]any{"id_token": "tok-old"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"id_token": "tok-regenerated"})
		case "/token/refresh":
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"errorMessage": "refresh rejected"})
		}
	}))
	defer srv.Close()

	m := token.NewManager(testConfig(srv.URL), token.NewMemoryCache(), srv.Client(), nil, nil)

	_, err := m.Token(context.Background())
	require.NoError(t, err)

	tok, err := m.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok-regenerated", tok)
}

func TestManager_RefreshWithEmptyCacheGenerates(t *testing.T) {
	var grants, refreshes int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token/grant":
			atomic.AddInt64(&grants, 1)
			json.NewEncoder(w).Encode(map[string]any{"id_token": "tok-1"})
		case "/token/refresh":
			atomic.AddInt64(&refreshes, 1)
		}
	}))
	defer srv.Close()

	m := token.NewManager(testConfig(srv.URL), token.NewMemoryCache(), srv.Client(), nil, nil)

	tok, err := m.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)
	require.EqualValues(t, 1, atomic.LoadInt64(&grants))
	require.EqualValues(t, 0, atomic.LoadInt64(&refreshes))
}

func TestAuthError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &token.AuthError{Reason: token.ReasonGenerationFailed, Err: cause}
	require.ErrorIs(t, err, cause)
}
