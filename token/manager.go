// Package token owns the grant token lifecycle: acquisition, caching,
// refresh, and invalidation. The Manager is the only component that talks
// to the token endpoints.
package token

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sabitahmadumid/bkash-go/config"
	"github.com/sabitahmadumid/bkash-go/logging"
	"github.com/sabitahmadumid/bkash-go/metrics"
)

const cacheKey = "bkash_token"

const (
	ReasonGenerationFailed = "generation_failed"
	ReasonRefreshFailed    = "refresh_failed"
)

// AuthError reports a token acquisition failure.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("token %s", e.Reason)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

type Manager struct {
	cfg     *config.Config
	cache   Cache
	client  *http.Client
	log     logging.Logger
	metrics *metrics.Counters
}

func NewManager(cfg *config.Config, cache Cache, client *http.Client, log logging.Logger, counters *metrics.Counters) *Manager {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = logging.Nop{}
	}
	return &Manager{
		cfg:     cfg,
		cache:   cache,
		client:  client,
		log:     log,
		metrics: counters,
	}
}

// Token returns the cached grant token, generating one if the cache is
// empty or expired.
func (m *Manager) Token(ctx context.Context) (string, error) {
	if tok, ok := m.cache.Get(cacheKey); ok {
		return tok, nil
	}
	return m.Generate(ctx)
}

// Invalidate evicts the cached token. Idempotent.
func (m *Manager) Invalidate() {
	m.cache.Delete(cacheKey)
}

// Generate calls the grant endpoint and caches the resulting token for
// the configured TTL.
func (m *Manager) Generate(ctx context.Context) (string, error) {
	grantURL, err := m.cfg.URL(config.EndpointToken)
	if err != nil {
		return "", &AuthError{Reason: ReasonGenerationFailed, Err: err}
	}

	body, err := json.Marshal(map[string]string{
		"app_key":    m.cfg.Credentials.AppKey,
		"app_secret": m.cfg.Credentials.AppSecret,
	})
	if err != nil {
		return "", &AuthError{Reason: ReasonGenerationFailed, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, grantURL, bytes.NewReader(body))
	if err != nil {
		return "", &AuthError{Reason: ReasonGenerationFailed, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("username", m.cfg.Credentials.Username)
	req.Header.Set("password", m.cfg.Credentials.Password)

	resp, err := m.client.Do(req)
	if err != nil {
		return "", &AuthError{Reason: ReasonGenerationFailed, Err: err}
	}
	defer resp.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", &AuthError{Reason: ReasonGenerationFailed, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := payload["errorMessage"].(string)
		if msg == "" {
			msg = "unknown error"
		}
		return "", &AuthError{Reason: ReasonGenerationFailed, Err: fmt.Errorf("grant returned %d: %s", resp.StatusCode, msg)}
	}

	tok, _ := payload["id_token"].(string)
	if tok == "" {
		return "", &AuthError{Reason: ReasonGenerationFailed, Err: fmt.Errorf("grant response missing id_token")}
	}

	m.cache.Set(cacheKey, tok, m.cfg.TokenTTL)
	if m.metrics != nil {
		m.metrics.IncTokenGenerated()
	}
	m.log.Info("token generated", map[string]any{"ttl": m.cfg.TokenTTL.String()})

	return tok, nil
}

// Refresh attempts the refresh endpoint using the cached token as bearer.
// Refresh is advisory: any failure falls back to Generate rather than
// propagating.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	current, ok := m.cache.Get(cacheKey)
	if !ok {
		return m.Generate(ctx)
	}

	tok, err := m.refresh(ctx, current)
	if err != nil {
		m.log.Warn("token refresh failed, generating", map[string]any{"error": err.Error()})
		m.Invalidate()
		return m.Generate(ctx)
	}

	m.cache.Set(cacheKey, tok, m.cfg.TokenTTL)
	if m.metrics != nil {
		m.metrics.IncTokenRefreshed()
	}
	return tok, nil
}

func (m *Manager) refresh(ctx context.Context, current string) (string, error) {
	refreshURL, err := m.cfg.URL(config.EndpointTokenRefresh)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(map[string]string{
		"app_key":    m.cfg.Credentials.AppKey,
		"app_secret": m.cfg.Credentials.AppSecret,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, refreshURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", current)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("refresh returned %d", resp.StatusCode)
	}

	tok, _ := payload["id_token"].(string)
	if tok == "" {
		return "", fmt.Errorf("refresh response missing id_token")
	}

	return tok, nil
}
