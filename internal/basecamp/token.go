package basecamp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TokenSource yields a valid access token on demand.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// RefreshTokenSource exchanges a long-lived refresh token for short-lived
// access tokens at the launchpad endpoint, caching the result on disk so
// repeated command invocations reuse a still-valid token.
type RefreshTokenSource struct {
	config    Config
	http      *http.Client
	cachePath string

	mu    sync.Mutex
	token cachedToken
}

type cachedToken struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (t cachedToken) valid() bool {
	return t.AccessToken != "" && time.Now().Before(t.ExpiresAt.Add(-time.Minute))
}

func NewRefreshTokenSource(cfg Config) *RefreshTokenSource {
	if cfg.LaunchpadURL == "" {
		cfg.LaunchpadURL = "https://launchpad.37signals.com"
	}
	src := &RefreshTokenSource{
		config: cfg,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
	if dir, err := os.UserCacheDir(); err == nil {
		src.cachePath = filepath.Join(dir, "noted2", "basecamp_token.json")
	}
	return src
}

func (s *RefreshTokenSource) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token.valid() {
		return s.token.AccessToken, nil
	}
	if s.loadCache(); s.token.valid() {
		return s.token.AccessToken, nil
	}

	token, expiresIn, err := s.refresh(ctx)
	if err != nil {
		return "", err
	}
	s.token = cachedToken{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(time.Duration(expiresIn) * time.Second),
	}
	s.saveCache()
	return token, nil
}

func (s *RefreshTokenSource) refresh(ctx context.Context) (string, int, error) {
	form := url.Values{
		"type":          {"refresh"},
		"client_id":     {s.config.ClientID},
		"client_secret": {s.config.ClientSecret},
		"refresh_token": {s.config.RefreshToken},
	}
	refreshURL := s.config.LaunchpadURL + "/authorization/token?" + form.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, refreshURL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("token refresh: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("token refresh failed (status %d): %s", resp.StatusCode, string(body))
	}

	var out struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", 0, fmt.Errorf("parse token response: %w", err)
	}
	if out.AccessToken == "" {
		return "", 0, fmt.Errorf("token refresh: response carried no access token")
	}
	if out.ExpiresIn <= 0 {
		out.ExpiresIn = 1209600 // two weeks, the documented default
	}
	return out.AccessToken, out.ExpiresIn, nil
}

func (s *RefreshTokenSource) loadCache() {
	if s.cachePath == "" {
		return
	}
	data, err := os.ReadFile(s.cachePath)
	if err != nil {
		return
	}
	var tok cachedToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return
	}
	s.token = tok
}

func (s *RefreshTokenSource) saveCache() {
	if s.cachePath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.cachePath), 0755); err != nil {
		log.Printf("basecamp: failed to create token cache dir: %v", err)
		return
	}
	data, err := json.Marshal(s.token)
	if err != nil {
		return
	}
	if err := os.WriteFile(s.cachePath, data, 0600); err != nil {
		log.Printf("basecamp: failed to persist token cache: %v", err)
	}
}

// StaticTokenSource returns the same token forever. Used in tests and when
// the user supplies a personal access token directly.
type StaticTokenSource string

func (s StaticTokenSource) AccessToken(context.Context) (string, error) {
	return string(s), nil
}
