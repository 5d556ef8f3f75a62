package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/eduard-zxc/auctionfront/internal/shared/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// renew this long before the reported expiry
const expirySkew = 30 * time.Second

// Config carries the identity provider settings
type Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Audience     string
	RolesClaim   string
	AdminRole    string
}

// exchangeFunc fetches a fresh credential, returning the token and its
// lifetime. Overridable for tests.
type exchangeFunc func(ctx context.Context) (string, time.Duration, error)

// Session acquires and caches the bearer credential issued by the external
// identity provider. Every authorized call awaits Token serially; the roles
// claim is read purely for client-side UI gating, the backend re-checks
// authorization on every request.
type Session struct {
	cfg      Config
	exchange exchangeFunc
	now      func() time.Time

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// New creates a session against the configured identity provider
func New(cfg Config) *Session {
	s := &Session{cfg: cfg, now: time.Now}
	s.exchange = s.fetchToken
	return s
}

// Token returns the cached credential, fetching a fresh one when missing or
// about to expire. Serialized: concurrent callers block until the single
// in-flight fetch resolves.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && s.now().Before(s.expiry.Add(-expirySkew)) {
		return s.token, nil
	}

	token, ttl, err := s.exchange(ctx)
	if err != nil {
		return "", fmt.Errorf("session: acquire token: %w", err)
	}
	s.token = token
	s.expiry = s.now().Add(ttl)
	log.Debug("access token refreshed", zap.Time("expiry", s.expiry))
	return s.token, nil
}

// Roles extracts the roles list from the namespaced claim of the current
// token. The signature is not verified here, the token is only inspected to
// decide which affordances to show.
func (s *Session) Roles(ctx context.Context) ([]string, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("session: parse token claims: %w", err)
	}

	raw, ok := claims[s.cfg.RolesClaim]
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, nil
	}
	roles := make([]string, 0, len(list))
	for _, v := range list {
		if role, ok := v.(string); ok {
			roles = append(roles, role)
		}
	}
	return roles, nil
}

// IsAdmin reports whether the roles claim contains the admin role
func (s *Session) IsAdmin(ctx context.Context) (bool, error) {
	roles, err := s.Roles(ctx)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if r == s.cfg.AdminRole {
			return true, nil
		}
	}
	return false, nil
}

// fetchToken runs the client-credentials exchange against the provider
func (s *Session) fetchToken(_ context.Context) (string, time.Duration, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", s.cfg.ClientID)
	form.Set("client_secret", s.cfg.ClientSecret)
	form.Set("audience", s.cfg.Audience)

	a := fiber.Post(s.cfg.TokenURL)
	a.Body([]byte(form.Encode()))
	a.ContentType(fiber.MIMEApplicationForm)

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return "", 0, fmt.Errorf("token request failed: %w", errs[0])
	}
	if code != fiber.StatusOK {
		return "", 0, fmt.Errorf("token endpoint returned %d: %s", code, bytes.TrimSpace(body))
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", 0, fmt.Errorf("decode token response: %w", err)
	}
	if resp.AccessToken == "" {
		return "", 0, fmt.Errorf("token endpoint returned no access_token")
	}
	return resp.AccessToken, time.Duration(resp.ExpiresIn) * time.Second, nil
}
