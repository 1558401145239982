package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAuthorityBaseURL is the token endpoint authority.
const DefaultAuthorityBaseURL = "https://login.microsoftonline.com"

const defaultScope = "https://graph.microsoft.com/.default"

// expirySkew is subtracted from the token lifetime so a token is refreshed
// before it actually lapses mid-batch.
const expirySkew = 2 * time.Minute

// TokenSource supplies a bearer token for each outgoing request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns a fixed, externally obtained token.
type StaticTokenSource struct {
	token string
}

// NewStaticTokenSource wraps an already-acquired access token.
func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: strings.TrimSpace(token)}
}

func (s *StaticTokenSource) Token(ctx context.Context) (string, error) {
	if s.token == "" {
		return "", fmt.Errorf("no access token configured")
	}
	return s.token, nil
}

// ClientCredentialsSource acquires tokens from the OAuth2 client-credentials
// endpoint and caches them until shortly before expiry.
type ClientCredentialsSource struct {
	authorityBaseURL string
	tenantID         string
	clientID         string
	clientSecret     string
	scope            string
	httpClient       *http.Client

	mu     sync.Mutex
	cached string
	expiry time.Time
}

// NewClientCredentialsSource creates a token source for an app registration.
func NewClientCredentialsSource(tenantID, clientID, clientSecret string) *ClientCredentialsSource {
	return &ClientCredentialsSource{
		authorityBaseURL: DefaultAuthorityBaseURL,
		tenantID:         tenantID,
		clientID:         clientID,
		clientSecret:     clientSecret,
		scope:            defaultScope,
		httpClient:       &http.Client{Timeout: 30 * time.Second},
	}
}

// SetAuthorityBaseURL overrides the token authority (tests, sovereign clouds).
func (s *ClientCredentialsSource) SetAuthorityBaseURL(baseURL string) {
	if baseURL != "" {
		s.authorityBaseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// SetHTTPClient overrides the HTTP client used for token requests.
func (s *ClientCredentialsSource) SetHTTPClient(client *http.Client) {
	if client != nil {
		s.httpClient = client
	}
}

func (s *ClientCredentialsSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != "" && time.Now().Before(s.expiry) {
		return s.cached, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
		"scope":         {s.scope},
	}
	endpoint := fmt.Sprintf("%s/%s/oauth2/v2.0/token", s.authorityBaseURL, s.tenantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token endpoint status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned an empty access token")
	}

	s.cached = payload.AccessToken
	s.expiry = tokenExpiry(payload.AccessToken, payload.ExpiresIn)
	return s.cached, nil
}

// tokenExpiry prefers the endpoint's expires_in and falls back to the exp
// claim inside the token itself.
func tokenExpiry(token string, expiresIn int64) time.Time {
	if expiresIn > 0 {
		return time.Now().Add(time.Duration(expiresIn)*time.Second - expirySkew)
	}
	if exp, ok := tokenExpClaim(token); ok {
		return exp.Add(-expirySkew)
	}
	// Unknown lifetime; re-acquire on the next call.
	return time.Now()
}

func tokenExpClaim(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// SessionInfo describes the identity behind an access token, decoded without
// signature verification for display purposes only.
type SessionInfo struct {
	TenantID  string
	AppID     string
	ExpiresAt time.Time
}

// DecodeSessionInfo extracts tenant, app, and expiry claims from a token.
func DecodeSessionInfo(token string) (*SessionInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	info := &SessionInfo{}
	if v, ok := claims["tid"].(string); ok {
		info.TenantID = v
	}
	if v, ok := claims["appid"].(string); ok {
		info.AppID = v
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
