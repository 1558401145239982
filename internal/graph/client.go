// Package graph is the HTTP client for the device-management API: profile
// creation, display-name lookups, and assignment submission. Each operation
// is a single attempt; retry policy belongs to callers.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/autoprov/autoprov/internal/assign"
	"github.com/autoprov/autoprov/pkg/models"
)

// DefaultBaseURL is the beta endpoint carrying the Autopilot resources.
const DefaultBaseURL = "https://graph.microsoft.com/beta"

const (
	profilesPath = "/deviceManagement/windowsAutopilotDeploymentProfiles"
	groupsPath   = "/groups"
)

var (
	// ErrGroupNotFound is returned when a group display name matches nothing.
	ErrGroupNotFound = errors.New("no group matches display name")

	// ErrAmbiguousGroup is returned when a group display name matches more
	// than one group; picking one silently would mis-assign the profile.
	ErrAmbiguousGroup = errors.New("multiple groups match display name")
)

// Client talks to the management service. All session state lives here;
// nothing is process-global.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a client for the given endpoint and token source.
func NewClient(baseURL string, tokens TokenSource) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        zap.NewNop(),
	}
}

// SetHTTPClient overrides the HTTP client used for API calls.
func (c *Client) SetHTTPClient(client *http.Client) {
	if client != nil {
		c.httpClient = client
	}
}

// SetLogger attaches a logger for request-level diagnostics.
func (c *Client) SetLogger(log *zap.Logger) {
	if log != nil {
		c.log = log
	}
}

// Ping performs a minimal read to verify connectivity and credentials.
func (c *Client) Ping(ctx context.Context) error {
	query := url.Values{"$top": {"1"}}
	var out struct {
		Value []json.RawMessage `json:"value"`
	}
	return c.do(ctx, http.MethodGet, profilesPath, query, nil, &out)
}

// CreateProfile submits a profile creation request and returns the new
// resource ID.
func (c *Client) CreateProfile(ctx context.Context, req *models.ProfileRequest) (string, error) {
	var created models.Profile
	if err := c.do(ctx, http.MethodPost, profilesPath, nil, req, &created); err != nil {
		return "", fmt.Errorf("failed to create profile %q: %w", req.DisplayName, err)
	}
	c.log.Debug("profile created",
		zap.String("display_name", req.DisplayName),
		zap.String("profile_id", created.ID))
	return created.ID, nil
}

// ProfileIDsByName returns the IDs of every profile whose display name
// matches exactly.
func (c *Client) ProfileIDsByName(ctx context.Context, displayName string) ([]string, error) {
	query := url.Values{"$filter": {eqFilter("displayName", displayName)}}
	var out struct {
		Value []models.Profile `json:"value"`
	}
	if err := c.do(ctx, http.MethodGet, profilesPath, query, nil, &out); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(out.Value))
	for _, p := range out.Value {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// GroupIDByName resolves a group display name to exactly one group ID.
func (c *Client) GroupIDByName(ctx context.Context, displayName string) (string, error) {
	query := url.Values{"$filter": {eqFilter("displayName", displayName)}}
	var out struct {
		Value []struct {
			ID string `json:"id"`
		} `json:"value"`
	}
	if err := c.do(ctx, http.MethodGet, groupsPath, query, nil, &out); err != nil {
		return "", err
	}
	switch {
	case len(out.Value) == 0:
		return "", fmt.Errorf("%w: %q", ErrGroupNotFound, displayName)
	case len(out.Value) > 1:
		return "", fmt.Errorf("%w: %q has %d matches", ErrAmbiguousGroup, displayName, len(out.Value))
	}
	return out.Value[0].ID, nil
}

// CreateAssignment submits one assignment target for a profile and returns
// the assignment ID.
func (c *Client) CreateAssignment(ctx context.Context, profileID string, target assign.Target) (string, error) {
	payload, err := targetPayload(target)
	if err != nil {
		return "", err
	}
	var created models.Assignment
	path := fmt.Sprintf("%s/%s/assignments", profilesPath, url.PathEscape(profileID))
	if err := c.do(ctx, http.MethodPost, path, nil, models.AssignmentRequest{Target: payload}, &created); err != nil {
		return "", fmt.Errorf("failed to assign profile %s: %w", profileID, err)
	}
	return created.ID, nil
}

// ListProfiles collects every deployment profile, following pagination links.
func (c *Client) ListProfiles(ctx context.Context, pageSize int) ([]models.Profile, error) {
	var all []models.Profile

	query := url.Values{}
	if pageSize > 0 {
		query.Set("$top", fmt.Sprintf("%d", pageSize))
	}
	next := c.baseURL + profilesPath
	if len(query) > 0 {
		next += "?" + query.Encode()
	}

	for next != "" {
		var page struct {
			Value    []models.Profile `json:"value"`
			NextLink string           `json:"@odata.nextLink"`
		}
		if err := c.doURL(ctx, http.MethodGet, next, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list profiles: %w", err)
		}
		all = append(all, page.Value...)
		next = page.NextLink
	}
	return all, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return c.doURL(ctx, method, u, body, out)
}

func (c *Client) doURL(ctx context.Context, method, rawURL string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("api status %d: %s", resp.StatusCode, apiErrorMessage(resp.Body))
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// apiErrorMessage pulls the human-readable message out of an OData error
// body, falling back to the raw text.
func apiErrorMessage(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, 4096))
	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error.Message != "" {
		if payload.Error.Code != "" {
			return payload.Error.Code + ": " + payload.Error.Message
		}
		return payload.Error.Message
	}
	return strings.TrimSpace(string(data))
}

// eqFilter builds an OData exact-match filter, doubling embedded quotes.
func eqFilter(field, value string) string {
	return fmt.Sprintf("%s eq '%s'", field, strings.ReplaceAll(value, "'", "''"))
}

func targetPayload(t assign.Target) (models.AssignmentTarget, error) {
	switch t.Kind {
	case assign.TargetAllDevices:
		return models.NewAllDevicesTarget(), nil
	case assign.TargetInclude:
		return models.NewGroupTarget(t.GroupID), nil
	case assign.TargetExclude:
		return models.NewExclusionGroupTarget(t.GroupID), nil
	}
	return models.AssignmentTarget{}, fmt.Errorf("unknown assignment target kind %q", t.Kind)
}
