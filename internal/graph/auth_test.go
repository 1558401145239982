package graph

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// unsignedJWT builds a syntactically valid token with the given claims; the
// signature is garbage, which is fine for unverified decoding.
func unsignedJWT(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "none", "typ": "JWT"})
	if err != nil {
		t.Fatal(err)
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatal(err)
	}
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + ".sig"
}

func TestStaticTokenSource(t *testing.T) {
	src := NewStaticTokenSource("  abc  ")
	token, err := src.Token(context.Background())
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if token != "abc" {
		t.Errorf("expected trimmed token, got %q", token)
	}

	if _, err := NewStaticTokenSource("").Token(context.Background()); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestClientCredentialsSourceCachesToken(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/tenant-1/oauth2/v2.0/token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if r.Form.Get("grant_type") != "client_credentials" {
			t.Errorf("unexpected grant_type %q", r.Form.Get("grant_type"))
		}
		if r.Form.Get("client_id") != "client-1" {
			t.Errorf("unexpected client_id %q", r.Form.Get("client_id"))
		}
		fmt.Fprint(w, `{"access_token": "tok-1", "expires_in": 3600}`)
	}))
	defer server.Close()

	src := NewClientCredentialsSource("tenant-1", "client-1", "secret")
	src.SetAuthorityBaseURL(server.URL)

	for i := 0; i < 3; i++ {
		token, err := src.Token(context.Background())
		if err != nil {
			t.Fatalf("Token failed: %v", err)
		}
		if token != "tok-1" {
			t.Errorf("expected tok-1, got %q", token)
		}
	}
	if requests != 1 {
		t.Errorf("expected a single token request, got %d", requests)
	}
}

func TestClientCredentialsSourceEndpointError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": "invalid_client"}`)
	}))
	defer server.Close()

	src := NewClientCredentialsSource("tenant-1", "client-1", "wrong")
	src.SetAuthorityBaseURL(server.URL)

	if _, err := src.Token(context.Background()); err == nil {
		t.Fatal("expected error from token endpoint")
	}
}

func TestTokenExpiryFallsBackToExpClaim(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	token := unsignedJWT(t, map[string]any{"exp": exp.Unix()})

	got := tokenExpiry(token, 0)
	want := exp.Add(-expirySkew)
	if diff := got.Sub(want); diff < -time.Second || diff > time.Second {
		t.Errorf("expected expiry near %v, got %v", want, got)
	}
}

func TestDecodeSessionInfo(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := unsignedJWT(t, map[string]any{
		"tid":   "tenant-1",
		"appid": "client-1",
		"exp":   exp.Unix(),
	})

	info, err := DecodeSessionInfo(token)
	if err != nil {
		t.Fatalf("DecodeSessionInfo failed: %v", err)
	}
	if info.TenantID != "tenant-1" {
		t.Errorf("unexpected tenant %q", info.TenantID)
	}
	if info.AppID != "client-1" {
		t.Errorf("unexpected app %q", info.AppID)
	}
	if !info.ExpiresAt.Equal(exp) {
		t.Errorf("expected expiry %v, got %v", exp, info.ExpiresAt)
	}

	if _, err := DecodeSessionInfo("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
