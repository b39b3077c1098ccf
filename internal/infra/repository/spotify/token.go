package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/davidrhys/genrescout/internal/infra/repository/cache"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
)

const (
	AuthURL  = "https://accounts.spotify.com/authorize"
	TokenURL = "https://accounts.spotify.com/api/token"

	// clientTokenKey is where the app-level token lives in the shared
	// cache, so every process observes the same token.
	clientTokenKey = "spotify:client_token"
)

var defaultScopes = []string{
	"user-read-private",
	"user-read-email",
	"user-top-read",
}

type TokenManagerConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string

	// AuthURL and TokenURL default to the Spotify accounts endpoints.
	AuthURL  string
	TokenURL string

	HTTPClient *http.Client
	Cache      cache.Store
	Tracer     trace.Tracer
}

// TokenManager acquires and caches OAuth tokens for the two flows the
// application uses: client credentials for anonymous traffic and
// authorization code plus refresh for logged-in users.
type TokenManager struct {
	tracer       trace.Tracer
	httpClient   *http.Client
	cache        cache.Store
	clientID     string
	clientSecret string
	tokenURL     string
	oauthConfig  *oauth2.Config

	now func() time.Time
}

func NewTokenManager(cfg TokenManagerConfig) *TokenManager {
	if cfg.AuthURL == "" {
		cfg.AuthURL = AuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = TokenURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = defaultScopes
	}

	return &TokenManager{
		tracer:       cfg.Tracer,
		httpClient:   cfg.HTTPClient,
		cache:        cfg.Cache,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		tokenURL:     cfg.TokenURL,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		now: time.Now,
	}
}

// AuthCodeURL returns the browser redirect target for user consent.
func (m *TokenManager) AuthCodeURL(state string) string {
	return m.oauthConfig.AuthCodeURL(state, oauth2.SetAuthURLParam("show_dialog", "false"))
}

// ClientToken returns the cached app-level token, performing a
// client-credentials exchange when the cached one is absent or
// expired. Concurrent callers may race to refresh; refreshing twice is
// idempotent, at most a wasted upstream call.
func (m *TokenManager) ClientToken(ctx context.Context) (string, error) {
	ctx, span := m.tracer.Start(ctx, "TokenManager.ClientToken")
	defer span.End()

	cached, err := m.cache.Get(ctx, clientTokenKey)
	if err == nil {
		var token ClientToken
		if err := json.Unmarshal([]byte(cached), &token); err == nil && m.now().Before(token.ExpiresAt) {
			return token.AccessToken, nil
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		return "", &AuthError{Op: "client_credentials", Err: err}
	}

	span.AddEvent("Fetching a new client-credentials token")

	resp, err := m.postClientCredentials(ctx)
	if err != nil {
		return "", err
	}

	expiresIn := time.Duration(resp.ExpiresIn) * time.Second
	token := ClientToken{
		AccessToken: resp.AccessToken,
		ExpiresAt:   m.now().Add(expiresIn),
	}

	marshaled, err := json.Marshal(token)
	if err != nil {
		return "", &AuthError{Op: "client_credentials", Err: err}
	}
	if err := m.cache.Set(ctx, clientTokenKey, marshaled, expiresIn); err != nil {
		return "", &AuthError{Op: "client_credentials", Err: err}
	}

	return token.AccessToken, nil
}

func (m *TokenManager) postClientCredentials(ctx context.Context) (*tokenResponse, error) {
	form := url.Values{"grant_type": {"client_credentials"}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &AuthError{Op: "client_credentials", Err: err}
	}
	req.SetBasicAuth(m.clientID, m.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return m.postToken(req, "client_credentials")
}

// ExchangeCode trades an authorization code for a user token set.
func (m *TokenManager) ExchangeCode(ctx context.Context, code string) (*UserTokenSet, error) {
	ctx, span := m.tracer.Start(ctx, "TokenManager.ExchangeCode")
	defer span.End()

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)

	token, err := m.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, &AuthError{Op: "authorization_code", Err: err}
	}

	set := &UserTokenSet{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
	}
	if scope, ok := token.Extra("scope").(string); ok {
		set.Scope = scope
	}
	if !token.Expiry.IsZero() {
		set.ExpiresIn = int(time.Until(token.Expiry).Seconds())
	}

	return set, nil
}

// RefreshUserToken trades a refresh token for a fresh access token.
// Spotify does not always rotate the refresh token; when the response
// omits one, the passed-in token is carried over.
func (m *TokenManager) RefreshUserToken(ctx context.Context, refreshToken string) (*UserTokenSet, error) {
	ctx, span := m.tracer.Start(ctx, "TokenManager.RefreshUserToken")
	defer span.End()

	if refreshToken == "" {
		return nil, &AuthError{Op: "refresh_token", Err: ErrMissingToken}
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {m.clientID},
		"client_secret": {m.clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &AuthError{Op: "refresh_token", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.postToken(req, "refresh_token")
	if err != nil {
		return nil, err
	}

	set := &UserTokenSet{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
		Scope:        resp.Scope,
		ExpiresIn:    resp.ExpiresIn,
	}
	if set.RefreshToken == "" {
		set.RefreshToken = refreshToken
	}

	return set, nil
}

// BuildAuthHeader turns an access token into an Authorization header
// value. An empty token is an error: an unauthenticated request is
// never silently sent upstream.
func (m *TokenManager) BuildAuthHeader(token string) (string, error) {
	if token == "" {
		return "", &AuthError{Op: "build_header", Err: ErrMissingToken}
	}
	return "Bearer " + token, nil
}

func (m *TokenManager) postToken(req *http.Request, op string) (*tokenResponse, error) {
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, &AuthError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &AuthError{Op: op, Err: fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, body)}
	}

	var parsed tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &AuthError{Op: op, Err: fmt.Errorf("failed to decode token response: %w", err)}
	}
	if parsed.AccessToken == "" {
		return nil, &AuthError{Op: op, Err: errors.New("token response has no access_token")}
	}

	return &parsed, nil
}
