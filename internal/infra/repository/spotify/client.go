package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const BaseURL = "https://api.spotify.com/v1"

type ClientConfig struct {
	// BaseURL defaults to the public Spotify Web API.
	BaseURL    string
	HTTPClient *http.Client
	Tracer     trace.Tracer
}

// Client is a thin wrapper over the Web API endpoints the application
// consumes. It never retries and never swallows failures: every
// non-2xx status and every transport error surfaces as a RequestError
// for the caller to handle.
type Client struct {
	tracer     trace.Tracer
	httpClient *http.Client
	baseURL    string
}

func New(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = BaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}

	return &Client{
		tracer:     cfg.Tracer,
		httpClient: cfg.HTTPClient,
		baseURL:    cfg.BaseURL,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, authHeader string, dest any) error {
	apiURL := c.baseURL + path
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return &RequestError{Err: err}
	}
	req.Header.Set("Authorization", authHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("GET %s returned %d", path, resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &RequestError{Err: fmt.Errorf("failed to decode %s response: %w", path, err)}
	}

	return nil
}

// Categories fetches the browse categories and returns their names.
func (c *Client) Categories(ctx context.Context, authHeader string) ([]string, error) {
	ctx, span := c.tracer.Start(ctx, "Client.Categories")
	defer span.End()

	var parsed categoriesResponse
	if err := c.get(ctx, "/browse/categories", nil, authHeader, &parsed); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(parsed.Categories.Items))
	for _, item := range parsed.Categories.Items {
		names = append(names, item.Name)
	}

	return names, nil
}

// SearchArtistsByGenre searches artists tagged with the given genre
// and returns the raw item list. The genre filter is lowercased and
// percent-encoded as genre:"<genre>" so multi-word genres and reserved
// characters survive URL transport.
func (c *Client) SearchArtistsByGenre(ctx context.Context, authHeader, genre string, limit int) ([]Artist, error) {
	ctx, span := c.tracer.Start(ctx, "Client.SearchArtistsByGenre")
	defer span.End()

	span.SetAttributes(attribute.String("genre", genre))

	query := url.Values{}
	query.Set("q", fmt.Sprintf("genre:%q", strings.ToLower(genre)))
	query.Set("type", "artist")
	query.Set("limit", strconv.Itoa(limit))

	var parsed searchResponse
	if err := c.get(ctx, "/search", query, authHeader, &parsed); err != nil {
		return nil, err
	}

	return parsed.Artists.Items, nil
}

// Artist fetches one artist's full object.
func (c *Client) Artist(ctx context.Context, authHeader, id string) (*Artist, error) {
	ctx, span := c.tracer.Start(ctx, "Client.Artist")
	defer span.End()

	span.SetAttributes(attribute.String("artist_id", id))

	var artist Artist
	if err := c.get(ctx, "/artists/"+url.PathEscape(id), nil, authHeader, &artist); err != nil {
		return nil, err
	}

	return &artist, nil
}

// Me fetches the profile of the user the token belongs to.
func (c *Client) Me(ctx context.Context, authHeader string) (*User, error) {
	ctx, span := c.tracer.Start(ctx, "Client.Me")
	defer span.End()

	var user User
	if err := c.get(ctx, "/me", nil, authHeader, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// TopArtists fetches the user's most listened artists for the given
// time range.
func (c *Client) TopArtists(ctx context.Context, authHeader string, limit int, timeRange TimeRange) ([]Artist, error) {
	ctx, span := c.tracer.Start(ctx, "Client.TopArtists")
	defer span.End()

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("time_range", string(timeRange))

	var parsed topArtistsResponse
	if err := c.get(ctx, "/me/top/artists", query, authHeader, &parsed); err != nil {
		return nil, err
	}

	return parsed.Items, nil
}
