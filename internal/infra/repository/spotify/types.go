// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package spotify

import "time"

// ClientToken is the app-level client-credentials token as stored in
// the shared cache.
type ClientToken struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// UserTokenSet is the result of an authorization-code exchange or a
// refresh-token grant. The caller owns persistence; this package only
// produces and consumes the values.
type UserTokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	ExpiresIn    int    `json:"expires_in"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type followers struct {
	Total int `json:"total"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// Artist is the raw upstream artist object, limited to the fields the
// application consumes.
type Artist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Popularity   int          `json:"popularity"`
	Genres       []string     `json:"genres"`
	Followers    followers    `json:"followers"`
	Images       []Image      `json:"images"`
	ExternalURLs externalURLs `json:"external_urls"`
}

// ArtistDetail is the projection of an Artist served to callers.
type ArtistDetail struct {
	SpotifyID   string   `json:"spotify_id"`
	Name        string   `json:"name"`
	Popularity  int      `json:"popularity"`
	Genres      []string `json:"genres"`
	Followers   int      `json:"followers"`
	ImageURL    *string  `json:"image_url"`
	ExternalURL string   `json:"external_url"`
}

// Project reduces the raw artist object to the subset of fields the
// application exposes.
func (a Artist) Project() ArtistDetail {
	detail := ArtistDetail{
		SpotifyID:   a.ID,
		Name:        a.Name,
		Popularity:  a.Popularity,
		Genres:      a.Genres,
		Followers:   a.Followers.Total,
		ExternalURL: a.ExternalURLs.Spotify,
	}
	if len(a.Images) > 0 {
		url := a.Images[0].URL
		detail.ImageURL = &url
	}
	return detail
}

// User is the raw /me response subset.
type User struct {
	ID           string       `json:"id"`
	DisplayName  string       `json:"display_name"`
	Email        string       `json:"email"`
	Country      string       `json:"country"`
	Followers    followers    `json:"followers"`
	Images       []Image      `json:"images"`
	ExternalURLs externalURLs `json:"external_urls"`
}

// UserProfile is the projection of a User served to callers. It is
// token-scoped and never cached.
type UserProfile struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Email       string  `json:"email"`
	ProfileURL  string  `json:"profile_url"`
	ImageURL    *string `json:"image_url"`
	Country     string  `json:"country"`
	Followers   int     `json:"followers"`
}

func (u User) Project() UserProfile {
	profile := UserProfile{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		ProfileURL:  u.ExternalURLs.Spotify,
		Country:     u.Country,
		Followers:   u.Followers.Total,
	}
	if len(u.Images) > 0 {
		url := u.Images[0].URL
		profile.ImageURL = &url
	}
	return profile
}

type searchResponse struct {
	Artists struct {
		Items []Artist `json:"items"`
	} `json:"artists"`
}

type categoriesResponse struct {
	Categories struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	} `json:"categories"`
}

type topArtistsResponse struct {
	Items []Artist `json:"items"`
}

// TimeRange selects the listening-history window for top-artist calls.
type TimeRange string

const (
	TimeRangeShortTerm  TimeRange = "short_term"
	TimeRangeMediumTerm TimeRange = "medium_term"
	TimeRangeLongTerm   TimeRange = "long_term"
)
