package spotify

import (
	"context"

	appspotify "github.com/davidrhys/genrescout/internal/app/services/spotify"
	"github.com/davidrhys/genrescout/internal/infra/repository/sessions"
	spotifyapi "github.com/davidrhys/genrescout/internal/infra/repository/spotify"
)

type Service interface {
	ResolveAuth(ctx context.Context, sess *appspotify.UserSession) (appspotify.Auth, *spotifyapi.UserTokenSet, error)
	ListGenres(ctx context.Context) ([]string, error)
	ArtistsForGenre(ctx context.Context, auth appspotify.Auth, genre string) ([]string, error)
	ArtistDetail(ctx context.Context, auth appspotify.Auth, id string) (*spotifyapi.ArtistDetail, error)
	BulkArtistDetails(ctx context.Context, auth appspotify.Auth, ids []string) []spotifyapi.ArtistDetail
	UserProfile(ctx context.Context, auth appspotify.Auth) (*spotifyapi.UserProfile, error)
	TopGenres(ctx context.Context, auth appspotify.Auth, limit int) ([]string, error)
}

type SessionStore interface {
	Create(ctx context.Context, set *spotifyapi.UserTokenSet) (*sessions.Session, error)
	Get(ctx context.Context, id string) (*sessions.Session, error)
	Update(ctx context.Context, sess *sessions.Session) error
	Delete(ctx context.Context, id string) error
}

type Authenticator interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*spotifyapi.UserTokenSet, error)
}
