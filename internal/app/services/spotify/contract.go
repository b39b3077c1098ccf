package spotify

import (
	"context"

	spotifyapi "github.com/davidrhys/genrescout/internal/infra/repository/spotify"
)

type Client interface {
	Categories(ctx context.Context, authHeader string) ([]string, error)
	SearchArtistsByGenre(ctx context.Context, authHeader, genre string, limit int) ([]spotifyapi.Artist, error)
	Artist(ctx context.Context, authHeader, id string) (*spotifyapi.Artist, error)
	Me(ctx context.Context, authHeader string) (*spotifyapi.User, error)
	TopArtists(ctx context.Context, authHeader string, limit int, timeRange spotifyapi.TimeRange) ([]spotifyapi.Artist, error)
}

type TokenSource interface {
	ClientToken(ctx context.Context) (string, error)
	RefreshUserToken(ctx context.Context, refreshToken string) (*spotifyapi.UserTokenSet, error)
	BuildAuthHeader(token string) (string, error)
}
