package mocks

import (
	"context"

	spotifyapi "github.com/davidrhys/genrescout/internal/infra/repository/spotify"
	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Categories(ctx context.Context, authHeader string) ([]string, error) {
	args := m.Called(ctx, authHeader)
	var genres []string
	if args.Get(0) != nil {
		genres = args.Get(0).([]string)
	}
	return genres, args.Error(1)
}

func (m *MockClient) SearchArtistsByGenre(ctx context.Context, authHeader, genre string, limit int) ([]spotifyapi.Artist, error) {
	args := m.Called(ctx, authHeader, genre, limit)
	var artists []spotifyapi.Artist
	if args.Get(0) != nil {
		artists = args.Get(0).([]spotifyapi.Artist)
	}
	return artists, args.Error(1)
}

func (m *MockClient) Artist(ctx context.Context, authHeader, id string) (*spotifyapi.Artist, error) {
	args := m.Called(ctx, authHeader, id)
	var artist *spotifyapi.Artist
	if args.Get(0) != nil {
		artist = args.Get(0).(*spotifyapi.Artist)
	}
	return artist, args.Error(1)
}

func (m *MockClient) Me(ctx context.Context, authHeader string) (*spotifyapi.User, error) {
	args := m.Called(ctx, authHeader)
	var user *spotifyapi.User
	if args.Get(0) != nil {
		user = args.Get(0).(*spotifyapi.User)
	}
	return user, args.Error(1)
}

func (m *MockClient) TopArtists(ctx context.Context, authHeader string, limit int, timeRange spotifyapi.TimeRange) ([]spotifyapi.Artist, error) {
	args := m.Called(ctx, authHeader, limit, timeRange)
	var artists []spotifyapi.Artist
	if args.Get(0) != nil {
		artists = args.Get(0).([]spotifyapi.Artist)
	}
	return artists, args.Error(1)
}

type MockTokenSource struct {
	mock.Mock
}

func (m *MockTokenSource) ClientToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockTokenSource) RefreshUserToken(ctx context.Context, refreshToken string) (*spotifyapi.UserTokenSet, error) {
	args := m.Called(ctx, refreshToken)
	var set *spotifyapi.UserTokenSet
	if args.Get(0) != nil {
		set = args.Get(0).(*spotifyapi.UserTokenSet)
	}
	return set, args.Error(1)
}

func (m *MockTokenSource) BuildAuthHeader(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}
