package spotify_test

import (
	"context"
	"sync"
	"testing"
	"time"

	appspotify "github.com/davidrhys/genrescout/internal/app/services/spotify"
	"github.com/davidrhys/genrescout/internal/app/services/spotify/mocks"
	"github.com/davidrhys/genrescout/internal/infra/repository/cache"
	spotifyapi "github.com/davidrhys/genrescout/internal/infra/repository/spotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

type memStore struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMemStore() *memStore {
	return &memStore{entries: map[string]string{}}
}

func (s *memStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.entries[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return value, nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = string(value)
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

type fixture struct {
	service *appspotify.Service
	client  *mocks.MockClient
	tokens  *mocks.MockTokenSource
	store   *memStore
}

func newFixture(t *testing.T, opts appspotify.Options) *fixture {
	t.Helper()

	client := &mocks.MockClient{}
	tokens := &mocks.MockTokenSource{}
	store := newMemStore()

	t.Cleanup(func() {
		client.AssertExpectations(t)
		tokens.AssertExpectations(t)
	})

	return &fixture{
		service: appspotify.New(otel.Tracer("test"), client, tokens, store, opts),
		client:  client,
		tokens:  tokens,
		store:   store,
	}
}

func (f *fixture) expectClientToken() {
	f.tokens.On("ClientToken", mock.Anything).Return("app-token", nil)
	f.tokens.On("BuildAuthHeader", "app-token").Return("Bearer app-token", nil)
}

func (f *fixture) anonymousAuth(t *testing.T) appspotify.Auth {
	t.Helper()
	auth, refreshed, err := f.service.ResolveAuth(context.Background(), nil)
	require.NoError(t, err)
	require.Nil(t, refreshed)
	return auth
}

func TestService_ArtistsForGenre(t *testing.T) {
	t.Run("second call within TTL is served from cache", func(t *testing.T) {
		f := newFixture(t, appspotify.Options{})
		f.expectClientToken()
		f.client.On("SearchArtistsByGenre", mock.Anything, "Bearer app-token", "Techno", 20).
			Return([]spotifyapi.Artist{{ID: "a1"}, {ID: "a2"}}, nil).
			Once()

		auth := f.anonymousAuth(t)

		ids, err := f.service.ArtistsForGenre(context.Background(), auth, "Techno")
		require.NoError(t, err)
		assert.Equal(t, []string{"a1", "a2"}, ids)

		ids, err = f.service.ArtistsForGenre(context.Background(), auth, "Techno")
		require.NoError(t, err)
		assert.Equal(t, []string{"a1", "a2"}, ids)
	})

	t.Run("cache key is lowercased", func(t *testing.T) {
		f := newFixture(t, appspotify.Options{})
		f.expectClientToken()
		f.client.On("SearchArtistsByGenre", mock.Anything, "Bearer app-token", mock.Anything, 20).
			Return([]spotifyapi.Artist{{ID: "a1"}}, nil).
			Once()

		auth := f.anonymousAuth(t)

		_, err := f.service.ArtistsForGenre(context.Background(), auth, "Hip-Hop")
		require.NoError(t, err)

		// A different casing of the same genre must hit the same entry.
		_, err = f.service.ArtistsForGenre(context.Background(), auth, "hip-hop")
		require.NoError(t, err)
	})

	t.Run("empty result set is ErrNoArtistsFound and not cached", func(t *testing.T) {
		f := newFixture(t, appspotify.Options{})
		f.expectClientToken()
		f.client.On("SearchArtistsByGenre", mock.Anything, "Bearer app-token", "polka grindcore", 20).
			Return([]spotifyapi.Artist{}, nil).
			Twice()

		auth := f.anonymousAuth(t)

		_, err := f.service.ArtistsForGenre(context.Background(), auth, "polka grindcore")
		assert.ErrorIs(t, err, appspotify.ErrNoArtistsFound)

		_, err = f.service.ArtistsForGenre(context.Background(), auth, "polka grindcore")
		assert.ErrorIs(t, err, appspotify.ErrNoArtistsFound)
	})

	t.Run("upstream failure propagates", func(t *testing.T) {
		f := newFixture(t, appspotify.Options{})
		f.expectClientToken()
		f.client.On("SearchArtistsByGenre", mock.Anything, "Bearer app-token", "techno", 20).
			Return(nil, &spotifyapi.RequestError{Status: 500}).
			Once()

		auth := f.anonymousAuth(t)

		_, err := f.service.ArtistsForGenre(context.Background(), auth, "techno")
		var reqErr *spotifyapi.RequestError
		assert.ErrorAs(t, err, &reqErr)
	})
}

func TestService_ArtistDetail(t *testing.T) {
	raw := &spotifyapi.Artist{ID: "a1", Name: "Kraftwerk", Popularity: 70, Genres: []string{"electro"}}

	f := newFixture(t, appspotify.Options{})
	f.expectClientToken()
	f.client.On("Artist", mock.Anything, "Bearer app-token", "a1").
		Return(raw, nil).
		Once()

	auth := f.anonymousAuth(t)

	first, err := f.service.ArtistDetail(context.Background(), auth, "a1")
	require.NoError(t, err)

	second, err := f.service.ArtistDetail(context.Background(), auth, "a1")
	require.NoError(t, err)

	// Repeated calls within the TTL return identical projections
	// without a second upstream fetch.
	assert.Equal(t, first, second)
	assert.Equal(t, "a1", first.SpotifyID)
	assert.Equal(t, "Kraftwerk", first.Name)
}

func TestService_BulkArtistDetails(t *testing.T) {
	f := newFixture(t, appspotify.Options{})
	f.expectClientToken()
	f.client.On("Artist", mock.Anything, "Bearer app-token", "a").
		Return(&spotifyapi.Artist{ID: "a", Name: "First"}, nil).
		Once()
	f.client.On("Artist", mock.Anything, "Bearer app-token", "b").
		Return(nil, &spotifyapi.RequestError{Status: 404}).
		Once()
	f.client.On("Artist", mock.Anything, "Bearer app-token", "c").
		Return(&spotifyapi.Artist{ID: "c", Name: "Third"}, nil).
		Once()

	auth := f.anonymousAuth(t)

	details := f.service.BulkArtistDetails(context.Background(), auth, []string{"a", "b", "c"})

	// One failing lookup is skipped; the rest keep their input order.
	require.Len(t, details, 2)
	assert.Equal(t, "a", details[0].SpotifyID)
	assert.Equal(t, "c", details[1].SpotifyID)
}

func TestService_TopGenres(t *testing.T) {
	f := newFixture(t, appspotify.Options{})
	f.expectClientToken()
	f.client.On("TopArtists", mock.Anything, "Bearer app-token", 50, spotifyapi.TimeRangeLongTerm).
		Return([]spotifyapi.Artist{
			{ID: "a", Genres: []string{"rock", "pop"}},
			{ID: "b", Genres: []string{"rock"}},
			{ID: "c", Genres: []string{"jazz"}},
		}, nil).
		Twice()

	auth := f.anonymousAuth(t)

	genres, err := f.service.TopGenres(context.Background(), auth, 3)
	require.NoError(t, err)
	// rock has frequency 2, pop and jazz tie at 1 and keep
	// first-encounter order.
	assert.Equal(t, []string{"rock", "pop", "jazz"}, genres)

	genres, err = f.service.TopGenres(context.Background(), auth, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"rock"}, genres)
}

func TestService_ListGenres(t *testing.T) {
	t.Run("static mode never calls upstream", func(t *testing.T) {
		f := newFixture(t, appspotify.Options{StaticGenres: []string{"rock", "jazz"}})

		genres, err := f.service.ListGenres(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"rock", "jazz"}, genres)
	})

	t.Run("fetches categories once and caches", func(t *testing.T) {
		f := newFixture(t, appspotify.Options{})
		f.expectClientToken()
		f.client.On("Categories", mock.Anything, "Bearer app-token").
			Return([]string{"Top Lists", "Hip-Hop"}, nil).
			Once()

		genres, err := f.service.ListGenres(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"Top Lists", "Hip-Hop"}, genres)

		genres, err = f.service.ListGenres(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"Top Lists", "Hip-Hop"}, genres)
	})
}

func TestService_RefreshGenres(t *testing.T) {
	f := newFixture(t, appspotify.Options{})
	f.expectClientToken()
	f.client.On("Categories", mock.Anything, "Bearer app-token").
		Return([]string{"Top Lists"}, nil).
		Twice()

	_, err := f.service.ListGenres(context.Background())
	require.NoError(t, err)

	// RefreshGenres bypasses the cache and recomputes.
	_, err = f.service.RefreshGenres(context.Background())
	require.NoError(t, err)

	// The refreshed value is observable through the cached path.
	genres, err := f.service.ListGenres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Top Lists"}, genres)
}

func TestService_ResolveAuth(t *testing.T) {
	t.Run("anonymous uses the client-credentials token", func(t *testing.T) {
		f := newFixture(t, appspotify.Options{})
		f.expectClientToken()

		_, refreshed, err := f.service.ResolveAuth(context.Background(), nil)
		require.NoError(t, err)
		assert.Nil(t, refreshed)
	})

	t.Run("valid session token is used directly", func(t *testing.T) {
		f := newFixture(t, appspotify.Options{})
		f.tokens.On("BuildAuthHeader", "user-token").Return("Bearer user-token", nil)

		sess := &appspotify.UserSession{
			AccessToken:  "user-token",
			RefreshToken: "refresh-1",
			ExpiresAt:    time.Now().Add(time.Hour),
		}

		_, refreshed, err := f.service.ResolveAuth(context.Background(), sess)
		require.NoError(t, err)
		assert.Nil(t, refreshed)
	})

	t.Run("stale access token is refreshed", func(t *testing.T) {
		f := newFixture(t, appspotify.Options{})
		f.tokens.On("RefreshUserToken", mock.Anything, "refresh-1").
			Return(&spotifyapi.UserTokenSet{AccessToken: "user-token-2", RefreshToken: "refresh-1", ExpiresIn: 3600}, nil).
			Once()
		f.tokens.On("BuildAuthHeader", "user-token-2").Return("Bearer user-token-2", nil)

		sess := &appspotify.UserSession{
			AccessToken:  "user-token",
			RefreshToken: "refresh-1",
			ExpiresAt:    time.Now().Add(-time.Minute),
		}

		_, refreshed, err := f.service.ResolveAuth(context.Background(), sess)
		require.NoError(t, err)
		require.NotNil(t, refreshed)
		assert.Equal(t, "user-token-2", refreshed.AccessToken)
	})

	t.Run("stale session without refresh token fails", func(t *testing.T) {
		f := newFixture(t, appspotify.Options{})

		sess := &appspotify.UserSession{
			AccessToken: "user-token",
			ExpiresAt:   time.Now().Add(-time.Minute),
		}

		_, _, err := f.service.ResolveAuth(context.Background(), sess)
		var reqErr *spotifyapi.RequestError
		assert.ErrorAs(t, err, &reqErr)
	})
}
