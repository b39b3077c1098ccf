package mocks

import (
	"context"

	appspotify "github.com/davidrhys/genrescout/internal/app/services/spotify"
	"github.com/davidrhys/genrescout/internal/infra/repository/sessions"
	spotifyapi "github.com/davidrhys/genrescout/internal/infra/repository/spotify"
	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ResolveAuth(ctx context.Context, sess *appspotify.UserSession) (appspotify.Auth, *spotifyapi.UserTokenSet, error) {
	args := m.Called(ctx, sess)
	var set *spotifyapi.UserTokenSet
	if args.Get(1) != nil {
		set = args.Get(1).(*spotifyapi.UserTokenSet)
	}
	return args.Get(0).(appspotify.Auth), set, args.Error(2)
}

func (m *MockService) ListGenres(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	var genres []string
	if args.Get(0) != nil {
		genres = args.Get(0).([]string)
	}
	return genres, args.Error(1)
}

func (m *MockService) ArtistsForGenre(ctx context.Context, auth appspotify.Auth, genre string) ([]string, error) {
	args := m.Called(ctx, auth, genre)
	var ids []string
	if args.Get(0) != nil {
		ids = args.Get(0).([]string)
	}
	return ids, args.Error(1)
}

func (m *MockService) ArtistDetail(ctx context.Context, auth appspotify.Auth, id string) (*spotifyapi.ArtistDetail, error) {
	args := m.Called(ctx, auth, id)
	var detail *spotifyapi.ArtistDetail
	if args.Get(0) != nil {
		detail = args.Get(0).(*spotifyapi.ArtistDetail)
	}
	return detail, args.Error(1)
}

func (m *MockService) BulkArtistDetails(ctx context.Context, auth appspotify.Auth, ids []string) []spotifyapi.ArtistDetail {
	args := m.Called(ctx, auth, ids)
	var details []spotifyapi.ArtistDetail
	if args.Get(0) != nil {
		details = args.Get(0).([]spotifyapi.ArtistDetail)
	}
	return details
}

func (m *MockService) UserProfile(ctx context.Context, auth appspotify.Auth) (*spotifyapi.UserProfile, error) {
	args := m.Called(ctx, auth)
	var profile *spotifyapi.UserProfile
	if args.Get(0) != nil {
		profile = args.Get(0).(*spotifyapi.UserProfile)
	}
	return profile, args.Error(1)
}

func (m *MockService) TopGenres(ctx context.Context, auth appspotify.Auth, limit int) ([]string, error) {
	args := m.Called(ctx, auth, limit)
	var genres []string
	if args.Get(0) != nil {
		genres = args.Get(0).([]string)
	}
	return genres, args.Error(1)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, set *spotifyapi.UserTokenSet) (*sessions.Session, error) {
	args := m.Called(ctx, set)
	var sess *sessions.Session
	if args.Get(0) != nil {
		sess = args.Get(0).(*sessions.Session)
	}
	return sess, args.Error(1)
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*sessions.Session, error) {
	args := m.Called(ctx, id)
	var sess *sessions.Session
	if args.Get(0) != nil {
		sess = args.Get(0).(*sessions.Session)
	}
	return sess, args.Error(1)
}

func (m *MockSessionStore) Update(ctx context.Context, sess *sessions.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockAuthenticator) ExchangeCode(ctx context.Context, code string) (*spotifyapi.UserTokenSet, error) {
	args := m.Called(ctx, code)
	var set *spotifyapi.UserTokenSet
	if args.Get(0) != nil {
		set = args.Get(0).(*spotifyapi.UserTokenSet)
	}
	return set, args.Error(1)
}
