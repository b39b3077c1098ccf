package spotify

import (
	"context"
	"errors"
	"time"

	"github.com/davidrhys/genrescout/internal/infra/repository/cache"
	spotifyapi "github.com/davidrhys/genrescout/internal/infra/repository/spotify"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrNoArtistsFound is a domain condition, not a fault: the genre
	// exists but the search came back empty.
	ErrNoArtistsFound = errors.New("no artists found for genre")
)

const (
	genresKey    = "genres"
	genresTTL    = 24 * time.Hour
	artistsTTL   = time.Hour
	topArtistsN  = 50
	defaultLimit = 20
)

type Options struct {
	// SearchLimit bounds genre searches; defaults to 20.
	SearchLimit int
	// StaticGenres, when non-empty, is served instead of the browse
	// categories endpoint (no-auth mode).
	StaticGenres []string
}

// Service composes the token manager, API client and cache into the
// operations the handlers consume.
type Service struct {
	tracer      trace.Tracer
	client      Client
	tokens      TokenSource
	cache       cache.Store
	searchLimit int
	static      []string

	now func() time.Time
}

func New(
	tracer trace.Tracer,
	client Client,
	tokens TokenSource,
	store cache.Store,
	opts Options,
) *Service {
	limit := opts.SearchLimit
	if limit <= 0 {
		limit = defaultLimit
	}

	return &Service{
		tracer:      tracer,
		client:      client,
		tokens:      tokens,
		cache:       store,
		searchLimit: limit,
		static:      opts.StaticGenres,
		now:         time.Now,
	}
}

// UserSession carries the per-user tokens a session store persisted.
// A nil *UserSession means anonymous traffic.
type UserSession struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Auth is a resolved Authorization header, opaque to handlers.
type Auth struct {
	header string
}

// ResolveAuth applies the token policy: a session's access token when
// still valid, a refresh when it is stale, the cached app-level token
// for anonymous callers. When a refresh happened the rotated token set
// is returned alongside so the caller can persist it.
func (s *Service) ResolveAuth(ctx context.Context, sess *UserSession) (Auth, *spotifyapi.UserTokenSet, error) {
	ctx, span := s.tracer.Start(ctx, "Service.ResolveAuth")
	defer span.End()

	if sess == nil {
		token, err := s.tokens.ClientToken(ctx)
		if err != nil {
			return Auth{}, nil, err
		}
		header, err := s.tokens.BuildAuthHeader(token)
		if err != nil {
			return Auth{}, nil, err
		}
		return Auth{header: header}, nil, nil
	}

	if sess.AccessToken != "" && s.now().Before(sess.ExpiresAt) {
		header, err := s.tokens.BuildAuthHeader(sess.AccessToken)
		if err != nil {
			return Auth{}, nil, err
		}
		return Auth{header: header}, nil, nil
	}

	if sess.RefreshToken == "" {
		return Auth{}, nil, &spotifyapi.RequestError{Err: errors.New("session has no refresh token")}
	}

	span.AddEvent("Refreshing user token")

	refreshed, err := s.tokens.RefreshUserToken(ctx, sess.RefreshToken)
	if err != nil {
		return Auth{}, nil, err
	}
	header, err := s.tokens.BuildAuthHeader(refreshed.AccessToken)
	if err != nil {
		return Auth{}, nil, err
	}

	return Auth{header: header}, refreshed, nil
}

// clientAuth is the app-level shortcut for operations that never run
// with a user token.
func (s *Service) clientAuth(ctx context.Context) (Auth, error) {
	auth, _, err := s.ResolveAuth(ctx, nil)
	return auth, err
}
