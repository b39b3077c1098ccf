// Package sessions persists per-user token sets in Redis, keyed by an
// opaque session id carried in a cookie.
package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	spotifyapi "github.com/davidrhys/genrescout/internal/infra/repository/spotify"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("sessions: not found")

type Session struct {
	ID           string    `json:"-"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	Scope        string    `json:"scope"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Apply folds a token set into the session, keeping the existing
// refresh token when the response did not rotate it.
func (s *Session) Apply(set *spotifyapi.UserTokenSet, now time.Time) {
	s.AccessToken = set.AccessToken
	if set.RefreshToken != "" {
		s.RefreshToken = set.RefreshToken
	}
	if set.TokenType != "" {
		s.TokenType = set.TokenType
	}
	if set.Scope != "" {
		s.Scope = set.Scope
	}
	s.ExpiresAt = now.Add(time.Duration(set.ExpiresIn) * time.Second)
}

type Store struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewStore(redisClient *redis.Client, ttl time.Duration) *Store {
	return &Store{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Create stores a fresh session for the token set and returns it.
func (s *Store) Create(ctx context.Context, set *spotifyapi.UserTokenSet) (*Session, error) {
	sess := &Session{ID: uuid.NewString()}
	sess.Apply(set, time.Now())

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	value, err := s.redisClient.Get(ctx, sessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal([]byte(value), &sess); err != nil {
		return nil, err
	}
	sess.ID = id

	return &sess, nil
}

// Update replaces the stored session wholesale.
func (s *Store) Update(ctx context.Context, sess *Session) error {
	return s.save(ctx, sess)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.redisClient.Del(ctx, sessionKey(id)).Err()
}

func (s *Store) save(ctx context.Context, sess *Session) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	marshaled, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return s.redisClient.Set(ctx, sessionKey(sess.ID), marshaled, s.ttl).Err()
}
