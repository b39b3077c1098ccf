package sessions_test

import (
	"testing"
	"time"

	"github.com/davidrhys/genrescout/internal/infra/repository/sessions"
	spotifyapi "github.com/davidrhys/genrescout/internal/infra/repository/spotify"
	"github.com/stretchr/testify/assert"
)

func TestSession_Apply(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("full token set", func(t *testing.T) {
		sess := &sessions.Session{ID: "s"}
		sess.Apply(&spotifyapi.UserTokenSet{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			TokenType:    "Bearer",
			Scope:        "user-top-read",
			ExpiresIn:    3600,
		}, now)

		assert.Equal(t, "access-1", sess.AccessToken)
		assert.Equal(t, "refresh-1", sess.RefreshToken)
		assert.Equal(t, "Bearer", sess.TokenType)
		assert.Equal(t, "user-top-read", sess.Scope)
		assert.Equal(t, now.Add(time.Hour), sess.ExpiresAt)
	})

	t.Run("refresh without rotation keeps the old refresh token", func(t *testing.T) {
		sess := &sessions.Session{
			ID:           "s",
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
		}
		sess.Apply(&spotifyapi.UserTokenSet{
			AccessToken: "access-2",
			ExpiresIn:   3600,
		}, now)

		assert.Equal(t, "access-2", sess.AccessToken)
		assert.Equal(t, "refresh-1", sess.RefreshToken)
	})

	t.Run("rotation replaces the refresh token", func(t *testing.T) {
		sess := &sessions.Session{
			ID:           "s",
			RefreshToken: "refresh-1",
		}
		sess.Apply(&spotifyapi.UserTokenSet{
			AccessToken:  "access-2",
			RefreshToken: "refresh-2",
			ExpiresIn:    3600,
		}, now)

		assert.Equal(t, "refresh-2", sess.RefreshToken)
	})
}
