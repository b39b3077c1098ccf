package spotify

import (
	"errors"
	"net/http"
	"time"

	appspotify "github.com/davidrhys/genrescout/internal/app/services/spotify"
	"github.com/davidrhys/genrescout/internal/infra/repository/sessions"
	spotifyapi "github.com/davidrhys/genrescout/internal/infra/repository/spotify"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

const (
	sessionCookie = "sid"
	stateCookie   = "oauth_state"
)

type Handler struct {
	tracer   trace.Tracer
	service  Service
	sessions SessionStore
	auth     Authenticator
}

func New(
	tracer trace.Tracer,
	service Service,
	sessionStore SessionStore,
	auth Authenticator,
) *Handler {
	return &Handler{
		tracer:   tracer,
		service:  service,
		sessions: sessionStore,
		auth:     auth,
	}
}

// session resolves the sid cookie into the stored session, or nil for
// anonymous callers. A stale or unknown cookie is treated as anonymous.
func (h *Handler) session(c *gin.Context) *sessions.Session {
	id, err := c.Cookie(sessionCookie)
	if err != nil || id == "" {
		return nil
	}

	sess, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, sessions.ErrNotFound) {
			logrus.WithError(err).Warn("Failed to load session")
		}
		return nil
	}

	return sess
}

// resolveAuth applies the facade's token policy for the request and
// persists any rotated token set back into the session store.
func (h *Handler) resolveAuth(c *gin.Context, sess *sessions.Session) (appspotify.Auth, error) {
	var userSess *appspotify.UserSession
	if sess != nil {
		userSess = &appspotify.UserSession{
			AccessToken:  sess.AccessToken,
			RefreshToken: sess.RefreshToken,
			ExpiresAt:    sess.ExpiresAt,
		}
	}

	auth, refreshed, err := h.service.ResolveAuth(c.Request.Context(), userSess)
	if err != nil {
		return appspotify.Auth{}, err
	}

	if refreshed != nil && sess != nil {
		sess.Apply(refreshed, time.Now())
		if err := h.sessions.Update(c.Request.Context(), sess); err != nil {
			logrus.WithError(err).Warn("Failed to persist refreshed session")
		}
	}

	return auth, nil
}

// renderError maps service errors to user-facing responses. Raw
// upstream error bodies never reach the client.
func (h *Handler) renderError(c *gin.Context, err error) {
	var authErr *spotifyapi.AuthError
	var reqErr *spotifyapi.RequestError

	switch {
	case errors.Is(err, appspotify.ErrNoArtistsFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no artists found, try another genre"})
	case errors.As(err, &authErr), errors.As(err, &reqErr):
		logrus.WithError(err).Error("Spotify request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "music service unavailable"})
	default:
		logrus.WithError(err).Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
