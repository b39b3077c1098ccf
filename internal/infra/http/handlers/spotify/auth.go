package spotify

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Login redirects the browser to the Spotify consent page with a
// random state value pinned in a short-lived cookie.
func (h *Handler) Login(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "Handler.Login")
	defer span.End()

	state := uuid.NewString()
	c.SetCookie(stateCookie, state, 600, "/", "", false, true)

	c.Redirect(http.StatusFound, h.auth.AuthCodeURL(state))
}

// Callback finishes the authorization-code flow: it checks the state,
// exchanges the code and opens a session for the token set.
func (h *Handler) Callback(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "Handler.Callback")
	defer span.End()

	if errMsg := c.Query("error"); errMsg != "" {
		logrus.WithField("reason", errMsg).Warn("Authorization denied")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization denied"})
		return
	}

	state := c.Query("state")
	expected, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != expected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state mismatch"})
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	set, err := h.auth.ExchangeCode(ctx, code)
	if err != nil {
		h.renderError(c, err)
		return
	}

	sess, err := h.sessions.Create(ctx, set)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.SetCookie(sessionCookie, sess.ID, 0, "/", "", false, true)
	c.Redirect(http.StatusFound, "/api/me")
}

// Logout drops the session and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "Handler.Logout")
	defer span.End()

	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		if err := h.sessions.Delete(ctx, id); err != nil {
			logrus.WithError(err).Warn("Failed to delete session")
		}
	}

	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
