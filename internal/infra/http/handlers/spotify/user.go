package spotify

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultTopGenresLimit = 10

func (h *Handler) Profile(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "Handler.Profile")
	defer span.End()

	sess := h.session(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}

	auth, err := h.resolveAuth(c, sess)
	if err != nil {
		h.renderError(c, err)
		return
	}

	profile, err := h.service.UserProfile(c.Request.Context(), auth)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) TopGenres(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "Handler.TopGenres")
	defer span.End()

	sess := h.session(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}

	limit := defaultTopGenresLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	auth, err := h.resolveAuth(c, sess)
	if err != nil {
		h.renderError(c, err)
		return
	}

	genres, err := h.service.TopGenres(c.Request.Context(), auth, limit)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"genres": genres})
}
