package spotify

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListGenres(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "Handler.ListGenres")
	defer span.End()

	genres, err := h.service.ListGenres(ctx)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"genres": genres})
}

func (h *Handler) ArtistsForGenre(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "Handler.ArtistsForGenre")
	defer span.End()

	genre := c.Param("genre")
	if genre == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "genre is required"})
		return
	}

	auth, err := h.resolveAuth(c, h.session(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	ctx := c.Request.Context()

	ids, err := h.service.ArtistsForGenre(ctx, auth, genre)
	if err != nil {
		h.renderError(c, err)
		return
	}

	details := h.service.BulkArtistDetails(ctx, auth, ids)

	c.JSON(http.StatusOK, gin.H{
		"genre":   genre,
		"artists": details,
	})
}

func (h *Handler) ArtistDetail(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "Handler.ArtistDetail")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "artist id is required"})
		return
	}

	auth, err := h.resolveAuth(c, h.session(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	detail, err := h.service.ArtistDetail(c.Request.Context(), auth, id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}
