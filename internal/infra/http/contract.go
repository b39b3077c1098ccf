package server

import (
	"github.com/gin-gonic/gin"
)

type SpotifyHandler interface {
	ListGenres(ctx *gin.Context)
	ArtistsForGenre(ctx *gin.Context)
	ArtistDetail(ctx *gin.Context)
	Profile(ctx *gin.Context)
	TopGenres(ctx *gin.Context)
	Login(ctx *gin.Context)
	Callback(ctx *gin.Context)
	Logout(ctx *gin.Context)
}
