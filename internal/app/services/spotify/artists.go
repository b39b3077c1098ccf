package spotify

import (
	"context"
	"strings"

	"github.com/davidrhys/genrescout/internal/infra/repository/cache"
	spotifyapi "github.com/davidrhys/genrescout/internal/infra/repository/spotify"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

func artistsForGenreKey(genre string) string {
	return "artists_for_genre:" + strings.ToLower(genre)
}

func artistDetailsKey(id string) string {
	return "artist_details:" + id
}

// ArtistsForGenre returns the ids of artists tagged with the genre,
// cached for an hour per lowercased genre. An empty upstream result is
// ErrNoArtistsFound, never a silent empty list.
func (s *Service) ArtistsForGenre(ctx context.Context, auth Auth, genre string) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "Service.ArtistsForGenre")
	defer span.End()

	span.SetAttributes(attribute.String("genre", genre))

	return cache.GetOrCompute(ctx, s.cache, artistsForGenreKey(genre), artistsTTL, func(ctx context.Context) ([]string, error) {
		artists, err := s.client.SearchArtistsByGenre(ctx, auth.header, genre, s.searchLimit)
		if err != nil {
			return nil, err
		}
		if len(artists) == 0 {
			return nil, ErrNoArtistsFound
		}

		ids := make([]string, 0, len(artists))
		for _, artist := range artists {
			ids = append(ids, artist.ID)
		}

		return ids, nil
	})
}

// ArtistDetail returns the projected detail for one artist, cached for
// an hour per id.
func (s *Service) ArtistDetail(ctx context.Context, auth Auth, id string) (*spotifyapi.ArtistDetail, error) {
	ctx, span := s.tracer.Start(ctx, "Service.ArtistDetail")
	defer span.End()

	span.SetAttributes(attribute.String("artist_id", id))

	detail, err := cache.GetOrCompute(ctx, s.cache, artistDetailsKey(id), artistsTTL, func(ctx context.Context) (spotifyapi.ArtistDetail, error) {
		artist, err := s.client.Artist(ctx, auth.header, id)
		if err != nil {
			return spotifyapi.ArtistDetail{}, err
		}
		return artist.Project(), nil
	})
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

// BulkArtistDetails fetches details for each id, preserving input
// order. A per-id failure is logged and the id skipped; the bulk call
// itself never fails.
func (s *Service) BulkArtistDetails(ctx context.Context, auth Auth, ids []string) []spotifyapi.ArtistDetail {
	ctx, span := s.tracer.Start(ctx, "Service.BulkArtistDetails")
	defer span.End()

	details := make([]spotifyapi.ArtistDetail, 0, len(ids))
	for _, id := range ids {
		detail, err := s.ArtistDetail(ctx, auth, id)
		if err != nil {
			logrus.WithError(err).WithField("artist_id", id).Warn("Skipping artist in bulk lookup")
			continue
		}
		details = append(details, *detail)
	}

	return details
}
