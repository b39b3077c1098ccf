package spotify

import (
	"context"
	"sort"

	spotifyapi "github.com/davidrhys/genrescout/internal/infra/repository/spotify"
)

// UserProfile returns the projected profile of the session's user.
// Profiles are token-scoped and never cached.
func (s *Service) UserProfile(ctx context.Context, auth Auth) (*spotifyapi.UserProfile, error) {
	ctx, span := s.tracer.Start(ctx, "Service.UserProfile")
	defer span.End()

	user, err := s.client.Me(ctx, auth.header)
	if err != nil {
		return nil, err
	}

	profile := user.Project()
	return &profile, nil
}

// TopGenres derives the user's most frequent genres from their top 50
// long-term artists. Ties keep the order genres were first encountered
// in the artist list.
func (s *Service) TopGenres(ctx context.Context, auth Auth, limit int) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "Service.TopGenres")
	defer span.End()

	artists, err := s.client.TopArtists(ctx, auth.header, topArtistsN, spotifyapi.TimeRangeLongTerm)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	genres := make([]string, 0)
	for _, artist := range artists {
		for _, genre := range artist.Genres {
			if counts[genre] == 0 {
				genres = append(genres, genre)
			}
			counts[genre]++
		}
	}

	sort.SliceStable(genres, func(i, j int) bool {
		return counts[genres[i]] > counts[genres[j]]
	})

	if limit > 0 && limit < len(genres) {
		genres = genres[:limit]
	}

	return genres, nil
}
