package spotify

import (
	"context"

	"github.com/davidrhys/genrescout/internal/infra/repository/cache"
)

// seedGenres is the no-auth fallback list, a subset of Spotify's genre
// seeds.
var seedGenres = []string{
	"acoustic", "afrobeat", "alternative", "ambient", "blues",
	"classical", "country", "dance", "disco", "drum-and-bass",
	"electronic", "folk", "funk", "gospel", "grunge",
	"hip-hop", "house", "indie", "jazz", "k-pop",
	"latin", "metal", "opera", "pop", "punk",
	"r-n-b", "reggae", "rock", "soul", "techno",
}

// SeedGenres returns a copy of the baked-in genre list.
func SeedGenres() []string {
	genres := make([]string, len(seedGenres))
	copy(genres, seedGenres)
	return genres
}

// ListGenres returns the genre list: the static seed set when the
// service was configured with one, otherwise the cached browse
// categories, refreshed at most once per day.
func (s *Service) ListGenres(ctx context.Context) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "Service.ListGenres")
	defer span.End()

	if len(s.static) > 0 {
		genres := make([]string, len(s.static))
		copy(genres, s.static)
		return genres, nil
	}

	return cache.GetOrCompute(ctx, s.cache, genresKey, genresTTL, s.fetchGenres)
}

// RefreshGenres bypasses the cache and recomputes the genre list,
// storing the fresh value. The periodic refresher calls this to keep
// the cache warm; live requests keep hitting ListGenres concurrently
// and only ever observe whole values.
func (s *Service) RefreshGenres(ctx context.Context) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "Service.RefreshGenres")
	defer span.End()

	if len(s.static) > 0 {
		return s.ListGenres(ctx)
	}

	genres, err := s.fetchGenres(ctx)
	if err != nil {
		return nil, err
	}

	if err := cache.Put(ctx, s.cache, genresKey, genresTTL, genres); err != nil {
		return nil, err
	}

	return genres, nil
}

func (s *Service) fetchGenres(ctx context.Context) ([]string, error) {
	auth, err := s.clientAuth(ctx)
	if err != nil {
		return nil, err
	}

	return s.client.Categories(ctx, auth.header)
}
