// Package tasks holds the background jobs that keep shared caches
// warm.
package tasks

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type GenreSource interface {
	RefreshGenres(ctx context.Context) ([]string, error)
}

// GenreRefresher recomputes the cached genre list on a fixed interval.
// It coordinates with live request handlers only through the shared
// cache, so both may run at once.
type GenreRefresher struct {
	source   GenreSource
	interval time.Duration
}

func NewGenreRefresher(source GenreSource, interval time.Duration) *GenreRefresher {
	return &GenreRefresher{
		source:   source,
		interval: interval,
	}
}

// Run refreshes once immediately, then on every tick until ctx is
// cancelled.
func (r *GenreRefresher) Run(ctx context.Context) {
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *GenreRefresher) refresh(ctx context.Context) {
	logrus.Info("Refreshing cached genres")

	genres, err := r.source.RefreshGenres(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to refresh genres")
		return
	}

	logrus.WithField("count", len(genres)).Info("Genres refreshed")
}
