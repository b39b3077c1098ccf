package main

import (
	"context"
	"net/http"
	"time"

	appspotify "github.com/davidrhys/genrescout/internal/app/services/spotify"
	"github.com/davidrhys/genrescout/internal/app/tasks"
	server "github.com/davidrhys/genrescout/internal/infra/http"
	handlers "github.com/davidrhys/genrescout/internal/infra/http/handlers/spotify"
	rediscache "github.com/davidrhys/genrescout/internal/infra/repository/cache/redis"
	"github.com/davidrhys/genrescout/internal/infra/repository/sessions"
	spotifyapi "github.com/davidrhys/genrescout/internal/infra/repository/spotify"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func main() {
	err := LoadEnv()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load environment variables")
	}

	config := GetEnv()
	setupLogger(config)

	ctx := context.Background()

	tracer := setupTracing(ctx, config)

	redisOpts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid REDIS_URL")
	}
	redisClient := redis.NewClient(redisOpts)

	cacheStore := rediscache.NewCache(redisClient, time.Hour)

	httpClient := &http.Client{Timeout: 10 * time.Second}

	tokenManager := spotifyapi.NewTokenManager(spotifyapi.TokenManagerConfig{
		ClientID:     config.SpotifyClientID,
		ClientSecret: config.SpotifyClientSecret,
		RedirectURI:  config.SpotifyRedirectURI,
		HTTPClient:   httpClient,
		Cache:        cacheStore,
		Tracer:       tracer,
	})

	apiClient := spotifyapi.New(spotifyapi.ClientConfig{
		HTTPClient: httpClient,
		Tracer:     tracer,
	})

	opts := appspotify.Options{SearchLimit: config.SearchLimit}
	if config.GenreSource == "static" {
		opts.StaticGenres = appspotify.SeedGenres()
	}

	service := appspotify.New(tracer, apiClient, tokenManager, cacheStore, opts)

	sessionStore := sessions.NewStore(redisClient, config.SessionTTL)

	handler := handlers.New(tracer, service, sessionStore, tokenManager)

	srv, err := server.New(server.NewConfig(config.Port, false), handler)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to build HTTP server")
	}

	refresher := tasks.NewGenreRefresher(service, config.GenreRefreshInterval)
	go refresher.Run(ctx)

	logrus.WithField("port", config.Port).Info("Starting server")
	logrus.Fatal(srv.ListenAndServe())
}

func setupLogger(config *Env) {
	if config.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		logrus.WithError(err).Warn("Invalid log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// setupTracing installs an OTLP tracer provider when an endpoint is
// configured; otherwise spans are no-ops.
func setupTracing(ctx context.Context, config *Env) trace.Tracer {
	if config.OTLPEndpoint == "" {
		return otel.Tracer("genrescout")
	}

	spanExporter, err := newSpanExporter(ctx, config.OTLPEndpoint)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create span exporter")
	}

	tracerProvider, err := newTracerProvider(spanExporter)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create tracer provider")
	}
	otel.SetTracerProvider(tracerProvider)

	return tracerProvider.Tracer("genrescout")
}
