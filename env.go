package main

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Env struct {
	SpotifyClientID     string `env:"SPOTIFY_CLIENT_ID" env-required:"true"`
	SpotifyClientSecret string `env:"SPOTIFY_CLIENT_SECRET" env-required:"true"`
	SpotifyRedirectURI  string `env:"SPOTIFY_REDIRECT_URI" env-default:"http://localhost:8080/callback"`

	RedisURL string `env:"REDIS_URL" env-required:"true"`

	Port string `env:"PORT" env-default:"8080"`

	// GenreSource selects where the genre list comes from: "spotify"
	// fetches browse categories, "static" serves the baked-in seed list.
	GenreSource          string        `env:"GENRE_SOURCE" env-default:"spotify"`
	GenreRefreshInterval time.Duration `env:"GENRE_REFRESH_INTERVAL" env-default:"24h"`
	SearchLimit          int           `env:"SEARCH_LIMIT" env-default:"20"`

	SessionTTL time.Duration `env:"SESSION_TTL" env-default:"720h"`

	OTLPEndpoint string `env:"OTLP_ENDPOINT" env-default:""`

	LogFormat string `env:"LOG_FORMAT" env-default:"json"`
	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
}

var env Env

func LoadEnv() error {
	err := godotenv.Load()
	if err != nil {
		logrus.WithError(err).Warn("Failed to load env variables from file")
	}

	return cleanenv.ReadEnv(&env)
}

func GetEnv() *Env {
	return &env
}
