package config

import "time"

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DefaultAppEnv = EnvDevelopment

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "sitterhub"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultDevJWTSecret = "sitterhub-dev-secret"
	DefaultJWTTTL       = 24 * time.Hour
	DefaultBcryptCost   = 10

	DefaultRedisDB = 0

	DefaultCORSAllowedOrigins = "http://localhost:3000,http://localhost:3001"

	DefaultRateLimitRequests = 100
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPageLimit          = 10
	DefaultMaxPaginationLimit = 100
)
