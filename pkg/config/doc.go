// Package config loads typed configuration from environment variables using
// caarlos0/env struct tags, with optional .env support through godotenv.
// Every config type is parsed once per process.
package config
