package config

import (
	"errors"

	"github.com/caarlos0/env/v6"
)

// SyncConfig holds all configuration for the sync module.
type SyncConfig struct {
	// MongoDBURI is the connection string for the document store. Required.
	MongoDBURI string `env:"MONGODB_URI"`

	// DatabaseName is the database all sync collections live in.
	DatabaseName string `env:"MONGODB_DATABASE" envDefault:"membersync"`

	// DefaultDomain is the collection used for flat version sync when the
	// request carries no domain selector.
	DefaultDomain string `env:"SYNC_DEFAULT_DOMAIN" envDefault:"versions"`

	// MembersCollection is the collection member snapshots are reconciled
	// against.
	MembersCollection string `env:"SYNC_MEMBERS_COLLECTION" envDefault:"members"`

	// RedisAddr enables the Redis Streams sync journal when set.
	RedisAddr string `env:"REDIS_ADDR"`

	// AuthSecret enables JWT bearer auth on the sync API when set.
	AuthSecret string `env:"SYNC_AUTH_SECRET"`
}

// LoadConfig loads configuration from environment variables and applies
// defaults.
func LoadConfig() (*SyncConfig, error) {
	cfg := &SyncConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load sync configuration from environment: " + err.Error())
	}

	if cfg.MongoDBURI == "" {
		return nil, errors.New("MONGODB_URI environment variable is not set")
	}
	if cfg.DefaultDomain == "" {
		cfg.DefaultDomain = "versions"
	}
	if cfg.MembersCollection == "" {
		cfg.MembersCollection = "members"
	}

	return cfg, nil
}

// DefaultConfig returns a SyncConfig with local development defaults.
func DefaultConfig() *SyncConfig {
	return &SyncConfig{
		MongoDBURI:        "mongodb://localhost:27017",
		DatabaseName:      "membersync",
		DefaultDomain:     "versions",
		MembersCollection: "members",
	}
}
