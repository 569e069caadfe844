package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RequiresMongoURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")

	_, err := LoadConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "membersync", cfg.DatabaseName)
	assert.Equal(t, "versions", cfg.DefaultDomain)
	assert.Equal(t, "members", cfg.MembersCollection)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.AuthSecret)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("MONGODB_DATABASE", "sync_prod")
	t.Setenv("SYNC_DEFAULT_DOMAIN", "releases")
	t.Setenv("SYNC_MEMBERS_COLLECTION", "snapshots")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoDBURI)
	assert.Equal(t, "sync_prod", cfg.DatabaseName)
	assert.Equal(t, "releases", cfg.DefaultDomain)
	assert.Equal(t, "snapshots", cfg.MembersCollection)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDBURI)
	assert.Equal(t, "versions", cfg.DefaultDomain)
}
