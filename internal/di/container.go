package di

import (
	"context"
	"fmt"
	"sync"

	"membersync/internal/shared/logger"
	syncmodule "membersync/internal/sync"
	"membersync/internal/sync/config"

	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds module instances and shared resources with proper
// lifecycle management.
type Container struct {
	mu sync.RWMutex

	SyncModule *syncmodule.SyncModule
	MongoDB    *mongo.Database
	SyncConfig *config.SyncConfig
	Logger     logger.Logger
}

// NewContainer creates an empty DI container.
func NewContainer() *Container {
	return &Container{}
}

// InitializeSync initializes the sync module against the given database.
func (c *Container) InitializeSync(mongoDB *mongo.Database, cfg *config.SyncConfig) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mongoDB == nil {
		return fmt.Errorf("MongoDB must be initialized before the sync module")
	}

	c.MongoDB = mongoDB
	c.SyncConfig = cfg

	if c.Logger == nil {
		c.Logger = logger.NewLogger()
	}

	module, err := syncmodule.NewSyncModule(mongoDB, cfg, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create sync module: %w", err)
	}

	c.SyncModule = module
	return nil
}

// GetSyncModule returns the initialized sync module, or nil.
func (c *Container) GetSyncModule() *syncmodule.SyncModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SyncModule
}

// HealthCheck verifies all managed services are reachable.
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.SyncModule == nil {
		return fmt.Errorf("sync module not initialized")
	}
	return c.SyncModule.HealthCheck(ctx)
}

// Close releases resources owned by the container's modules.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.SyncModule != nil {
		return c.SyncModule.Close()
	}
	return nil
}
