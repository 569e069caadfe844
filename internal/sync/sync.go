package sync

import (
	"context"

	httpadapter "membersync/internal/sync/adapter/http"
	redispersistence "membersync/internal/sync/adapter/persistence"
	mongodbpersistence "membersync/internal/sync/adapter/persistence/mongodb"
	"membersync/internal/sync/config"
	"membersync/internal/sync/domain/repository"
	"membersync/internal/sync/usecase"

	"membersync/internal/shared/eventbus"
	"membersync/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// SyncModule wires the sync engines, their persistence gateway and the HTTP
// surface together.
type SyncModule struct {
	Config      *config.SyncConfig
	Repo        repository.SyncRepository
	SyncUsecase usecase.SyncUsecaseInterface
	Handler     *httpadapter.SyncHandler
	EventBus    *eventbus.EventBus
	RedisClient *redis.Client
	Journal     *redispersistence.SyncJournal
	Logger      logger.Logger
}

// NewSyncModule creates and initializes the sync module on a shared, pooled
// MongoDB database handle. The Redis journal is attached only when
// configured.
func NewSyncModule(db *mongo.Database, cfg *config.SyncConfig, log logger.Logger) (*SyncModule, error) {
	log.Info("Initializing Sync Module...")

	bus := eventbus.NewEventBus(log)
	repo := mongodbpersistence.NewSyncRepositoryWithDatabase(db, log)
	syncUC := usecase.NewSyncUsecase(repo, bus, log)
	auth := httpadapter.NewAuthMiddleware(cfg.AuthSecret)
	handler := httpadapter.NewSyncHandler(syncUC, cfg, auth, log)

	module := &SyncModule{
		Config:      cfg,
		Repo:        repo,
		SyncUsecase: syncUC,
		Handler:     handler,
		EventBus:    bus,
		Logger:      log,
	}

	if cfg.RedisAddr != "" {
		module.RedisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		module.Journal = redispersistence.NewSyncJournal(module.RedisClient, log)
		module.Journal.Subscribe(bus)
		log.Infof("Sync journal attached to Redis at %s", cfg.RedisAddr)
	}

	if auth != nil {
		log.Info("Sync API bearer auth enabled")
	}

	return module, nil
}

// RegisterRoutes mounts the sync API on the router.
func (m *SyncModule) RegisterRoutes(router fiber.Router) {
	m.Handler.RegisterRoutes(router)
}

// HealthCheck verifies the persistence gateway is reachable.
func (m *SyncModule) HealthCheck(ctx context.Context) error {
	return m.Repo.Ping(ctx)
}

// Close releases module-owned resources. The MongoDB client is owned by the
// caller and is not closed here.
func (m *SyncModule) Close() error {
	if m.RedisClient != nil {
		return m.RedisClient.Close()
	}
	return nil
}
