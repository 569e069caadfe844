package http

import (
	"context"

	"membersync/internal/shared/contextkeys"
	"membersync/internal/shared/errors"
	"membersync/internal/shared/logger"
	"membersync/internal/sync/config"
	"membersync/internal/sync/domain/model"
	"membersync/internal/sync/usecase"

	"github.com/gofiber/fiber/v2"
)

// SyncHandler exposes the sync API over HTTP. The transport layer only
// parses payloads, resolves the domain selector and translates results and
// errors; all reconciliation semantics live in the usecase.
type SyncHandler struct {
	SyncUC usecase.SyncUsecaseInterface
	Config *config.SyncConfig
	Auth   *AuthMiddleware
	Log    logger.Logger
}

// NewSyncHandler creates a new SyncHandler. auth may be nil, in which case
// the API is open.
func NewSyncHandler(syncUC usecase.SyncUsecaseInterface, cfg *config.SyncConfig, auth *AuthMiddleware, log logger.Logger) *SyncHandler {
	return &SyncHandler{
		SyncUC: syncUC,
		Config: cfg,
		Auth:   auth,
		Log:    log.WithComponent("sync_handler"),
	}
}

// DeleteVersionsPayload is the body of an explicit flat delete.
type DeleteVersionsPayload struct {
	VersionIDs []string `json:"versionIds"`
}

func (h *SyncHandler) RegisterRoutes(router fiber.Router) {
	// Health stays outside the authenticated group: it must answer even
	// when the store or the token issuer is down.
	router.Get("/health", h.Health)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.Use(h.Auth.Protect())
	}

	api.Post("/sync", h.SyncVersions)
	api.Delete("/sync", h.DeleteVersions)
	api.Post("/members/reconcile", h.ReconcileMembers)
}

// Health reports liveness independent of store availability.
func (h *SyncHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// SyncVersions handles the flat version sync endpoint.
func (h *SyncHandler) SyncVersions(c *fiber.Ctx) error {
	domain := c.Query("domain", h.Config.DefaultDomain)

	var records []model.Document
	if err := c.BodyParser(&records); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Empty payload"})
	}

	result, err := h.SyncUC.SyncVersions(h.requestContext(c, domain), usecase.SyncVersionsRequest{
		Domain:  domain,
		Records: records,
	})
	if err != nil {
		return h.respondError(c, "Failed to sync versions", domain, err)
	}

	h.Log.WithFields(map[string]interface{}{
		"domain":     result.Domain,
		"count":      result.Count,
		"request_id": requestID(c),
	}).Info("Version sync completed")

	return c.JSON(fiber.Map{
		"message": "Sync completed",
		"domain":  result.Domain,
		"count":   result.Count,
	})
}

// DeleteVersions handles the explicit flat delete endpoint.
func (h *SyncHandler) DeleteVersions(c *fiber.Ctx) error {
	domain := c.Query("domain", h.Config.DefaultDomain)

	var payload DeleteVersionsPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Empty payload"})
	}

	result, err := h.SyncUC.DeleteVersions(h.requestContext(c, domain), usecase.DeleteVersionsRequest{
		Domain:     domain,
		VersionIDs: payload.VersionIDs,
	})
	if err != nil {
		return h.respondError(c, "Failed to delete versions", domain, err)
	}

	h.Log.WithFields(map[string]interface{}{
		"domain":     result.Domain,
		"deleted":    result.Deleted,
		"request_id": requestID(c),
	}).Info("Version delete completed")

	return c.JSON(fiber.Map{
		"message": "Delete completed",
		"domain":  result.Domain,
		"deleted": result.Deleted,
	})
}

// ReconcileMembers handles the member snapshot reconciliation endpoint.
func (h *SyncHandler) ReconcileMembers(c *fiber.Ctx) error {
	collection := c.Query("domain", h.Config.MembersCollection)

	var records []model.Document
	if err := c.BodyParser(&records); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload must be a non-empty array"})
	}

	result, err := h.SyncUC.ReconcileMembers(h.requestContext(c, collection), usecase.ReconcileMembersRequest{
		Collection: collection,
		Records:    records,
	})
	if err != nil {
		return h.respondError(c, "Failed to reconcile members", collection, err)
	}

	h.Log.WithFields(map[string]interface{}{
		"collection": result.Collection,
		"upserted":   result.Upserted,
		"deleted":    result.Deleted,
		"request_id": requestID(c),
	}).Info("Member reconciliation completed")

	return c.JSON(fiber.Map{
		"message":  "Reconciliation completed",
		"upserted": result.Upserted,
		"deleted":  result.Deleted,
	})
}

// respondError translates a usecase error into exactly one response.
// Validation errors keep their message verbatim so callers can match on it.
func (h *SyncHandler) respondError(c *fiber.Ctx, logMessage, domain string, err error) error {
	status := errors.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		h.Log.WithFields(map[string]interface{}{
			"domain":     domain,
			"error":      err.Error(),
			"request_id": requestID(c),
		}).Error(logMessage)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// requestContext derives the usecase context from the request, carrying the
// request id and selected domain for log enrichment.
func (h *SyncHandler) requestContext(c *fiber.Ctx, domain string) context.Context {
	ctx := context.WithValue(c.Context(), contextkeys.DomainKey, domain)
	if id := requestID(c); id != "" {
		ctx = context.WithValue(ctx, contextkeys.RequestIDKey, id)
	}
	return ctx
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
