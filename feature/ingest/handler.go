package ingest

import (
	"encoding/json"
	"errors"

	"specy-indexer/core/chain"
	"specy-indexer/core/logger"
	"specy-indexer/core/reconcile"
	"specy-indexer/feature/block"
	"specy-indexer/feature/transfer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// PublicPaths are served without an API key.
var PublicPaths = []string{"/healthz", "/metrics"}

// Handler handles HTTP requests for block delivery and entity lookup.
type Handler struct {
	service  *Service
	gatherer prometheus.Gatherer
}

// NewHandler creates a new HTTP handler. gatherer may be nil to disable /metrics.
func NewHandler(service *Service, gatherer prometheus.Gatherer) *Handler {
	return &Handler{service: service, gatherer: gatherer}
}

// RegisterRoutes registers the ingest routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/healthz", h.HandleHealth)
	if h.gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	}
	app.Post("/blocks", h.HandleDeliverBlock)
	app.Get("/entities/:kind/:key", h.HandleGetEntity)
}

// HandleHealth reports liveness.
// @Summary Health
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleDeliverBlock indexes one delivered block.
// @Summary Deliver Block
// @Description Reconcile a block header and its transactions into entities.
// @Tags blocks
// @Accept json
// @Produce json
// @Param block body chain.Block true "Block with transactions and events"
// @Success 200 {object} DeliveryResult
// @Failure 400 {object} map[string]string "Malformed block"
// @Failure 422 {object} map[string]string "Invalid event attribute"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /blocks [post]
func (h *Handler) HandleDeliverBlock(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var b chain.Block
	if err := json.Unmarshal(c.Body(), &b); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed block: " + err.Error(),
		})
	}

	result, err := h.service.Deliver(c.UserContext(), b)
	if err != nil {
		var attrErr *reconcile.AttributeError
		switch {
		case errors.As(err, &attrErr):
			l.Warn("Rejected block", zap.Uint64("height", b.Header.Height), zap.Error(err))
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":     err.Error(),
				"attribute": attrErr.Attribute,
			})
		case errors.Is(err, ErrInvalidBlock), errors.Is(err, block.ErrEmptyHash), errors.Is(err, transfer.ErrEmptyHash):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			l.Error("Block delivery failed", zap.Uint64("height", b.Header.Height), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(result)
}

// HandleGetEntity returns one stored entity.
// @Summary Get Entity
// @Tags entities
// @Produce json
// @Param kind path string true "Entity kind (rule, binding, relation, proposal, block, transfer)"
// @Param key path string true "Natural key"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Not Found"
// @Router /entities/{kind}/{key} [get]
func (h *Handler) HandleGetEntity(c *fiber.Ctx) error {
	kind, key := c.Params("kind"), c.Params("key")

	entity, err := h.service.Lookup(c.UserContext(), kind, key)
	if errors.Is(err, ErrUnknownKind) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Entity lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if entity == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "entity not found"})
	}
	return c.JSON(entity)
}
