package inventory

import (
	"context"

	"github.com/dispensary/backend/internal/domain/catalog"
	"github.com/dispensary/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LowStockAlertHandler logs a warning whenever a movement drops a product to
// or below its minimum level. Notification channels hook in here later.
type LowStockAlertHandler struct {
	logger *zap.Logger
}

// NewLowStockAlertHandler creates a new LowStockAlertHandler
func NewLowStockAlertHandler(logger *zap.Logger) *LowStockAlertHandler {
	return &LowStockAlertHandler{logger: logger}
}

// Handle processes a stock threshold event
func (h *LowStockAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	alert, ok := event.(*catalog.StockBelowMinimumEvent)
	if !ok {
		return nil
	}

	h.logger.Warn("product stock at or below minimum",
		zap.String("tenant_id", alert.TenantID().String()),
		zap.String("product_id", alert.ProductID.String()),
		zap.String("product_name", alert.Name),
		zap.Int64("quantity", alert.Quantity),
		zap.Int64("min_stock_level", alert.MinStockLevel),
		zap.String("stock_status", string(alert.Status)),
	)
	return nil
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockAlertHandler) EventTypes() []string {
	return []string{catalog.EventTypeStockBelowMinimum}
}

var _ shared.EventHandler = (*LowStockAlertHandler)(nil)
