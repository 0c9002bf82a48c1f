package inventory

import (
	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeRestockOrder  = "RestockOrder"
	AggregateTypeStockMovement = "StockMovement"
)

// Event type constants
const (
	EventTypeRestockOrderCreated   = "RestockOrderCreated"
	EventTypeRestockOrderReceived  = "RestockOrderReceived"
	EventTypeRestockOrderCancelled = "RestockOrderCancelled"
	EventTypeMovementRecorded      = "MovementRecorded"
)

// RestockOrderCreatedEvent is published when a restock order is created
type RestockOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Supplier  string    `json:"supplier,omitempty"`
}

// NewRestockOrderCreatedEvent creates a new RestockOrderCreatedEvent
func NewRestockOrderCreatedEvent(order *RestockOrder) *RestockOrderCreatedEvent {
	return &RestockOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRestockOrderCreated, AggregateTypeRestockOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		ProductID:       order.ProductID,
		Quantity:        order.Quantity,
		Supplier:        order.Supplier,
	}
}

// RestockOrderReceivedEvent is published for every receipt event
type RestockOrderReceivedEvent struct {
	shared.BaseDomainEvent
	OrderID          uuid.UUID          `json:"order_id"`
	ProductID        uuid.UUID          `json:"product_id"`
	QuantityReceived int64              `json:"quantity_received"`
	CumulativeTotal  int64              `json:"cumulative_total"`
	Status           RestockOrderStatus `json:"status"`
}

// NewRestockOrderReceivedEvent creates a new RestockOrderReceivedEvent
func NewRestockOrderReceivedEvent(order *RestockOrder, quantityReceived int64) *RestockOrderReceivedEvent {
	return &RestockOrderReceivedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeRestockOrderReceived, AggregateTypeRestockOrder, order.ID, order.TenantID),
		OrderID:          order.ID,
		ProductID:        order.ProductID,
		QuantityReceived: quantityReceived,
		CumulativeTotal:  order.ReceivedQuantity,
		Status:           order.Status,
	}
}

// RestockOrderCancelledEvent is published when an order is cancelled
type RestockOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID           uuid.UUID `json:"order_id"`
	ProductID         uuid.UUID `json:"product_id"`
	ReceivedQuantity  int64     `json:"received_quantity"`
	RemainingQuantity int64     `json:"remaining_quantity"`
}

// NewRestockOrderCancelledEvent creates a new RestockOrderCancelledEvent
func NewRestockOrderCancelledEvent(order *RestockOrder) *RestockOrderCancelledEvent {
	return &RestockOrderCancelledEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeRestockOrderCancelled, AggregateTypeRestockOrder, order.ID, order.TenantID),
		OrderID:           order.ID,
		ProductID:         order.ProductID,
		ReceivedQuantity:  order.ReceivedQuantity,
		RemainingQuantity: order.RemainingQuantity(),
	}
}

// MovementRecordedEvent is published when a ledger entry is committed
type MovementRecordedEvent struct {
	shared.BaseDomainEvent
	MovementID   uuid.UUID    `json:"movement_id"`
	ProductID    uuid.UUID    `json:"product_id"`
	Quantity     int64        `json:"quantity"`
	MovementType MovementType `json:"movement_type"`
	BalanceAfter int64        `json:"balance_after"`
}

// NewMovementRecordedEvent creates a new MovementRecordedEvent
func NewMovementRecordedEvent(movement *StockMovement) *MovementRecordedEvent {
	return &MovementRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMovementRecorded, AggregateTypeStockMovement, movement.ID, movement.TenantID),
		MovementID:      movement.ID,
		ProductID:       movement.ProductID,
		Quantity:        movement.Quantity,
		MovementType:    movement.Type,
		BalanceAfter:    movement.BalanceAfter,
	}
}
