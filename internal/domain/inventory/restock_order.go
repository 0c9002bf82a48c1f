package inventory

import (
	"strings"
	"time"

	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RestockOrderStatus represents the status of a restock order
type RestockOrderStatus string

const (
	RestockOrderStatusPending   RestockOrderStatus = "pending"
	RestockOrderStatusPartial   RestockOrderStatus = "partial"
	RestockOrderStatusReceived  RestockOrderStatus = "received"
	RestockOrderStatusCancelled RestockOrderStatus = "cancelled"
)

// IsValid checks if the status is valid
func (s RestockOrderStatus) IsValid() bool {
	switch s {
	case RestockOrderStatusPending, RestockOrderStatusPartial, RestockOrderStatusReceived, RestockOrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed
func (s RestockOrderStatus) IsTerminal() bool {
	return s == RestockOrderStatusReceived || s == RestockOrderStatusCancelled
}

// CanTransitionTo checks if a transition to the target status is allowed
func (s RestockOrderStatus) CanTransitionTo(target RestockOrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch target {
	case RestockOrderStatusPartial, RestockOrderStatusReceived, RestockOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s RestockOrderStatus) String() string {
	return string(s)
}

// RestockOrder is a purchase order for replenishing one product's stock.
// Receipts accumulate until the ordered quantity is met; each receipt event
// posts exactly one purchase movement for its own delta. Cancellation
// forecloses future receipts but never rewrites posted history.
type RestockOrder struct {
	shared.TenantAggregateRoot
	ProductID            uuid.UUID          `gorm:"type:uuid;not null;index"`
	Quantity             int64              `gorm:"not null"`
	UnitPrice            decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	Supplier             string             `gorm:"type:varchar(200)"`
	PurchaseDate         time.Time          `gorm:"not null"`
	ExpectedDeliveryDate *time.Time         `gorm:""`
	Status               RestockOrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	ReceivedQuantity     int64              `gorm:"not null;default:0"`
	Notes                string             `gorm:"type:text"`
	ReceivedAt           *time.Time         `gorm:""`
	CancelledAt          *time.Time         `gorm:""`
}

// TableName returns the table name for GORM
func (RestockOrder) TableName() string {
	return "restock_orders"
}

// NewRestockOrder creates a pending restock order. Quantity and unit price
// must both be positive.
func NewRestockOrder(tenantID, productID uuid.UUID, quantity int64, unitPrice decimal.Decimal, supplier string, purchaseDate time.Time) (*RestockOrder, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Ordered quantity must be positive")
	}
	if !unitPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price must be positive")
	}
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	order := &RestockOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		Quantity:            quantity,
		UnitPrice:           unitPrice,
		Supplier:            strings.TrimSpace(supplier),
		PurchaseDate:        purchaseDate,
		Status:              RestockOrderStatusPending,
		ReceivedQuantity:    0,
	}

	order.AddDomainEvent(NewRestockOrderCreatedEvent(order))

	return order, nil
}

// SetExpectedDeliveryDate sets the expected delivery date
func (o *RestockOrder) SetExpectedDeliveryDate(date *time.Time) {
	o.ExpectedDeliveryDate = date
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// SetNotes sets free-text notes
func (o *RestockOrder) SetNotes(notes string) {
	o.Notes = strings.TrimSpace(notes)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// RemainingQuantity returns the un-received remainder
func (o *RestockOrder) RemainingQuantity() int64 {
	return o.Quantity - o.ReceivedQuantity
}

// Receive records one receipt event of the given quantity. The cumulative
// received quantity never exceeds the ordered quantity; the order transitions
// to received when the two are equal, else to partial.
func (o *RestockOrder) Receive(quantity int64) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot receive on a "+o.Status.String()+" order")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}
	if o.ReceivedQuantity+quantity > o.Quantity {
		return shared.NewDomainError("INVALID_QUANTITY", "Received quantity would exceed ordered quantity")
	}

	o.ReceivedQuantity += quantity
	if o.ReceivedQuantity == o.Quantity {
		o.Status = RestockOrderStatusReceived
		now := time.Now()
		o.ReceivedAt = &now
	} else {
		o.Status = RestockOrderStatusPartial
	}
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewRestockOrderReceivedEvent(o, quantity))

	return nil
}

// Cancel voids the un-received remainder. Allowed from pending and partial;
// receipts already posted remain in the ledger.
func (o *RestockOrder) Cancel() error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel a "+o.Status.String()+" order")
	}

	o.Status = RestockOrderStatusCancelled
	now := time.Now()
	o.CancelledAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewRestockOrderCancelledEvent(o))

	return nil
}
