package inventory

import (
	"strings"
	"time"

	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementType classifies the cause of a ledger entry
type MovementType string

const (
	MovementTypeSale       MovementType = "sale"
	MovementTypePurchase   MovementType = "purchase"
	MovementTypeAdjustment MovementType = "adjustment"
	MovementTypeReturn     MovementType = "return"
	MovementTypeLoss       MovementType = "loss"
)

// IsValid checks if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeSale, MovementTypePurchase, MovementTypeAdjustment, MovementTypeReturn, MovementTypeLoss:
		return true
	}
	return false
}

// IsInbound reports whether the type always adds stock
func (t MovementType) IsInbound() bool {
	return t == MovementTypePurchase || t == MovementTypeReturn
}

// IsOutbound reports whether the type always removes stock
func (t MovementType) IsOutbound() bool {
	return t == MovementTypeSale || t == MovementTypeLoss
}

// IsManualAdjustment reports whether the type may be posted through the
// stock-adjustment endpoint. Sales and purchases only arrive through their
// dedicated flows.
func (t MovementType) IsManualAdjustment() bool {
	return t == MovementTypeAdjustment || t == MovementTypeReturn || t == MovementTypeLoss
}

// StockMovement is one append-only ledger entry: a signed quantity delta
// applied to a product at a point in time. Movements are immutable once
// committed; corrections append an offsetting movement.
type StockMovement struct {
	shared.BaseEntity
	TenantID       uuid.UUID    `gorm:"type:uuid;not null;index:idx_movement_tenant_product,priority:1;uniqueIndex:idx_movement_tenant_idem,priority:1"`
	ProductID      uuid.UUID    `gorm:"type:uuid;not null;index:idx_movement_tenant_product,priority:2"`
	Quantity       int64        `gorm:"not null"`
	Type           MovementType `gorm:"type:varchar(20);not null;index"`
	EffectiveDate  time.Time    `gorm:"not null;index"`
	Note           string       `gorm:"type:text"`
	RestockOrderID *uuid.UUID   `gorm:"type:uuid;index"`
	IdempotencyKey *string      `gorm:"type:varchar(100);uniqueIndex:idx_movement_tenant_idem,priority:2"`
	BalanceAfter   int64        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a ledger entry after validating the delta against
// the movement type's sign discipline.
func NewStockMovement(tenantID, productID uuid.UUID, quantity int64, movementType MovementType, effectiveDate time.Time) (*StockMovement, error) {
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Unknown movement type")
	}
	if quantity == 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity cannot be zero")
	}
	if movementType.IsInbound() && quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Inbound movements require a positive quantity")
	}
	if movementType.IsOutbound() && quantity > 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Outbound movements require a negative quantity")
	}
	if effectiveDate.IsZero() {
		effectiveDate = time.Now()
	}

	return &StockMovement{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      tenantID,
		ProductID:     productID,
		Quantity:      quantity,
		Type:          movementType,
		EffectiveDate: effectiveDate,
	}, nil
}

// WithNote attaches a free-text note
func (m *StockMovement) WithNote(note string) *StockMovement {
	m.Note = strings.TrimSpace(note)
	return m
}

// WithRestockOrder tags the movement with its originating restock order
func (m *StockMovement) WithRestockOrder(orderID uuid.UUID) *StockMovement {
	m.RestockOrderID = &orderID
	return m
}

// WithIdempotencyKey attaches a client-supplied deduplication key
func (m *StockMovement) WithIdempotencyKey(key string) *StockMovement {
	key = strings.TrimSpace(key)
	if key != "" {
		m.IdempotencyKey = &key
	}
	return m
}

// WithBalanceAfter records the product quantity after this movement applied
func (m *StockMovement) WithBalanceAfter(balance int64) *StockMovement {
	m.BalanceAfter = balance
	return m
}

// IsIncrease reports whether this movement added stock
func (m *StockMovement) IsIncrease() bool {
	return m.Quantity > 0
}
