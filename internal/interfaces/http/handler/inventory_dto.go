package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/dispensary/backend/internal/domain/inventory"
)

// MovementResponse is the API shape of a stock ledger entry
type MovementResponse struct {
	ID             uuid.UUID  `json:"id"`
	ProductID      uuid.UUID  `json:"product_id"`
	Quantity       int64      `json:"quantity"`
	Type           string     `json:"type"`
	EffectiveDate  time.Time  `json:"effective_date"`
	Note           string     `json:"note,omitempty"`
	RestockOrderID *uuid.UUID `json:"restock_order_id,omitempty"`
	BalanceAfter   int64      `json:"balance_after"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Quantity:       m.Quantity,
		Type:           string(m.Type),
		EffectiveDate:  m.EffectiveDate,
		Note:           m.Note,
		RestockOrderID: m.RestockOrderID,
		BalanceAfter:   m.BalanceAfter,
		CreatedAt:      m.CreatedAt,
	}
}

func toMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		out = append(out, toMovementResponse(&movements[i]))
	}
	return out
}

// RestockOrderResponse is the API shape of a restock order
type RestockOrderResponse struct {
	ID                   uuid.UUID  `json:"id"`
	ProductID            uuid.UUID  `json:"product_id"`
	Quantity             int64      `json:"quantity"`
	UnitPrice            string     `json:"unit_price"`
	Supplier             string     `json:"supplier,omitempty"`
	PurchaseDate         time.Time  `json:"purchase_date"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date,omitempty"`
	Status               string     `json:"status"`
	ReceivedQuantity     int64      `json:"received_quantity"`
	OutstandingQuantity  int64      `json:"outstanding_quantity"`
	Notes                string     `json:"notes,omitempty"`
	ReceivedAt           *time.Time `json:"received_at,omitempty"`
	CancelledAt          *time.Time `json:"cancelled_at,omitempty"`
	Version              int        `json:"version"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func toRestockOrderResponse(o *inventory.RestockOrder) RestockOrderResponse {
	return RestockOrderResponse{
		ID:                   o.ID,
		ProductID:            o.ProductID,
		Quantity:             o.Quantity,
		UnitPrice:            o.UnitPrice.StringFixed(2),
		Supplier:             o.Supplier,
		PurchaseDate:         o.PurchaseDate,
		ExpectedDeliveryDate: o.ExpectedDeliveryDate,
		Status:               string(o.Status),
		ReceivedQuantity:     o.ReceivedQuantity,
		OutstandingQuantity:  o.Quantity - o.ReceivedQuantity,
		Notes:                o.Notes,
		ReceivedAt:           o.ReceivedAt,
		CancelledAt:          o.CancelledAt,
		Version:              o.Version,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

func toRestockOrderResponses(orders []inventory.RestockOrder) []RestockOrderResponse {
	out := make([]RestockOrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toRestockOrderResponse(&orders[i]))
	}
	return out
}

// ReceiptResponse pairs an updated order with the ledger entry its receipt
// produced
type ReceiptResponse struct {
	Order    RestockOrderResponse `json:"order"`
	Movement MovementResponse     `json:"movement"`
}
