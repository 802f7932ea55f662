package dto

import "time"

// RecordMovementRequest body para POST /api/inventory/movements.
// Kind acepta entrada/entry/in o salida/exit/out.
type RecordMovementRequest struct {
	SKU      string `json:"sku" validate:"required"`
	Kind     string `json:"kind" validate:"required"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason" validate:"max=500"`
}

// RecordMovementResponse resultado del movimiento aplicado.
type RecordMovementResponse struct {
	MovementID    string `json:"movement_id"`
	SKU           string `json:"sku"`
	Kind          string `json:"kind"`
	Quantity      int    `json:"quantity"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
}

// MovementResponse movimiento del historial con el nombre del producto.
type MovementResponse struct {
	ID            string    `json:"id"`
	SKU           string    `json:"sku"`
	ProductName   string    `json:"product_name"`
	Kind          string    `json:"kind"`
	Quantity      int       `json:"quantity"`
	Reason        string    `json:"reason"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	CreatedAt     time.Time `json:"created_at"`
}

// AuditEntryResponse entrada de la bitácora.
type AuditEntryResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
