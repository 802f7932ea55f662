package entity

import (
	"strings"
	"time"
)

// MovementKind tipo de movimiento de stock.
type MovementKind string

// Tipos de movimiento de inventario.
const (
	MovementEntry MovementKind = "entrada"
	MovementExit  MovementKind = "salida"
)

// ParseMovementKind normaliza el tipo recibido (entrada/entry/in, salida/exit/out).
func ParseMovementKind(s string) (MovementKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entrada", "entry", "in":
		return MovementEntry, true
	case "salida", "exit", "out":
		return MovementExit, true
	}
	return "", false
}

// Movement registro inmutable del libro de movimientos.
// PreviousStock y NewStock dejan trazabilidad del cambio aplicado al producto.
type Movement struct {
	ID            string
	SKU           string
	Kind          MovementKind
	Quantity      int // siempre positiva; el signo lo da Kind
	Reason        string
	PreviousStock int
	NewStock      int
	CreatedAt     time.Time
}

// MovementView movimiento unido con el nombre del producto (modelo de lectura).
type MovementView struct {
	Movement
	ProductName string
}
