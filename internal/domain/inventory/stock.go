package inventory

import (
	"github.com/jhoicas/techinventory-api/internal/domain"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
)

// NextStock calcula el stock resultante de aplicar un movimiento (servicio de dominio).
// Entrada: current + quantity. Salida: current - quantity, rechazada si el resultado es negativo.
func NextStock(current int, kind entity.MovementKind, quantity int) (int, error) {
	if quantity <= 0 {
		return current, domain.ErrInvalidQuantity
	}
	switch kind {
	case entity.MovementEntry:
		return current + quantity, nil
	case entity.MovementExit:
		next := current - quantity
		if next < 0 {
			return current, domain.ErrInsufficientStock
		}
		return next, nil
	}
	return current, domain.ErrInvalidInput
}
