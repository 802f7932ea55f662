package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicateSKU      = errors.New("el SKU ya está registrado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser un entero positivo")
	// ErrStorage envuelve fallas de conexión o transacción del almacén relacional.
	ErrStorage = errors.New("error de almacenamiento")
)
