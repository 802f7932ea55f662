package entity

import "time"

// Acciones registradas en la bitácora por el núcleo.
const (
	AuditActionCreation = "creation"
	AuditActionMovement = "movement"
)

// AuditEntry entrada libre y de solo anexado de la bitácora.
type AuditEntry struct {
	ID        string
	Action    string
	Detail    string
	CreatedAt time.Time
}
