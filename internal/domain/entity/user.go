package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
)

// User representa un usuario del panel de inventario.
type User struct {
	ID           string
	Username     string
	Name         string
	Role         string // admin, supervisor
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Avatar       string
	CreatedAt    time.Time
	LastAccessAt *time.Time
}

// ValidRole indica si role es uno de los roles soportados.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSupervisor
}
