package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "gestionnaire"
	RoleUser    = "utilisateur"
)

// WriterRoles roles que pueden registrar movimientos y crear productos.
var WriterRoles = []string{RoleAdmin, RoleManager}

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User usuario que actúa sobre el inventario. Lo provisiona el servicio de identidad que emite los tokens.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      string // admin, gestionnaire, utilisateur
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el usuario puede operar.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// HasRole indica si el rol persistido está entre roles.
func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
