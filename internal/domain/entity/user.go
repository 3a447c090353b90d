package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner  = "OWNER"
	RoleMember = "MEMBER"
)

// User representa un usuario del sistema (pertenece a una Company).
// SupabaseID es el subject del proveedor de identidad; la autenticación no vive aquí.
type User struct {
	ID         string
	CompanyID  string
	SupabaseID string
	Email      string
	FirstName  string
	LastName   string
	Role       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
