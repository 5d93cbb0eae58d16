package entity

import "time"

// Roles soportados por la aplicación.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User usuario de la aplicación. PasswordHash es bcrypt.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	Status       string // active | suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
