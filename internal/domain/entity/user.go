package entity

import "time"

// Roles de usuario (RBAC de dos niveles).
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa un usuario del sistema. Obra como colaborador de identidad:
// el núcleo solo consume su ID y su rol.
type User struct {
	ID           string
	Name         string
	Email        string // único
	PasswordHash string
	Role         string // admin | user
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
