package entity

import "time"

// Roles de usuario administrativo.
const (
	RoleAdmin = "admin"
)

// User usuario del panel administrativo (gestión de productos).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
