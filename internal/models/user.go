package models

import "time"

const (
	RoleUser       = "user"
	RoleTechnician = "technician"
	RoleManager    = "manager"
	RoleAdmin      = "admin"
)

// Roles lists the accepted user roles.
var Roles = []string{RoleUser, RoleTechnician, RoleManager, RoleAdmin}

type User struct {
	ID         int       `json:"id"`
	Email      string    `json:"email"`
	Name       *string   `json:"name"`
	Role       string    `json:"role"`
	Department *string   `json:"department"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
