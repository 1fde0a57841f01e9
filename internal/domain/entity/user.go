// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role represents what a panel user is allowed to do.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleFinanceTeam Role = "finance_team"
	RoleAccountant  Role = "accountant"
	RoleSales       Role = "sales"
	RoleCustomer    Role = "customer"
	RolePM          Role = "pm"
)

// IsValid reports whether the role is known.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleFinanceTeam, RoleAccountant, RoleSales, RoleCustomer, RolePM:
		return true
	}
	return false
}

// User represents an operator of the billing panel.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with the given role.
func NewUser(email, name, passwordHash string, role Role) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
