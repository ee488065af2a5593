package domain

import "time"

// StaffRole enumerates operator roles. Analysts run reports; admins also
// manage accounts.
type StaffRole string

const (
	StaffRoleAnalyst StaffRole = "ANALYST"
	StaffRoleAdmin   StaffRole = "ADMIN"
)

// StaffMember models an operations/support operator of the report tool.
type StaffMember struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole
	Team         *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
