package entity

import (
	"github.com/gofrs/uuid/v5"
)

// User is the authenticated hospital staff member, as resolved by the
// external auth service. Authentication itself is out of this service's
// hands; the user is only carried for access checks and audit logging.
type User struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Role      UserRole
}

type UserRole struct {
	ID   uuid.UUID `json:"role_id"`
	Name string    `json:"role_name"`
}

const (
	RoleCashier = "cashier"
	RoleDoctor  = "doctor"
	RoleNurse   = "nurse"
	RoleLabTech = "lab technician"
	RoleAdmin   = "admin"
)
