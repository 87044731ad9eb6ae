package entity

import "fmt"

type UserRole string

const (
	RolePlanner      UserRole = "planner"
	RoleVenueManager UserRole = "venue_manager"
	RoleSupplier     UserRole = "supplier"
	RoleAdmin        UserRole = "admin"
)

// ParseUserRole accepts only the known roles.
func ParseUserRole(s string) (UserRole, error) {
	switch role := UserRole(s); role {
	case RolePlanner, RoleVenueManager, RoleSupplier, RoleAdmin:
		return role, nil
	default:
		return "", fmt.Errorf("invalid user role: %q", s)
	}
}

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
}
