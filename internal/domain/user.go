package domain

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleFarmer   Role = "FARMER"
	RoleOperator Role = "OPERATOR"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole accepts any casing but only the three known roles.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleFarmer, RoleOperator, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("%q is not one of: FARMER, OPERATOR, ADMIN", s)
	}
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Village      string    `json:"village,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
