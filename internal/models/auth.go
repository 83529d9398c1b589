package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserRole enumerates the caller roles the API distinguishes.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleFaculty UserRole = "faculty"
	RoleStudent UserRole = "student"
)

// JWTClaims represents the JWT payload issued by the institution's
// identity service. This API only verifies and reads tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}

// IsFaculty reports whether the claims belong to a faculty member.
func (c *JWTClaims) IsFaculty() bool {
	return c != nil && c.Role == RoleFaculty
}

// IsAdmin reports whether the claims belong to an administrator.
func (c *JWTClaims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
