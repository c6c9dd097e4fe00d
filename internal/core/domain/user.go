package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether s is a recognised role.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleAdmin
}

var ErrUserNotFound = errors.New("user not found")
var ErrDuplicateIdentity = errors.New("username or email already taken")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenInvalid = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")
var ErrForbidden = errors.New("access forbidden")
var ErrValidation = errors.New("validation failed")

// User models an account in the system: its identity, its credential hash,
// its authorization role, and the reward counters mutated by admin
// operations and tracked clicks.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Role             string    `json:"role"`
	XP               int       `json:"xp"`
	Level            int       `json:"level"`
	Entries          int       `json:"entries"`
	LinkIDs          []string  `json:"link_ids"`
	EmailVerified    bool      `json:"email_verified"`
	ResetToken       string    `json:"-"`
	ResetTokenExpiry time.Time `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// LevelForXP maps an XP total to a level. Every 100 XP is one level,
// starting at level 1.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/100 + 1
}
