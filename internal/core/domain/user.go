package domain

import "time"

const (
	RoleCustomer    = "customer"
	RoleMarketAdmin = "market_admin"
	RoleSuperAdmin  = "super_admin"
)

const (
	LocaleEN = "en"
	LocaleUA = "ua"
)

// MinPasswordLength is the shortest plaintext password accepted at registration.
const MinPasswordLength = 8

// MaxPasswordBytes is the bcrypt input limit. It counts bytes, not characters.
const MaxPasswordBytes = 72

// MaxNameLength bounds the display name.
const MaxNameLength = 100

// User models a registered marketplace account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Locale       string    `json:"locale"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserPatch carries the profile fields a user may change about themselves.
// A nil field is left untouched.
type UserPatch struct {
	Name   *string
	Locale *string
}

// IsEmpty reports whether the patch would change nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Locale == nil
}

func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleMarketAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

func ValidLocale(locale string) bool {
	return locale == LocaleEN || locale == LocaleUA
}
