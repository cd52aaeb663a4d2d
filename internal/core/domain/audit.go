package domain

import "time"

// AuthEventType names a security-relevant account action.
type AuthEventType string

const (
	EventUserRegistered AuthEventType = "user_registered"
	EventLoginSucceeded AuthEventType = "login_succeeded"
	EventLoginFailed    AuthEventType = "login_failed"
	EventProfileUpdated AuthEventType = "profile_updated"
)

// AuthEvent is an entry in the auth audit trail.
type AuthEvent struct {
	Type       AuthEventType
	Subject    string // user id; empty when the account could not be identified
	Email      string
	OccurredAt time.Time
}
