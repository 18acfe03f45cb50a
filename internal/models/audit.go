package models

import "time"

// AuthEventType is one of the auth outcomes recorded to auth_logs.
type AuthEventType string

const (
	EventLoginSuccess  AuthEventType = "login_success"
	EventLoginFailed   AuthEventType = "login_failed"
	EventLoginError    AuthEventType = "login_error"
	EventSignupSuccess AuthEventType = "signup_success"
	EventSignupFailed  AuthEventType = "signup_failed"
	EventSignupError   AuthEventType = "signup_error"
)

func (t AuthEventType) Valid() bool {
	switch t {
	case EventLoginSuccess, EventLoginFailed, EventLoginError,
		EventSignupSuccess, EventSignupFailed, EventSignupError:
		return true
	}
	return false
}

// AuthEvent is a row of the identity backend's auth_logs table.
type AuthEvent struct {
	ID           string        `json:"id" db:"id"`
	UserID       *string       `json:"userId,omitempty" db:"user_id"`
	EventType    AuthEventType `json:"eventType" db:"event_type"`
	Email        string        `json:"email" db:"email"`
	Success      bool          `json:"success" db:"success"`
	ErrorMessage *string       `json:"errorMessage,omitempty" db:"error_message"`
	IPAddress    string        `json:"ipAddress" db:"ip_address"`
	UserAgent    string        `json:"userAgent" db:"user_agent"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
}
