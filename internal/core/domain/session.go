package domain

import "time"

// Principal is an authenticated identity.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the explicit authentication context handed from the transport
// layer to the services. A nil *Session means the caller is a guest.
type Session struct {
	Principal Principal `json:"principal"`
	Token     string    `json:"token,omitempty"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Authenticated reports whether s carries a principal.
func (s *Session) Authenticated() bool {
	return s != nil && s.Principal.ID != ""
}

// Identity is a principal together with its resolved role.
type Identity struct {
	Principal *Principal `json:"principal,omitempty"`
	Role      string     `json:"role"`
}

// SessionChangeKind enumerates session lifecycle notifications.
type SessionChangeKind string

const (
	SessionSignedUp  SessionChangeKind = "signed_up"
	SessionSignedIn  SessionChangeKind = "signed_in"
	SessionSignedOut SessionChangeKind = "signed_out"
)

// SessionChange is published whenever a principal signs up, in or out.
type SessionChange struct {
	Kind      SessionChangeKind
	Principal Principal
	At        time.Time
}
