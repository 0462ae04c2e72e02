// internal/domain/session/session.go
package session

import "strings"

// Session identifies the scope a cart/favorites state belongs to:
// either an authenticated principal (UID set) or an anonymous device
// (DeviceID set). The identity provider owns the values; this core only
// observes them.
type Session struct {
	UID         string
	DisplayName string
	Email       string

	// DeviceID scopes the local fallback cart for anonymous sessions.
	DeviceID string
}

// Principal builds a signed-in session.
func Principal(uid, displayName, email string) Session {
	return Session{
		UID:         strings.TrimSpace(uid),
		DisplayName: strings.TrimSpace(displayName),
		Email:       strings.TrimSpace(email),
	}
}

// Anonymous builds a device-scoped session.
func Anonymous(deviceID string) Session {
	return Session{DeviceID: strings.TrimSpace(deviceID)}
}

// SignedIn reports whether a principal is present.
func (s Session) SignedIn() bool {
	return s.UID != ""
}

// Key is the stable scope key a session's state is registered under.
func (s Session) Key() string {
	if s.SignedIn() {
		return "user:" + s.UID
	}
	return "device:" + s.DeviceID
}
