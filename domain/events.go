package domain

import "time"

// SessionEventType identifies a session lifecycle event.
type SessionEventType string

const (
	// Authentication flow events
	AuthStartedEvent    SessionEventType = "AUTH_STARTED"
	OTPVerifiedEvent    SessionEventType = "OTP_VERIFIED"
	SessionCreatedEvent SessionEventType = "SESSION_CREATED"

	// Teardown events
	LogoutEvent       SessionEventType = "LOGOUT"
	AuthFailureEvent  SessionEventType = "AUTH_FAILURE_TEARDOWN"
	InitRejectedEvent SessionEventType = "INIT_TOKEN_REJECTED"
)

// SessionEvent is published by the session manager so the presentation layer
// can react (e.g. redirect to the unauthenticated entry point on teardown)
// without polling manager state.
type SessionEvent struct {
	Type      SessionEventType
	ContactNo string
	Timestamp time.Time
	Err       error
}

// SessionListener receives session lifecycle events. Callbacks run on the
// goroutine that triggered the event and must not call back into the manager.
type SessionListener func(SessionEvent)

// NewSessionEvent creates an event stamped with the current time.
func NewSessionEvent(t SessionEventType) SessionEvent {
	return SessionEvent{Type: t, Timestamp: time.Now().UTC()}
}

// WithContact sets the contact number field.
func (e SessionEvent) WithContact(contactNo string) SessionEvent {
	e.ContactNo = contactNo
	return e
}

// WithError sets the error field.
func (e SessionEvent) WithError(err error) SessionEvent {
	e.Err = err
	return e
}
