package domain

import "time"

// Role is the UI-facing role hint decoded from the token's authorities claim.
// It is never an authorization boundary; the backend enforces access per request.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Classification is the server's verdict on whether a contact number belongs
// to an existing account or a new one.
type Classification string

const (
	ClassificationSignup Classification = "SIGNUP"
	ClassificationLogin  Classification = "LOGIN"
)

// VerifyOutcome is the server's reply to a successful OTP check.
type VerifyOutcome string

const (
	ProceedToSignup VerifyOutcome = "PROCEED_TO_SIGNUP"
	ProceedToLogin  VerifyOutcome = "PROCEED_TO_LOGIN"
)

// AuthState is the current step of an in-progress authentication attempt.
type AuthState string

const (
	StateContact       AuthState = "CONTACT"
	StateOTP           AuthState = "OTP"
	StateSignupDetails AuthState = "SIGNUP_DETAILS"
	StateComplete      AuthState = "LOGIN_COMPLETE"
)

// Profile holds the user-facing account fields fetched from the profile endpoint.
type Profile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	ContactNo string `json:"contactNo"`
}

// Session is the only authenticated entity that outlives a single screen.
// A published Session always carries a non-empty token, a role, and a profile.
type Session struct {
	Token   string
	Role    Role
	Profile Profile
}

// AuthAttempt is the transient state of one authentication flow. It is owned
// by the session manager and discarded on success, cancellation or teardown.
type AuthAttempt struct {
	ContactNo string
	State     AuthState
	IsNewUser bool
}

// SignupData collects the fields required to complete registration for a
// contact number that was already OTP-verified server-side.
type SignupData struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	ContactNo string `json:"contactNo"`
}

// Property is a listed real-estate record.
type Property struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location"`
	Price       int64    `json:"price"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	AreaSqft    int      `json:"areaSqft"`
	Featured    bool     `json:"featured"`
	Images      []string `json:"images,omitempty"`
}

// BookingStatus tracks the lifecycle of a site-visit booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// Booking is a scheduled site visit for a property.
type Booking struct {
	ID         string        `json:"id"`
	PropertyID string        `json:"propertyId"`
	ContactNo  string        `json:"contactNo"`
	VisitDate  time.Time     `json:"visitDate"`
	Status     BookingStatus `json:"status"`
	Notes      string        `json:"notes,omitempty"`
}

// ShortlistEntry links a user to a saved property.
type ShortlistEntry struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"propertyId"`
	AddedAt    time.Time `json:"addedAt"`
}
