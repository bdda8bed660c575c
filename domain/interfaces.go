package domain

import "context"

// SessionManager owns the phone/OTP authentication state machine and the
// session token lifecycle. Operations are serialized internally; callers may
// invoke them from any goroutine but only one attempt exists at a time.
type SessionManager interface {
	StartAuth(ctx context.Context, contactNo string) (Classification, error)
	VerifyOTP(ctx context.Context, contactNo, otp string) (VerifyOutcome, error)
	Login(ctx context.Context, contactNo string) (*Session, error)
	Signup(ctx context.Context, data SignupData) (*Session, error)
	Logout()
	InitializeFromStore(ctx context.Context) (*Session, error)
	ChangeContact() error
	Current() *Session
	State() AuthState
}

// AuthGateway talks to the remote passwordless auth endpoints.
type AuthGateway interface {
	StartAuth(ctx context.Context, contactNo string) (Classification, error)
	VerifyOTP(ctx context.Context, contactNo, otp string) (VerifyOutcome, error)
	SignIn(ctx context.Context, contactNo string) (*TokenGrant, error)
	SignUp(ctx context.Context, data SignupData) (*TokenGrant, error)
}

// TokenGrant is the payload of a successful signin/signup call.
type TokenGrant struct {
	JWT  string `json:"jwt"`
	Role Role   `json:"role"`
}

// ProfileGateway fetches and updates the authenticated user's profile.
type ProfileGateway interface {
	GetProfile(ctx context.Context) (*Profile, error)
	UpdateProfile(ctx context.Context, p *Profile) (*Profile, error)
}

// PropertyGateway exposes the property browsing and admin CRUD endpoints.
type PropertyGateway interface {
	List(ctx context.Context) ([]Property, error)
	Featured(ctx context.Context) ([]Property, error)
	Get(ctx context.Context, id string) (*Property, error)
	Search(ctx context.Context, query PropertySearch) ([]Property, error)
	AdminList(ctx context.Context) ([]Property, error)
	Create(ctx context.Context, p *Property) (*Property, error)
	Update(ctx context.Context, id string, p *Property) (*Property, error)
	Delete(ctx context.Context, id string) error
}

// PropertySearch are the filter parameters of the search endpoint.
type PropertySearch struct {
	Location string
	MinPrice int64
	MaxPrice int64
	Bedrooms int
}

// BookingGateway exposes the site-visit booking endpoints.
type BookingGateway interface {
	UserBookings(ctx context.Context) ([]Booking, error)
	Create(ctx context.Context, propertyID string, b *Booking) (*Booking, error)
	UserPropertyBooking(ctx context.Context, propertyID string) (*Booking, error)
	AllBookings(ctx context.Context) ([]Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status BookingStatus) (*Booking, error)
}

// ShortlistGateway exposes the shortlist endpoints.
type ShortlistGateway interface {
	Add(ctx context.Context, propertyID string) (*ShortlistEntry, error)
	List(ctx context.Context) ([]ShortlistEntry, error)
	Remove(ctx context.Context, entryID string) error
	Toggle(ctx context.Context, propertyID string) (bool, error)
}

// CredentialStore is the process-wide durable store for the session token.
// Only the session manager writes to it; other components read the published
// Session instead of the store.
type CredentialStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// TokenInspector decodes a token's claims client-side. The decode is
// unverified; the result is a display hint, not server truth.
type TokenInspector interface {
	RoleOf(token string) (Role, error)
}

// Notifier delivers one-time codes out of band.
type Notifier interface {
	SendSMS(to, message string) error
}
