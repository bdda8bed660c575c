package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/you/estately/domain"
)

// SessionManagerImpl implements domain.SessionManager. It owns the phone/OTP
// authentication state machine, the single process-wide Session, and the
// credential store. Operations are serialized by an internal mutex so only
// one step of one attempt runs at a time.
type SessionManagerImpl struct {
	mu sync.Mutex // serializes operations, single-flight per attempt

	authGW    domain.AuthGateway
	profileGW domain.ProfileGateway
	store     domain.CredentialStore
	inspector domain.TokenInspector
	otpLength int
	logger    *slog.Logger

	attempt domain.AuthAttempt

	// sessMu guards session and token. The bearer transport reads the token
	// from other goroutines while an operation holds mu, so these fields have
	// their own lock and auth-failure teardown never touches mu.
	sessMu  sync.RWMutex
	session *domain.Session
	token   string

	listenerMu sync.Mutex
	listeners  []domain.SessionListener
}

// NewSessionManager creates a session manager. Gateways are attached
// separately because they require an HTTP client that itself needs the
// manager as its token source.
func NewSessionManager(store domain.CredentialStore, inspector domain.TokenInspector, otpLength int, logger *slog.Logger) *SessionManagerImpl {
	return &SessionManagerImpl{
		store:     store,
		inspector: inspector,
		otpLength: otpLength,
		logger:    logger,
		attempt:   domain.AuthAttempt{State: domain.StateContact},
	}
}

// AttachGateways wires the remote API gateways. Must be called once before
// any operation.
func (m *SessionManagerImpl) AttachGateways(authGW domain.AuthGateway, profileGW domain.ProfileGateway) {
	m.authGW = authGW
	m.profileGW = profileGW
}

// Subscribe registers a listener for session lifecycle events.
func (m *SessionManagerImpl) Subscribe(l domain.SessionListener) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()
	m.listeners = append(m.listeners, l)
}

func (m *SessionManagerImpl) publish(e domain.SessionEvent) {
	m.listenerMu.Lock()
	listeners := make([]domain.SessionListener, len(m.listeners))
	copy(listeners, m.listeners)
	m.listenerMu.Unlock()

	for _, l := range listeners {
		l(e)
	}
}

// Token implements the transport's token source. Empty when no token is held.
func (m *SessionManagerImpl) Token() string {
	m.sessMu.RLock()
	defer m.sessMu.RUnlock()
	return m.token
}

// Current implements domain.SessionManager. The returned Session is complete
// or nil, never partial.
func (m *SessionManagerImpl) Current() *domain.Session {
	m.sessMu.RLock()
	defer m.sessMu.RUnlock()
	if m.session == nil {
		return nil
	}
	s := *m.session
	return &s
}

// State implements domain.SessionManager.
func (m *SessionManagerImpl) State() domain.AuthState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempt.State
}

// StartAuth implements domain.SessionManager. It begins a fresh attempt for
// the given contact number; on any failure the attempt is back in the
// contact-entry state so the user can retry with a corrected number.
func (m *SessionManagerImpl) StartAuth(ctx context.Context, contactNo string) (domain.Classification, error) {
	if !validContactNo(contactNo) {
		return "", domain.ErrInvalidPhone
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempt = domain.AuthAttempt{ContactNo: contactNo, State: domain.StateContact}

	classification, err := m.authGW.StartAuth(ctx, contactNo)
	if err != nil {
		return "", err
	}

	m.attempt.State = domain.StateOTP
	m.attempt.IsNewUser = classification == domain.ClassificationSignup
	m.logger.Debug("auth started", "contactNo", contactNo, "classification", classification)
	m.publish(domain.NewSessionEvent(domain.AuthStartedEvent).WithContact(contactNo))

	return classification, nil
}

// VerifyOTP implements domain.SessionManager. PROCEED_TO_LOGIN completes
// authentication in the same operation: OTP verification for an existing
// user immediately composes into login without a separate user action.
func (m *SessionManagerImpl) VerifyOTP(ctx context.Context, contactNo, otp string) (domain.VerifyOutcome, error) {
	if len(otp) != m.otpLength || !allDigits(otp) {
		return "", domain.ErrInvalidOTP
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.attempt.State != domain.StateOTP {
		return "", fmt.Errorf("%w: verify otp in state %s", domain.ErrInvalidTransition, m.attempt.State)
	}

	outcome, err := m.authGW.VerifyOTP(ctx, contactNo, otp)
	if err != nil {
		// The attempt stays in the OTP state; an unexpected server value is
		// surfaced but non-fatal, the user may re-enter the code.
		return "", err
	}

	m.publish(domain.NewSessionEvent(domain.OTPVerifiedEvent).WithContact(contactNo))

	switch outcome {
	case domain.ProceedToSignup:
		m.attempt.State = domain.StateSignupDetails
		return outcome, nil
	case domain.ProceedToLogin:
		if _, err := m.login(ctx, contactNo); err != nil {
			return "", err
		}
		return outcome, nil
	default:
		return "", fmt.Errorf("%w: outcome %q", domain.ErrUnexpectedReply, outcome)
	}
}

// Login implements domain.SessionManager. The server must already have seen
// a successful OTP check for this contact number.
func (m *SessionManagerImpl) Login(ctx context.Context, contactNo string) (*domain.Session, error) {
	if !validContactNo(contactNo) {
		return nil, domain.ErrInvalidPhone
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.attempt.State != domain.StateOTP {
		return nil, fmt.Errorf("%w: login in state %s", domain.ErrInvalidTransition, m.attempt.State)
	}
	return m.login(ctx, contactNo)
}

// login acquires a token, persists it, and fetches the profile. m.mu held.
// Ordering is strict: the token is persisted and attached to outbound
// requests before the profile fetch is issued. If the profile fetch fails the
// token is rolled back so the process never holds a token without a profile.
func (m *SessionManagerImpl) login(ctx context.Context, contactNo string) (*domain.Session, error) {
	grant, err := m.authGW.SignIn(ctx, contactNo)
	if err != nil {
		return nil, err
	}
	return m.establishSession(ctx, contactNo, grant)
}

// Signup implements domain.SessionManager.
func (m *SessionManagerImpl) Signup(ctx context.Context, data domain.SignupData) (*domain.Session, error) {
	if data.Name == "" || data.Email == "" {
		return nil, domain.ErrMissingSignupFields
	}
	if !validContactNo(data.ContactNo) {
		return nil, domain.ErrInvalidPhone
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.attempt.State != domain.StateSignupDetails {
		return nil, fmt.Errorf("%w: signup in state %s", domain.ErrInvalidTransition, m.attempt.State)
	}

	grant, err := m.authGW.SignUp(ctx, data)
	if err != nil {
		return nil, err
	}
	return m.establishSession(ctx, data.ContactNo, grant)
}

// establishSession runs the token-then-profile sequence shared by login and
// signup. m.mu held.
func (m *SessionManagerImpl) establishSession(ctx context.Context, contactNo string, grant *domain.TokenGrant) (*domain.Session, error) {
	m.setToken(grant.JWT)
	if err := m.store.Save(grant.JWT); err != nil {
		m.setToken("")
		return nil, fmt.Errorf("persist token: %w", err)
	}

	role, err := m.inspector.RoleOf(grant.JWT)
	if err != nil {
		// The token decodes on a best-effort basis; fall back to the role the
		// server reported alongside the grant.
		role = grant.Role
		if role == "" {
			role = domain.RoleUser
		}
	}

	profile, err := m.profileGW.GetProfile(ctx)
	if err != nil {
		m.rollbackToken()
		return nil, fmt.Errorf("profile fetch after token grant: %w", err)
	}

	session := &domain.Session{Token: grant.JWT, Role: role, Profile: *profile}

	m.sessMu.Lock()
	m.session = session
	m.sessMu.Unlock()

	m.attempt.State = domain.StateComplete
	m.logger.Info("session established", "contactNo", contactNo, "role", role)
	m.publish(domain.NewSessionEvent(domain.SessionCreatedEvent).WithContact(contactNo))

	s := *session
	return &s, nil
}

// rollbackToken removes a token that never became a full session.
func (m *SessionManagerImpl) rollbackToken() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("credential rollback failed", "err", err)
	}
	m.setToken("")
}

// Logout implements domain.SessionManager. Unconditional and idempotent:
// it clears the persisted credential and the in-memory session regardless of
// current state and never fails.
func (m *SessionManagerImpl) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.logger.Warn("credential clear on logout failed", "err", err)
	}

	m.sessMu.Lock()
	m.session = nil
	m.token = ""
	m.sessMu.Unlock()

	m.attempt = domain.AuthAttempt{State: domain.StateContact}
	m.publish(domain.NewSessionEvent(domain.LogoutEvent))
}

// InitializeFromStore implements domain.SessionManager. Invoked once at
// process start; a stored token that cannot be turned into a full session is
// treated as invalid and removed (fails closed, not open).
func (m *SessionManagerImpl) InitializeFromStore(ctx context.Context) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := m.store.Load()
	if err != nil {
		m.logger.Warn("credential load failed", "err", err)
		return nil, nil
	}
	if token == "" {
		return nil, nil
	}

	m.setToken(token)

	role, err := m.inspector.RoleOf(token)
	if err != nil {
		m.rejectStoredToken(err)
		return nil, nil
	}

	profile, err := m.profileGW.GetProfile(ctx)
	if err != nil {
		m.rejectStoredToken(err)
		return nil, nil
	}

	session := &domain.Session{Token: token, Role: role, Profile: *profile}

	m.sessMu.Lock()
	m.session = session
	m.sessMu.Unlock()

	m.attempt.State = domain.StateComplete
	m.logger.Info("session restored from credential store", "role", role)

	s := *session
	return &s, nil
}

func (m *SessionManagerImpl) rejectStoredToken(cause error) {
	m.logger.Warn("stored token rejected", "err", cause)
	m.rollbackToken()
	m.publish(domain.NewSessionEvent(domain.InitRejectedEvent).WithError(cause))
}

// ChangeContact implements domain.SessionManager: the user goes back from the
// OTP screen to re-enter the number.
func (m *SessionManagerImpl) ChangeContact() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.attempt.State != domain.StateOTP {
		return fmt.Errorf("%w: change contact in state %s", domain.ErrInvalidTransition, m.attempt.State)
	}
	m.attempt = domain.AuthAttempt{State: domain.StateContact}
	return nil
}

// HandleAuthFailure is the transport's teardown hook: a 401/403 from a
// non-public endpoint invalidates the session exactly like an explicit
// logout. It intentionally does not take m.mu since it can fire while an
// operation is in flight, including this manager's own profile fetch.
func (m *SessionManagerImpl) HandleAuthFailure(path string, status int) {
	m.sessMu.Lock()
	hadToken := m.token != ""
	m.session = nil
	m.token = ""
	m.sessMu.Unlock()

	if !hadToken {
		return
	}

	if err := m.store.Clear(); err != nil {
		m.logger.Warn("credential clear on auth failure failed", "err", err)
	}
	m.logger.Info("session torn down on auth failure", "path", path, "status", status)
	m.publish(domain.NewSessionEvent(domain.AuthFailureEvent).WithError(fmt.Errorf("%s answered %d", path, status)))
}

func (m *SessionManagerImpl) setToken(token string) {
	m.sessMu.Lock()
	m.token = token
	m.sessMu.Unlock()
}

func validContactNo(contactNo string) bool {
	return len(contactNo) == 10 && allDigits(contactNo)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Compile-time interface compliance verification
var _ domain.SessionManager = (*SessionManagerImpl)(nil)
