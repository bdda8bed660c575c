package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/you/estately/domain"
	"github.com/you/estately/internal/logging"
	"github.com/you/estately/internal/mocks"
)

func newTestManager(authGW *mocks.MockAuthGateway, profileGW *mocks.MockProfileGateway, store *mocks.MockCredentialStore) *SessionManagerImpl {
	logger := logging.NewWithWriter(slog.LevelError, "text", io.Discard)
	m := NewSessionManager(store, mocks.NewMockTokenInspector(), 4, logger)
	m.AttachGateways(authGW, profileGW)
	return m
}

func TestSessionManagerImpl_StartAuth_Validation(t *testing.T) {
	tests := []struct {
		name      string
		contactNo string
		wantErr   error
		wantCalls int
	}{
		{name: "valid 10 digit number", contactNo: "9876543210", wantErr: nil, wantCalls: 1},
		{name: "too short", contactNo: "98765", wantErr: domain.ErrInvalidPhone, wantCalls: 0},
		{name: "too long", contactNo: "98765432101", wantErr: domain.ErrInvalidPhone, wantCalls: 0},
		{name: "non numeric", contactNo: "98765abc10", wantErr: domain.ErrInvalidPhone, wantCalls: 0},
		{name: "empty", contactNo: "", wantErr: domain.ErrInvalidPhone, wantCalls: 0},
		{name: "ten spaces", contactNo: "          ", wantErr: domain.ErrInvalidPhone, wantCalls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authGW := mocks.NewMockAuthGateway()
			m := newTestManager(authGW, mocks.NewMockProfileGateway(), mocks.NewMockCredentialStore())

			_, err := m.StartAuth(context.Background(), tt.contactNo)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if authGW.StartAuthCalls != tt.wantCalls {
				t.Errorf("expected %d network calls, got %d", tt.wantCalls, authGW.StartAuthCalls)
			}
		})
	}
}

func TestSessionManagerImpl_StartAuth_Transitions(t *testing.T) {
	t.Run("success moves attempt to OTP state", func(t *testing.T) {
		authGW := mocks.NewMockAuthGateway()
		authGW.StartAuthFunc = func(ctx context.Context, contactNo string) (domain.Classification, error) {
			return domain.ClassificationSignup, nil
		}
		m := newTestManager(authGW, mocks.NewMockProfileGateway(), mocks.NewMockCredentialStore())

		classification, err := m.StartAuth(context.Background(), "1234567890")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if classification != domain.ClassificationSignup {
			t.Errorf("expected SIGNUP, got %s", classification)
		}
		if got := m.State(); got != domain.StateOTP {
			t.Errorf("expected state OTP, got %s", got)
		}
	})

	t.Run("failure keeps attempt in contact state for retry", func(t *testing.T) {
		authGW := mocks.NewMockAuthGateway()
		authGW.StartAuthFunc = func(ctx context.Context, contactNo string) (domain.Classification, error) {
			return "", domain.ErrNetwork
		}
		m := newTestManager(authGW, mocks.NewMockProfileGateway(), mocks.NewMockCredentialStore())

		_, err := m.StartAuth(context.Background(), "1234567890")
		if !errors.Is(err, domain.ErrNetwork) {
			t.Fatalf("expected network error, got %v", err)
		}
		if got := m.State(); got != domain.StateContact {
			t.Errorf("expected state CONTACT, got %s", got)
		}

		// Retry with a corrected number succeeds.
		authGW.StartAuthFunc = nil
		if _, err := m.StartAuth(context.Background(), "9876543210"); err != nil {
			t.Fatalf("retry failed: %v", err)
		}
		if got := m.State(); got != domain.StateOTP {
			t.Errorf("expected state OTP after retry, got %s", got)
		}
	})
}

func TestSessionManagerImpl_VerifyOTP(t *testing.T) {
	start := func(t *testing.T, m *SessionManagerImpl) {
		t.Helper()
		if _, err := m.StartAuth(context.Background(), "9876543210"); err != nil {
			t.Fatalf("start auth: %v", err)
		}
	}

	t.Run("wrong otp length fails before any network call", func(t *testing.T) {
		authGW := mocks.NewMockAuthGateway()
		m := newTestManager(authGW, mocks.NewMockProfileGateway(), mocks.NewMockCredentialStore())
		start(t, m)

		_, err := m.VerifyOTP(context.Background(), "9876543210", "12345")
		if !errors.Is(err, domain.ErrInvalidOTP) {
			t.Fatalf("expected ErrInvalidOTP, got %v", err)
		}
		if authGW.VerifyOTPCalls != 0 {
			t.Errorf("expected no verify calls, got %d", authGW.VerifyOTPCalls)
		}
	})

	t.Run("otp before start auth is an invalid transition", func(t *testing.T) {
		m := newTestManager(mocks.NewMockAuthGateway(), mocks.NewMockProfileGateway(), mocks.NewMockCredentialStore())

		_, err := m.VerifyOTP(context.Background(), "9876543210", "1234")
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("proceed to login composes login before returning", func(t *testing.T) {
		authGW := mocks.NewMockAuthGateway()
		store := mocks.NewMockCredentialStore()
		m := newTestManager(authGW, mocks.NewMockProfileGateway(), store)
		start(t, m)

		outcome, err := m.VerifyOTP(context.Background(), "9876543210", "1234")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != domain.ProceedToLogin {
			t.Errorf("expected PROCEED_TO_LOGIN, got %s", outcome)
		}
		if authGW.SignInCalls != 1 {
			t.Errorf("expected one signin call, got %d", authGW.SignInCalls)
		}

		session := m.Current()
		if session == nil {
			t.Fatal("expected a published session")
		}
		if session.Token == "" || session.Role == "" {
			t.Errorf("session missing token or role: %+v", session)
		}
		if store.Stored != session.Token {
			t.Errorf("token not persisted: store=%q session=%q", store.Stored, session.Token)
		}
		if got := m.State(); got != domain.StateComplete {
			t.Errorf("expected LOGIN_COMPLETE, got %s", got)
		}
	})

	t.Run("proceed to signup transitions without creating a session", func(t *testing.T) {
		authGW := mocks.NewMockAuthGateway()
		authGW.VerifyOTPFunc = func(ctx context.Context, contactNo, otp string) (domain.VerifyOutcome, error) {
			return domain.ProceedToSignup, nil
		}
		m := newTestManager(authGW, mocks.NewMockProfileGateway(), mocks.NewMockCredentialStore())
		start(t, m)

		outcome, err := m.VerifyOTP(context.Background(), "9876543210", "1234")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != domain.ProceedToSignup {
			t.Errorf("expected PROCEED_TO_SIGNUP, got %s", outcome)
		}
		if m.Current() != nil {
			t.Error("no session must exist before signup completes")
		}
		if authGW.SignInCalls != 0 {
			t.Errorf("signin must not run for new users, got %d calls", authGW.SignInCalls)
		}
		if got := m.State(); got != domain.StateSignupDetails {
			t.Errorf("expected SIGNUP_DETAILS, got %s", got)
		}
	})

	t.Run("unexpected server value keeps attempt in OTP state", func(t *testing.T) {
		authGW := mocks.NewMockAuthGateway()
		authGW.VerifyOTPFunc = func(ctx context.Context, contactNo, otp string) (domain.VerifyOutcome, error) {
			return "", domain.ErrUnexpectedReply
		}
		m := newTestManager(authGW, mocks.NewMockProfileGateway(), mocks.NewMockCredentialStore())
		start(t, m)

		_, err := m.VerifyOTP(context.Background(), "9876543210", "1234")
		if !errors.Is(err, domain.ErrUnexpectedReply) {
			t.Fatalf("expected ErrUnexpectedReply, got %v", err)
		}
		if got := m.State(); got != domain.StateOTP {
			t.Errorf("expected to stay in OTP, got %s", got)
		}
	})
}

func TestSessionManagerImpl_Login_ProfileRollback(t *testing.T) {
	authGW := mocks.NewMockAuthGateway()
	profileGW := mocks.NewMockProfileGateway()
	profileGW.GetProfileFunc = func(ctx context.Context) (*domain.Profile, error) {
		return nil, domain.ErrAuthFailed
	}
	store := mocks.NewMockCredentialStore()
	m := newTestManager(authGW, profileGW, store)

	if _, err := m.StartAuth(context.Background(), "9876543210"); err != nil {
		t.Fatalf("start auth: %v", err)
	}

	_, err := m.Login(context.Background(), "9876543210")
	if err == nil {
		t.Fatal("expected login to fail when profile fetch fails")
	}
	if m.Current() != nil {
		t.Error("no partial session may be published")
	}
	if store.Stored != "" {
		t.Errorf("token must be rolled back from store, still holds %q", store.Stored)
	}
	if m.Token() != "" {
		t.Error("in-memory token must be rolled back")
	}
}

func TestSessionManagerImpl_Login_TokenStepFailure(t *testing.T) {
	authGW := mocks.NewMockAuthGateway()
	authGW.SignInFunc = func(ctx context.Context, contactNo string) (*domain.TokenGrant, error) {
		return nil, domain.ErrAccountLocked
	}
	store := mocks.NewMockCredentialStore()
	m := newTestManager(authGW, mocks.NewMockProfileGateway(), store)

	if _, err := m.StartAuth(context.Background(), "9876543210"); err != nil {
		t.Fatalf("start auth: %v", err)
	}

	_, err := m.Login(context.Background(), "9876543210")
	if !errors.Is(err, domain.ErrAccountLocked) {
		t.Fatalf("expected ErrAccountLocked, got %v", err)
	}
	if store.SaveCalls != 0 {
		t.Errorf("store must be untouched when the token step fails, got %d saves", store.SaveCalls)
	}
}

func TestSessionManagerImpl_Signup(t *testing.T) {
	startSignupFlow := func(t *testing.T, m *SessionManagerImpl, authGW *mocks.MockAuthGateway) {
		t.Helper()
		authGW.StartAuthFunc = func(ctx context.Context, contactNo string) (domain.Classification, error) {
			return domain.ClassificationSignup, nil
		}
		authGW.VerifyOTPFunc = func(ctx context.Context, contactNo, otp string) (domain.VerifyOutcome, error) {
			return domain.ProceedToSignup, nil
		}
		if _, err := m.StartAuth(context.Background(), "1234567890"); err != nil {
			t.Fatalf("start auth: %v", err)
		}
		if _, err := m.VerifyOTP(context.Background(), "1234567890", "1234"); err != nil {
			t.Fatalf("verify otp: %v", err)
		}
	}

	t.Run("missing fields fail before any network call", func(t *testing.T) {
		authGW := mocks.NewMockAuthGateway()
		m := newTestManager(authGW, mocks.NewMockProfileGateway(), mocks.NewMockCredentialStore())
		startSignupFlow(t, m, authGW)

		_, err := m.Signup(context.Background(), domain.SignupData{Name: "", Email: "a@x.com", ContactNo: "1234567890"})
		if !errors.Is(err, domain.ErrMissingSignupFields) {
			t.Fatalf("expected ErrMissingSignupFields, got %v", err)
		}
		if authGW.SignUpCalls != 0 {
			t.Errorf("expected no signup calls, got %d", authGW.SignUpCalls)
		}
	})

	t.Run("full signup flow publishes a session", func(t *testing.T) {
		authGW := mocks.NewMockAuthGateway()
		store := mocks.NewMockCredentialStore()
		m := newTestManager(authGW, mocks.NewMockProfileGateway(), store)
		startSignupFlow(t, m, authGW)

		session, err := m.Signup(context.Background(), domain.SignupData{Name: "A", Email: "a@x.com", ContactNo: "1234567890"})
		if err != nil {
			t.Fatalf("signup: %v", err)
		}
		if session == nil || session.Token == "" {
			t.Fatal("expected a populated session")
		}
		if got := m.State(); got != domain.StateComplete {
			t.Errorf("expected LOGIN_COMPLETE, got %s", got)
		}
		if store.Stored != session.Token {
			t.Errorf("token not persisted before profile fetch")
		}
	})

	t.Run("duplicate email surfaces as conflict", func(t *testing.T) {
		authGW := mocks.NewMockAuthGateway()
		authGW.SignUpFunc = func(ctx context.Context, data domain.SignupData) (*domain.TokenGrant, error) {
			return nil, domain.ErrEmailTaken
		}
		m := newTestManager(authGW, mocks.NewMockProfileGateway(), mocks.NewMockCredentialStore())
		startSignupFlow(t, m, authGW)

		_, err := m.Signup(context.Background(), domain.SignupData{Name: "A", Email: "a@x.com", ContactNo: "1234567890"})
		if !errors.Is(err, domain.ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})
}

func TestSessionManagerImpl_Logout_Idempotent(t *testing.T) {
	store := mocks.NewMockCredentialStore()
	m := newTestManager(mocks.NewMockAuthGateway(), mocks.NewMockProfileGateway(), store)

	// Logout with no active session still clears the persisted credential.
	m.Logout()
	if store.ClearCalls != 1 {
		t.Errorf("expected 1 clear call, got %d", store.ClearCalls)
	}

	m.Logout()
	if store.ClearCalls != 2 {
		t.Errorf("logout must stay idempotent, got %d clear calls", store.ClearCalls)
	}
	if m.Current() != nil {
		t.Error("no session may survive logout")
	}
	if got := m.State(); got != domain.StateContact {
		t.Errorf("expected CONTACT after logout, got %s", got)
	}
}

func TestSessionManagerImpl_InitializeFromStore(t *testing.T) {
	t.Run("no stored token yields no session", func(t *testing.T) {
		profileGW := mocks.NewMockProfileGateway()
		m := newTestManager(mocks.NewMockAuthGateway(), profileGW, mocks.NewMockCredentialStore())

		session, err := m.InitializeFromStore(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if session != nil {
			t.Error("expected no session")
		}
		if profileGW.GetProfileCalls != 0 {
			t.Errorf("expected no profile calls, got %d", profileGW.GetProfileCalls)
		}
	})

	t.Run("server-rejected token fails closed and empties the store", func(t *testing.T) {
		profileGW := mocks.NewMockProfileGateway()
		profileGW.GetProfileFunc = func(ctx context.Context) (*domain.Profile, error) {
			return nil, domain.ErrAuthFailed
		}
		store := mocks.NewMockCredentialStore()
		store.Stored = mocks.DefaultTestToken
		m := newTestManager(mocks.NewMockAuthGateway(), profileGW, store)

		session, err := m.InitializeFromStore(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if session != nil {
			t.Error("expected no session for a rejected token")
		}
		if store.Stored != "" {
			t.Errorf("store must be emptied, still holds %q", store.Stored)
		}
		if m.Token() != "" {
			t.Error("in-memory token must be cleared")
		}
	})

	t.Run("valid token restores a session", func(t *testing.T) {
		store := mocks.NewMockCredentialStore()
		store.Stored = mocks.DefaultTestToken
		m := newTestManager(mocks.NewMockAuthGateway(), mocks.NewMockProfileGateway(), store)

		session, err := m.InitializeFromStore(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if session == nil {
			t.Fatal("expected a restored session")
		}
		if session.Token != mocks.DefaultTestToken {
			t.Errorf("unexpected token %q", session.Token)
		}
		if session.Profile.Name == "" {
			t.Error("restored session must carry a profile")
		}
	})
}

func TestSessionManagerImpl_HandleAuthFailure(t *testing.T) {
	store := mocks.NewMockCredentialStore()
	m := newTestManager(mocks.NewMockAuthGateway(), mocks.NewMockProfileGateway(), store)

	if _, err := m.StartAuth(context.Background(), "9876543210"); err != nil {
		t.Fatalf("start auth: %v", err)
	}
	if _, err := m.Login(context.Background(), "9876543210"); err != nil {
		t.Fatalf("login: %v", err)
	}

	var events []domain.SessionEvent
	m.Subscribe(func(e domain.SessionEvent) { events = append(events, e) })

	m.HandleAuthFailure("/users/bookings", 401)

	if m.Current() != nil {
		t.Error("session must be torn down")
	}
	if store.Stored != "" {
		t.Errorf("persisted credential must be cleared, holds %q", store.Stored)
	}
	if len(events) != 1 || events[0].Type != domain.AuthFailureEvent {
		t.Errorf("expected one AUTH_FAILURE_TEARDOWN event, got %+v", events)
	}

	// A second failure with no token held is a no-op.
	m.HandleAuthFailure("/users/bookings", 401)
	if len(events) != 1 {
		t.Errorf("teardown without a token must not re-fire events, got %d", len(events))
	}
}

func TestSessionManagerImpl_ChangeContact(t *testing.T) {
	m := newTestManager(mocks.NewMockAuthGateway(), mocks.NewMockProfileGateway(), mocks.NewMockCredentialStore())

	if err := m.ChangeContact(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition outside OTP state, got %v", err)
	}

	if _, err := m.StartAuth(context.Background(), "9876543210"); err != nil {
		t.Fatalf("start auth: %v", err)
	}
	if err := m.ChangeContact(); err != nil {
		t.Fatalf("change contact: %v", err)
	}
	if got := m.State(); got != domain.StateContact {
		t.Errorf("expected CONTACT, got %s", got)
	}
}

func TestSessionManagerImpl_RoleFromDecodedClaim(t *testing.T) {
	authGW := mocks.NewMockAuthGateway()
	adminToken := mocks.TestToken("ADMIN", "USER")
	authGW.SignInFunc = func(ctx context.Context, contactNo string) (*domain.TokenGrant, error) {
		// Server reports USER but the token claim says ADMIN; the decoded
		// claim wins.
		return &domain.TokenGrant{JWT: adminToken, Role: domain.RoleUser}, nil
	}

	logger := logging.NewWithWriter(slog.LevelError, "text", io.Discard)
	m := NewSessionManager(mocks.NewMockCredentialStore(), &mocks.MockTokenInspector{
		RoleOfFunc: func(token string) (domain.Role, error) {
			if token != adminToken {
				t.Errorf("inspector saw unexpected token %q", token)
			}
			return domain.RoleAdmin, nil
		},
	}, 4, logger)
	m.AttachGateways(authGW, mocks.NewMockProfileGateway())

	if _, err := m.StartAuth(context.Background(), "9876543210"); err != nil {
		t.Fatalf("start auth: %v", err)
	}
	session, err := m.Login(context.Background(), "9876543210")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Role != domain.RoleAdmin {
		t.Errorf("expected role from decoded claim, got %s", session.Role)
	}
}
