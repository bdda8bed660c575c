package e2e

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/you/estately/domain"
	"github.com/you/estately/internal/devserver"
	"github.com/you/estately/internal/infrastructure/auth"
	"github.com/you/estately/internal/infrastructure/credstore"
	"github.com/you/estately/internal/infrastructure/rest"
	"github.com/you/estately/internal/mocks"
	"github.com/you/estately/internal/services"
)

const testJWTSecret = "e2e-test-secret"

// testEnv runs the full stack in-process: the dev backend on httptest with
// miniredis behind it, and the real client wiring in front.
type testEnv struct {
	Server   *httptest.Server
	Backend  *devserver.MemStore
	Notifier *mocks.MockNotifier
	Creds    *credstore.MemoryStore

	Sessions   *services.SessionManagerImpl
	Auth       domain.AuthGateway
	Profile    domain.ProfileGateway
	Properties domain.PropertyGateway
	Bookings   domain.BookingGateway
	Shortlist  domain.ShortlistGateway
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	notifier := mocks.NewMockNotifier()
	otpSvc := devserver.NewOTPService(notifier, rdb, devserver.OTPConfig{
		Length:       6,
		TTL:          5 * time.Minute,
		MaxAttempts:  3,
		ResendWindow: time.Minute,
		VerifiedTTL:  10 * time.Minute,
	})

	issuer := auth.NewTokenIssuer(testJWTSecret, "estately-test", time.Hour)

	backend := devserver.NewMemStore()
	backend.SeedProperties()

	az, err := devserver.NewAuthorizer()
	if err != nil {
		t.Fatalf("authorizer: %v", err)
	}

	router := devserver.BuildRouter(
		devserver.NewAuthHandlers(otpSvc, issuer, backend),
		devserver.NewPropertyHandlers(backend),
		devserver.NewBookingHandlers(backend),
		devserver.NewShortlistHandlers(backend),
		devserver.NewUserHandlers(backend),
		issuer,
		az,
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	creds := credstore.NewMemoryStore()
	sessions := services.NewSessionManager(creds, auth.NewClaimsInspector(), 6, logger)

	client := rest.NewClient(server.URL, 5*time.Second, sessions, sessions.HandleAuthFailure, logger)
	authGW := rest.NewAuthGateway(client)
	profileGW := rest.NewUserGateway(client)
	sessions.AttachGateways(authGW, profileGW)

	return &testEnv{
		Server:     server,
		Backend:    backend,
		Notifier:   notifier,
		Creds:      creds,
		Sessions:   sessions,
		Auth:       authGW,
		Profile:    profileGW,
		Properties: rest.NewPropertyGateway(client),
		Bookings:   rest.NewBookingGateway(client),
		Shortlist:  rest.NewShortlistGateway(client),
	}
}

// newClientOnly builds a second, independent client stack against an existing
// backend, simulating a fresh process sharing the credential store.
func newClientOnly(t *testing.T, env *testEnv, creds domain.CredentialStore) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := services.NewSessionManager(creds, auth.NewClaimsInspector(), 6, logger)

	client := rest.NewClient(env.Server.URL, 5*time.Second, sessions, sessions.HandleAuthFailure, logger)
	authGW := rest.NewAuthGateway(client)
	profileGW := rest.NewUserGateway(client)
	sessions.AttachGateways(authGW, profileGW)

	return &testEnv{
		Server:     env.Server,
		Backend:    env.Backend,
		Notifier:   env.Notifier,
		Sessions:   sessions,
		Auth:       authGW,
		Profile:    profileGW,
		Properties: rest.NewPropertyGateway(client),
		Bookings:   rest.NewBookingGateway(client),
		Shortlist:  rest.NewShortlistGateway(client),
	}
}

// forgedToken is structurally a JWT but carries a signature the backend never
// produced.
func forgedToken() string {
	return mocks.TestToken("USER")
}

// lastOTP extracts the plaintext code from the most recent SMS.
func (env *testEnv) lastOTP(t *testing.T) string {
	t.Helper()
	if len(env.Notifier.Sent) == 0 {
		t.Fatal("no OTP SMS recorded")
	}
	msg := env.Notifier.Sent[len(env.Notifier.Sent)-1].Message
	const prefix = "Your verification code is: "
	start := strings.Index(msg, prefix)
	if start < 0 {
		t.Fatalf("unexpected SMS format: %q", msg)
	}
	tail := msg[start+len(prefix):]
	end := strings.Index(tail, ".")
	if end < 0 {
		t.Fatalf("unexpected SMS format: %q", msg)
	}
	return tail[:end]
}
