package app

import (
	"log/slog"

	"github.com/you/estately/domain"
	"github.com/you/estately/internal/config"
	"github.com/you/estately/internal/infrastructure/auth"
	"github.com/you/estately/internal/infrastructure/credstore"
	"github.com/you/estately/internal/infrastructure/rest"
	"github.com/you/estately/internal/logging"
	"github.com/you/estately/internal/services"
)

// Container holds the client-side dependency graph: credential store, session
// manager, HTTP client and the typed gateways behind it.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	Sessions   *services.SessionManagerImpl
	Client     *rest.Client
	Auth       domain.AuthGateway
	Profile    domain.ProfileGateway
	Properties domain.PropertyGateway
	Bookings   domain.BookingGateway
	Shortlist  domain.ShortlistGateway
}

// NewContainer wires the client stack. The session manager is both the
// client's token source and its auth-failure hook, so it is built first and
// the gateways are attached afterwards.
func NewContainer(cfg *config.Config) (*Container, error) {
	logger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	store, err := credstore.NewFileStore(cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}

	sessions := services.NewSessionManager(store, auth.NewClaimsInspector(), cfg.OTPLength, logger)

	client := rest.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, sessions, sessions.HandleAuthFailure, logger)

	authGW := rest.NewAuthGateway(client)
	profileGW := rest.NewUserGateway(client)
	sessions.AttachGateways(authGW, profileGW)

	return &Container{
		Config:     cfg,
		Logger:     logger,
		Sessions:   sessions,
		Client:     client,
		Auth:       authGW,
		Profile:    profileGW,
		Properties: rest.NewPropertyGateway(client),
		Bookings:   rest.NewBookingGateway(client),
		Shortlist:  rest.NewShortlistGateway(client),
	}, nil
}
