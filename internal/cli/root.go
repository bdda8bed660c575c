package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/you/estately/domain"
	"github.com/you/estately/internal/app"
	"github.com/you/estately/internal/config"
)

var (
	flagConfig    string
	flagServer    string
	flagLogLevel  string
	flagLogFormat string

	container *app.Container
)

// defaultServer returns the default API URL, checking ESTATELY_API_URL first.
func defaultServer() string {
	if s := os.Getenv("ESTATELY_API_URL"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the estately CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "estately",
		Short: "Estately property client",
		Long:  "Estately browses properties, books site visits and manages phone/OTP sessions against an Estately API server.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("server") || cfg.APIBaseURL == "" {
				cfg.APIBaseURL = flagServer
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = flagLogLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = flagLogFormat
			}

			container, err = app.NewContainer(cfg)
			if err != nil {
				return fmt.Errorf("init client: %w", err)
			}
			container.Sessions.Subscribe(func(e domain.SessionEvent) {
				if e.Type == domain.AuthFailureEvent {
					fmt.Fprintln(os.Stderr, "Session expired; run `estately login` to sign in again.")
				}
			})

			// Restore a persisted session if one survives inspection.
			// A rejected token fails closed to the logged-out state.
			if _, err := container.Sessions.InitializeFromStore(cmd.Context()); err != nil {
				return fmt.Errorf("restore session: %w", err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "config/config.yml", "Config file path")
	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "API server URL (or ESTATELY_API_URL env)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newProfileCmd(),
		newPropertiesCmd(),
		newBookingsCmd(),
		newShortlistCmd(),
		newAdminCmd(),
	)

	return root
}
