package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/you/estately/domain"
	"github.com/you/estately/internal/config"
	"github.com/you/estately/internal/devserver"
	"github.com/you/estately/internal/infrastructure/auth"
	"github.com/you/estately/internal/infrastructure/notifications"
)

// RunDevServer wires and serves the local API backend.
func RunDevServer(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	notifier := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	otpSvc := devserver.NewOTPService(notifier, rdb, devserver.OTPConfig{
		Length:       cfg.OTPCodeLength,
		TTL:          cfg.OTPTTL,
		MaxAttempts:  cfg.OTPMaxAttempts,
		ResendWindow: cfg.OTPResendWindow,
		VerifiedTTL:  cfg.OTPVerifiedTTL,
	})

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	store := devserver.NewMemStore()
	store.SeedProperties()
	// Default local admin; sign in with any OTP sent to this number.
	if err := store.SeedUser("Admin", "admin@estately.local", "9999999999", domain.RoleAdmin, false); err != nil {
		return err
	}

	az, err := devserver.NewAuthorizer()
	if err != nil {
		return err
	}

	r := devserver.BuildRouter(
		devserver.NewAuthHandlers(otpSvc, issuer, store),
		devserver.NewPropertyHandlers(store),
		devserver.NewBookingHandlers(store),
		devserver.NewShortlistHandlers(store),
		devserver.NewUserHandlers(store),
		issuer,
		az,
	)

	log.Printf("dev backend listening on :%s", cfg.Port)
	return http.ListenAndServe(":"+cfg.Port, r)
}
