package devserver

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/you/estately/domain"
)

// OTP errors
var (
	errOTPNotFound    = errors.New("otp not found or expired")
	errOTPInvalid     = errors.New("invalid otp code")
	errOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
	errOTPThrottled   = errors.New("otp resend limit exceeded")
)

// OTPConfig tunes code generation and verification.
type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
	// VerifiedTTL bounds the window between OTP verification and the
	// signin/signup call that consumes it.
	VerifiedTTL time.Duration
}

// OTPService issues and verifies one-time codes using Redis persistence.
// Codes are bcrypt-hashed at rest; only the SMS carries the plaintext.
type OTPService struct {
	notifier domain.Notifier
	redis    *redis.Client
	config   OTPConfig
}

// NewOTPService creates a new Redis-based OTP service
func NewOTPService(notifier domain.Notifier, redisClient *redis.Client, config OTPConfig) *OTPService {
	return &OTPService{
		notifier: notifier,
		redis:    redisClient,
		config:   config,
	}
}

func otpKey(contactNo string) string      { return fmt.Sprintf("otp:%s", contactNo) }
func attemptsKey(contactNo string) string { return fmt.Sprintf("otp:att:%s", contactNo) }
func resendKey(contactNo string) string   { return fmt.Sprintf("otp:res:%s", contactNo) }
func verifiedKey(contactNo string) string { return fmt.Sprintf("otp:ok:%s", contactNo) }

// Generate creates a code for the contact number, stores its hash and sends
// the plaintext over SMS.
func (s *OTPService) Generate(ctx context.Context, contactNo string) error {
	// Check resend throttle
	ttl, err := s.redis.TTL(ctx, resendKey(contactNo)).Result()
	if err != nil {
		return fmt.Errorf("failed to check resend TTL: %w", err)
	}
	if ttl > 0 {
		return fmt.Errorf("%w: wait %d seconds", errOTPThrottled, int64(ttl.Seconds()))
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return fmt.Errorf("failed to generate OTP code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash OTP code: %w", err)
	}

	if err := s.redis.Set(ctx, otpKey(contactNo), string(hash), s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store OTP in Redis: %w", err)
	}
	if err := s.redis.Set(ctx, attemptsKey(contactNo), 0, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to initialize attempts counter: %w", err)
	}
	if err := s.redis.Set(ctx, resendKey(contactNo), 1, s.config.ResendWindow).Err(); err != nil {
		return fmt.Errorf("failed to set resend throttle: %w", err)
	}

	message := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, int(s.config.TTL.Minutes()))
	if err := s.notifier.SendSMS(contactNo, message); err != nil {
		// Clean up Redis entries if SMS fails
		s.redis.Del(ctx, otpKey(contactNo), attemptsKey(contactNo), resendKey(contactNo))
		return fmt.Errorf("failed to send OTP SMS: %w", err)
	}

	return nil
}

// Verify checks a submitted code and, on success, marks the contact number as
// verified for a bounded window.
func (s *OTPService) Verify(ctx context.Context, contactNo, code string) error {
	attempts, err := s.redis.Incr(ctx, attemptsKey(contactNo)).Result()
	if err != nil {
		return fmt.Errorf("failed to increment attempts: %w", err)
	}

	if attempts > int64(s.config.MaxAttempts) {
		s.redis.Del(ctx, otpKey(contactNo), attemptsKey(contactNo))
		return errOTPMaxAttempts
	}

	storedHash, err := s.redis.Get(ctx, otpKey(contactNo)).Result()
	if err == redis.Nil {
		return errOTPNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get OTP from Redis: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(code)) != nil {
		return errOTPInvalid
	}

	// Success - consume the code and open the verification window
	s.redis.Del(ctx, otpKey(contactNo), attemptsKey(contactNo))
	if err := s.redis.Set(ctx, verifiedKey(contactNo), 1, s.config.VerifiedTTL).Err(); err != nil {
		return fmt.Errorf("failed to mark contact verified: %w", err)
	}

	return nil
}

// IsVerified reports whether the contact number passed OTP verification
// within the configured window.
func (s *OTPService) IsVerified(ctx context.Context, contactNo string) (bool, error) {
	n, err := s.redis.Exists(ctx, verifiedKey(contactNo)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check verified flag: %w", err)
	}
	return n > 0, nil
}

// ConsumeVerified clears the verification flag once a signin/signup used it.
func (s *OTPService) ConsumeVerified(ctx context.Context, contactNo string) {
	s.redis.Del(ctx, verifiedKey(contactNo))
}

// generateSecureCode generates a cryptographically secure OTP code
func (s *OTPService) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
