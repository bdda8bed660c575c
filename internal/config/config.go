package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type ClientConfig struct {
	APIBaseURL      string `yaml:"api_base_url"`
	HTTPTimeout     string `yaml:"http_timeout"`
	OTPLength       int    `yaml:"otp_length"`
	CredentialsPath string `yaml:"credentials_path"`
	LogLevel        string `yaml:"log_level"`
	LogFormat       string `yaml:"log_format"`
}

type ServerConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
	TTL    string `yaml:"ttl"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	MaxAttempts  int    `yaml:"max_attempts"`
	ResendWindow string `yaml:"resend_window"`
	VerifiedTTL  string `yaml:"verified_ttl"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type ConfigFile struct {
	Client ClientConfig `yaml:"client"`
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	JWT    JWTConfig    `yaml:"jwt"`
	OTP    OTPConfig    `yaml:"otp"`
	Twilio TwilioConfig `yaml:"twilio"`
}

// Config carries the resolved settings for both the client library/CLI and
// the dev backend. Binaries read only their half.
type Config struct {
	// Client
	APIBaseURL      string
	HTTPTimeout     time.Duration
	OTPLength       int
	CredentialsPath string
	LogLevel        string
	LogFormat       string

	// Dev backend
	Port            string
	GinMode         string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	JWTIssuer       string
	JWTTTL          time.Duration
	OTPCodeLength   int
	OTPTTL          time.Duration
	OTPMaxAttempts  int
	OTPResendWindow time.Duration
	OTPVerifiedTTL  time.Duration
	TwilioSID       string
	TwilioToken     string
	TwilioFrom      string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// Load reads the yaml config at path, falling back to built-in defaults and
// environment variables when the file is absent. A present but malformed file
// is an error.
func Load(path string) (*Config, error) {
	file := defaultConfigFile()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, file); err != nil {
			return nil, fmt.Errorf("could not parse config yaml at %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	httpTimeout, err := time.ParseDuration(file.Client.HTTPTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid http timeout: %w", err)
	}

	jwtTTL, err := time.ParseDuration(file.JWT.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(file.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	resWnd, err := time.ParseDuration(file.OTP.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	verTTL, err := time.ParseDuration(file.OTP.VerifiedTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP verified TTL: %w", err)
	}

	return &Config{
		APIBaseURL:      env("ESTATELY_API_URL", file.Client.APIBaseURL),
		HTTPTimeout:     httpTimeout,
		OTPLength:       envInt("ESTATELY_OTP_LENGTH", file.Client.OTPLength),
		CredentialsPath: env("ESTATELY_CREDENTIALS", file.Client.CredentialsPath),
		LogLevel:        env("ESTATELY_LOG_LEVEL", file.Client.LogLevel),
		LogFormat:       env("ESTATELY_LOG_FORMAT", file.Client.LogFormat),

		Port:            env("PORT", fmt.Sprintf("%d", file.Server.Port)),
		GinMode:         file.Server.GinMode,
		RedisAddr:       env("REDIS_ADDR", file.Redis.Addr),
		RedisPassword:   env("REDIS_PASSWORD", file.Redis.Password),
		RedisDB:         file.Redis.DB,
		JWTSecret:       env("JWT_SECRET", file.JWT.Secret),
		JWTIssuer:       file.JWT.Issuer,
		JWTTTL:          jwtTTL,
		OTPCodeLength:   envInt("OTP_LENGTH", file.OTP.Length),
		OTPTTL:          otpTTL,
		OTPMaxAttempts:  file.OTP.MaxAttempts,
		OTPResendWindow: resWnd,
		OTPVerifiedTTL:  verTTL,
		TwilioSID:       env("TWILIO_ACCOUNT_SID", file.Twilio.AccountSID),
		TwilioToken:     env("TWILIO_AUTH_TOKEN", file.Twilio.AuthToken),
		TwilioFrom:      env("TWILIO_FROM_NUMBER", file.Twilio.FromNumber),
	}, nil
}

func defaultConfigFile() *ConfigFile {
	return &ConfigFile{
		Client: ClientConfig{
			APIBaseURL:  "http://localhost:8080",
			HTTPTimeout: "30s",
			OTPLength:   6,
			LogLevel:    "info",
			LogFormat:   "text",
		},
		Server: ServerConfig{Port: 8080, GinMode: "release"},
		Redis:  RedisConfig{Addr: "localhost:6379"},
		JWT: JWTConfig{
			Secret: "dev-only-secret",
			Issuer: "estately-dev",
			TTL:    "24h",
		},
		OTP: OTPConfig{
			TTL:          "5m",
			Length:       6,
			MaxAttempts:  5,
			ResendWindow: "60s",
			VerifiedTTL:  "10m",
		},
	}
}
