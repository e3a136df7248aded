package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port        int
	DatabaseURL string

	// Auth
	JWTSecret     string
	BcryptCost    int
	TokenTTLHours int

	// OTP
	OTPLength            int
	OTPTTLMinutes        int
	SweepIntervalMinutes int

	// Outbound mail (console sender when SMTPHost is empty)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	// Bootstrap admin account (seeded once, skipped when empty)
	AdminUsername string
	AdminPassword string
}

// ParseFlags validates flags and fills in environment/default fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("ballot-hub", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT signing secret (prefer env)")

	// Tunables
	fs.IntVar(&cfg.BcryptCost, "bcrypt-cost", 0, "bcrypt work factor")
	fs.IntVar(&cfg.TokenTTLHours, "token-ttl", 0, "Session token lifetime in hours")
	fs.IntVar(&cfg.OTPLength, "otp-length", 0, "One-time code digit count")
	fs.IntVar(&cfg.OTPTTLMinutes, "otp-ttl", 0, "One-time code lifetime in minutes")
	fs.IntVar(&cfg.SweepIntervalMinutes, "sweep-interval", 0, "Expired-OTP sweep interval in minutes")

	// Mail
	fs.StringVar(&cfg.SMTPHost, "smtp-host", "", "SMTP server host")
	fs.IntVar(&cfg.SMTPPort, "smtp-port", 0, "SMTP server port")
	fs.StringVar(&cfg.SMTPUsername, "smtp-user", "", "SMTP username")
	fs.StringVar(&cfg.SMTPPassword, "smtp-pass", "", "SMTP password (prefer env)")
	fs.StringVar(&cfg.MailFrom, "mail-from", "", "From address for outbound mail")

	// Admin bootstrap
	fs.StringVar(&cfg.AdminUsername, "admin-user", "", "Bootstrap admin username")
	fs.StringVar(&cfg.AdminPassword, "admin-pass", "", "Bootstrap admin password (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	var err error
	if cfg.BcryptCost, err = intFallback(cfg.BcryptCost, "BCRYPT_COST", 12); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return Config{}, errors.New("bcrypt cost must be between 4 and 31")
	}
	if cfg.TokenTTLHours, err = intFallback(cfg.TokenTTLHours, "TOKEN_TTL_HOURS", 8); err != nil {
		return Config{}, err
	}
	if cfg.OTPLength, err = intFallback(cfg.OTPLength, "OTP_LENGTH", 6); err != nil {
		return Config{}, err
	}
	if cfg.OTPTTLMinutes, err = intFallback(cfg.OTPTTLMinutes, "OTP_TTL_MINUTES", 5); err != nil {
		return Config{}, err
	}
	if cfg.SweepIntervalMinutes, err = intFallback(cfg.SweepIntervalMinutes, "SWEEP_INTERVAL_MINUTES", 15); err != nil {
		return Config{}, err
	}
	if cfg.SMTPPort, err = intFallback(cfg.SMTPPort, "SMTP_PORT", 587); err != nil {
		return Config{}, err
	}

	if cfg.SMTPHost == "" {
		cfg.SMTPHost = os.Getenv("SMTP_HOST")
	}
	if cfg.SMTPUsername == "" {
		cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	}
	if cfg.SMTPPassword == "" {
		cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	}
	if cfg.MailFrom == "" {
		cfg.MailFrom = os.Getenv("MAIL_FROM")
	}
	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUsername
	}

	if cfg.AdminUsername == "" {
		cfg.AdminUsername = os.Getenv("ADMIN_USERNAME")
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}
	if cfg.AdminUsername != "" && cfg.AdminPassword == "" {
		return Config{}, errors.New("ADMIN_PASSWORD required when ADMIN_USERNAME is set")
	}

	return cfg, nil
}

// intFallback resolves a numeric setting: flag value, then env variable, then default.
func intFallback(flagVal int, envKey string, def int) (int, error) {
	if flagVal != 0 {
		return flagVal, nil
	}
	if s := os.Getenv(envKey); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, errors.New("invalid " + envKey + " env variable")
		}
		return v, nil
	}
	return def, nil
}
