// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL connection string (required)
  - JWTSecret: HMAC secret for session tokens and OTP hashing (required)
  - BcryptCost: Password hash work factor (default: 12)
  - TokenTTLHours: Session token lifetime (default: 8)
  - OTPLength: One-time code digit count (default: 6)
  - OTPTTLMinutes: One-time code lifetime (default: 5)
  - SweepIntervalMinutes: Expired-challenge sweep cadence (default: 15)
  - SMTPHost/SMTPPort/SMTPUsername/SMTPPassword/MailFrom: Outbound mail;
    the console sender is used when SMTPHost is empty
  - AdminUsername/AdminPassword: Bootstrap admin account, seeded once at
    startup when set

# Environment Variables

Flags fall back to environment variables:

	PORT                   → -p
	DATABASE_URL           → -d
	JWT_SECRET             → --jwt-secret
	BCRYPT_COST            → --bcrypt-cost
	TOKEN_TTL_HOURS        → --token-ttl
	OTP_LENGTH             → --otp-length
	OTP_TTL_MINUTES        → --otp-ttl
	SWEEP_INTERVAL_MINUTES → --sweep-interval
	SMTP_HOST et al.       → --smtp-*
	ADMIN_USERNAME         → --admin-user
	ADMIN_PASSWORD         → --admin-pass

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided
  - bcrypt cost must be in [4, 31]
  - ADMIN_PASSWORD must accompany ADMIN_USERNAME
*/
package cliparse
