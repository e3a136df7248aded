package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/danielhkuo/ballot-hub/cliparse"
	"github.com/danielhkuo/ballot-hub/db"
	"github.com/danielhkuo/ballot-hub/notify"
	"github.com/danielhkuo/ballot-hub/otp"
	"github.com/danielhkuo/ballot-hub/router"
)

func main() {
	var err error

	// Load .env if present; real env vars win
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	dbConn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Seed the bootstrap admin if configured
	if cfg.AdminUsername != "" {
		created, err := db.SeedAdmin(dbConn, cfg.AdminUsername, cfg.AdminPassword, cfg.BcryptCost)
		if err != nil {
			slog.Error("admin seeding failed", "error", err)
			os.Exit(1)
		}
		if created {
			slog.Info("Bootstrap admin created", "username", cfg.AdminUsername)
		}
	}

	// Pick the delivery channel: SMTP when configured, console otherwise
	var sender notify.Sender
	if cfg.SMTPHost != "" {
		sender = &notify.SMTPSender{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		}
		slog.Info("Using SMTP delivery", "host", cfg.SMTPHost)
	} else {
		sender = &notify.ConsoleSender{}
		slog.Info("No SMTP host configured, logging notifications to console")
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg, sender)

	// Periodically sweep used and expired one-time codes
	sweeper := otp.NewEngine(dbConn, cfg, sender)
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.SweepIntervalMinutes) * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			removed, err := sweeper.Sweep()
			if err != nil {
				slog.Error("challenge sweep failed", "error", err)
				continue
			}
			if removed > 0 {
				slog.Info("challenge sweep", "removed", removed)
			}
		}
	}()

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
