// Package main provides the entry point for the walc-admin tool.
package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kong"
	_ "github.com/lib/pq"

	"github.com/dotprogrammers/walc-admin/internal/cli"
	"github.com/dotprogrammers/walc-admin/internal/config"
	"github.com/dotprogrammers/walc-admin/pkg/audit"
	auditpg "github.com/dotprogrammers/walc-admin/pkg/audit/postgres"
	"github.com/dotprogrammers/walc-admin/pkg/client"
	"github.com/dotprogrammers/walc-admin/pkg/database/migrate"
	"github.com/dotprogrammers/walc-admin/pkg/hotel"
	"github.com/dotprogrammers/walc-admin/pkg/session"
)

const version = "v0.3.0"

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging."`

	Login  cli.LoginCmd  `cmd:"" help:"Authenticate against the backend."`
	Logout cli.LogoutCmd `cmd:"" help:"Drop the stored session."`
	Whoami cli.WhoamiCmd `cmd:"" help:"Show the logged-in operator."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run connectivity and session diagnostics."`

	Property struct {
		List   cli.PropertyListCmd   `cmd:"" help:"List properties."`
		Get    cli.PropertyGetCmd    `cmd:"" help:"Show a property."`
		Create cli.PropertyCreateCmd `cmd:"" help:"Create a property."`
		Delete cli.PropertyDeleteCmd `cmd:"" help:"Delete a property."`
	} `cmd:"" help:"Manage properties."`

	Room struct {
		List cli.RoomListCmd `cmd:"" help:"List rooms of a property."`
		Get  cli.RoomGetCmd  `cmd:"" help:"Show a room."`
	} `cmd:"" help:"Manage rooms."`

	Booking struct {
		List   cli.BookingListCmd   `cmd:"" help:"List bookings."`
		Get    cli.BookingGetCmd    `cmd:"" help:"Show a booking."`
		Cancel cli.BookingCancelCmd `cmd:"" help:"Cancel a booking."`
	} `cmd:"" help:"Manage bookings."`

	Availability struct {
		Show  cli.AvailabilityShowCmd  `cmd:"" help:"Show the availability calendar for a room."`
		Set   cli.AvailabilitySetCmd   `cmd:"" help:"Override a single date."`
		Bulk  cli.AvailabilityBulkCmd  `cmd:"" help:"Apply an edit across a date range."`
		Close cli.AvailabilityCloseCmd `cmd:"" help:"Close a date range for sale."`
		Open  cli.AvailabilityOpenCmd  `cmd:"" help:"Reopen a closed date range."`
	} `cmd:"" help:"Manage room availability."`

	Audit struct {
		Query cli.AuditQueryCmd `cmd:"" help:"Query the audit trail."`
	} `cmd:"" help:"Inspect the audit trail."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("walc-admin"),
		kong.Description("Hotel administration client for the WALC backend"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	appCtx, cleanup, err := buildContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := kctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cleanup()
		os.Exit(1)
	}
}

func buildContext() (*cli.Context, func(), error) {
	level := slog.LevelWarn
	if CLI.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, func() {}, err
	}

	api := client.New(client.Config{
		BaseURL: cfg.API.BaseURL,
		HTTPClient: &http.Client{
			Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		},
		Logger: logger,
	})

	sessions := session.NewManager(session.ManagerConfig{
		API:    api,
		Store:  session.NewFileStore(cfg.Session.Path),
		Logger: logger,
		OnExpired: func() {
			fmt.Fprintln(os.Stderr, "Session expired, please log in again")
		},
	})
	api.SetAuthProvider(sessions)

	appCtx := &cli.Context{
		Config:     cfg,
		API:        api,
		Sessions:   sessions,
		Properties: hotel.NewPropertyService(api),
		Rooms:      hotel.NewRoomService(api),
		Bookings:   hotel.NewBookingService(api),
		Audit:      audit.NopLogger{},
		Logger:     logger,
		Out:        os.Stdout,
	}

	cleanup := func() {}
	if cfg.Audit.Enabled {
		db, err := sql.Open("postgres", cfg.Audit.DSN)
		if err != nil {
			return nil, cleanup, fmt.Errorf("opening audit database: %w", err)
		}
		if err := migrate.Run(db); err != nil {
			_ = db.Close()
			return nil, cleanup, fmt.Errorf("migrating audit database: %w", err)
		}
		store := auditpg.New(db, auditpg.Config{RetentionDays: cfg.Audit.RetentionDays})
		appCtx.Audit = store
		appCtx.AuditDB = db
		cleanup = func() {
			_ = store.Close()
			_ = db.Close()
		}
	}

	return appCtx, cleanup, nil
}
