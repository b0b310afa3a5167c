// Package cli implements the walc-admin commands.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/dotprogrammers/walc-admin/internal/config"
	"github.com/dotprogrammers/walc-admin/pkg/audit"
	"github.com/dotprogrammers/walc-admin/pkg/client"
	"github.com/dotprogrammers/walc-admin/pkg/hotel"
	"github.com/dotprogrammers/walc-admin/pkg/session"
)

// Context carries the wired services shared by all commands.
type Context struct {
	Config     *config.Config
	API        *client.Client
	Sessions   *session.Manager
	Properties *hotel.PropertyService
	Rooms      *hotel.RoomService
	Bookings   *hotel.BookingService
	Audit      audit.Logger
	AuditDB    *sql.DB
	Logger     *slog.Logger
	Out        io.Writer
}

// actor returns the operator identity from the current token, or "" when
// anonymous or the token cannot be decoded.
func (c *Context) actor() string {
	info, err := c.Sessions.TokenInfo()
	if err != nil {
		return ""
	}
	if info.Email != "" {
		return info.Email
	}
	return info.Subject
}

// record finishes and writes an audit event. Audit failures are logged
// but never fail the command.
func (c *Context) record(ctx context.Context, event *audit.Event, started time.Time, err error) {
	if c.Audit == nil {
		return
	}
	if event.Actor == "" {
		event.WithActor(c.actor())
	}
	event.WithDuration(time.Since(started)).WithError(err)
	if logErr := c.Audit.Log(ctx, *event); logErr != nil {
		c.Logger.Warn("recording audit event", "error", logErr)
	}
}

// tabbed returns a tabwriter for aligned column output.
func (c *Context) tabbed() *tabwriter.Writer {
	return tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}
