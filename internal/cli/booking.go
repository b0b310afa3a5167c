package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dotprogrammers/walc-admin/pkg/audit"
	"github.com/dotprogrammers/walc-admin/pkg/availability"
	"github.com/dotprogrammers/walc-admin/pkg/client"
	"github.com/dotprogrammers/walc-admin/pkg/hotel"
)

// stayNights prefers the backend's nights figure and falls back to the
// span between the stay dates when it is absent.
func stayNights(b *hotel.Booking) int {
	if b.Nights > 0 {
		return b.Nights
	}
	n, err := availability.Nights(b.CheckInDate, b.CheckOutDate)
	if err != nil {
		return 0
	}
	return n
}

type BookingListCmd struct {
	Property int `help:"Filter by property ID."`
	Room     int `help:"Filter by room ID. Requires --property."`
	Page     int `help:"Page number." default:"1"`
	PerPage  int `help:"Results per page."`
}

func (cmd *BookingListCmd) Validate() error {
	if cmd.Room != 0 && cmd.Property == 0 {
		return fmt.Errorf("--room requires --property")
	}
	return nil
}

func (cmd *BookingListCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	perPage := cmd.PerPage
	if perPage == 0 {
		perPage = appCtx.Config.Defaults.PerPage
	}

	var (
		bookings []hotel.Booking
		page     *client.Page
		err      error
	)
	switch {
	case cmd.Room != 0:
		bookings, page, err = appCtx.Bookings.ListForRoom(ctx, cmd.Property, cmd.Room, cmd.Page, perPage)
	case cmd.Property != 0:
		bookings, page, err = appCtx.Bookings.ListForProperty(ctx, cmd.Property, cmd.Page, perPage)
	default:
		bookings, page, err = appCtx.Bookings.List(ctx, cmd.Page, perPage)
	}
	if err != nil {
		return err
	}

	w := appCtx.tabbed()
	fmt.Fprintln(w, "ID\tGUEST\tCHECK-IN\tCHECK-OUT\tSTATUS\tTOTAL")
	for _, b := range bookings {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.2f\n",
			b.ID, b.GuestName, b.CheckInDate, b.CheckOutDate, b.Status, b.TotalPrice)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if page != nil {
		appCtx.printf("page %d, %d total\n", page.CurrentPage, page.Total)
	}
	return nil
}

type BookingGetCmd struct {
	ID int `arg:"" help:"Booking ID."`
}

func (cmd *BookingGetCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	b, err := appCtx.Bookings.Get(ctx, cmd.ID)
	if err != nil {
		if client.IsNotFound(err) {
			return fmt.Errorf("booking %d not found", cmd.ID)
		}
		return err
	}

	appCtx.printf("Booking %d (%s)\n", b.ID, b.Status)
	appCtx.printf("  guest: %s <%s>\n", b.GuestName, b.GuestEmail)
	appCtx.printf("  stay: %s to %s (%d nights)\n", b.CheckInDate, b.CheckOutDate, stayNights(b))
	appCtx.printf("  property %d, room %d, %d guests\n", b.PropertyID, b.RoomID, b.TotalGuests)
	appCtx.printf("  total: %.2f\n", b.TotalPrice)
	if b.SpecialRequests != "" {
		appCtx.printf("  requests: %s\n", b.SpecialRequests)
	}
	return nil
}

type BookingCancelCmd struct {
	ID     int    `arg:"" help:"Booking ID."`
	Reason string `help:"Cancellation reason."`
}

func (cmd *BookingCancelCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	started := time.Now()
	err := appCtx.Bookings.Cancel(ctx, cmd.ID, cmd.Reason)
	appCtx.record(ctx, audit.NewEvent("booking.cancel").
		WithResource(fmt.Sprintf("booking/%d", cmd.ID)).
		WithParameters(map[string]any{"reason": cmd.Reason}), started, err)
	if err != nil {
		return err
	}

	appCtx.printf("Cancelled booking %d\n", cmd.ID)
	return nil
}
