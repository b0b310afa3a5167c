package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dotprogrammers/walc-admin/pkg/audit"
	"github.com/dotprogrammers/walc-admin/pkg/availability"
)

// loadGrid fetches the room to discover its capacity and loads the
// calendar for the window.
func loadGrid(ctx context.Context, appCtx *Context, propertyID, roomID int, start, end string) (*availability.Grid, error) {
	room, err := appCtx.Rooms.Get(ctx, propertyID, roomID)
	if err != nil {
		return nil, fmt.Errorf("loading room %d: %w", roomID, err)
	}

	svc := availability.NewService(appCtx.API)
	grid, err := availability.NewGrid(svc, propertyID, roomID, room.TotalRooms, start, end)
	if err != nil {
		return nil, err
	}
	if err := grid.Load(ctx); err != nil {
		return nil, err
	}
	return grid, nil
}

// window fills missing range bounds: start defaults to today, end to
// the configured window length after start.
func window(appCtx *Context, start, end string) (string, string, error) {
	if start == "" {
		start = availability.Today()
	}
	if end == "" {
		var err error
		end, err = availability.AddDays(start, appCtx.Config.Defaults.WindowDays-1)
		if err != nil {
			return "", "", err
		}
	}
	return start, end, nil
}

func availResource(propertyID, roomID int) string {
	return fmt.Sprintf("property/%d/room/%d/availability", propertyID, roomID)
}

type AvailabilityShowCmd struct {
	Property int    `arg:"" help:"Property ID."`
	Room     int    `arg:"" help:"Room ID."`
	From     string `help:"Start date (YYYY-MM-DD). Defaults to today."`
	To       string `help:"End date (YYYY-MM-DD). Defaults to the configured window."`
}

func (cmd *AvailabilityShowCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	start, end, err := window(appCtx, cmd.From, cmd.To)
	if err != nil {
		return err
	}

	grid, err := loadGrid(ctx, appCtx, cmd.Property, cmd.Room, start, end)
	if err != nil {
		return err
	}

	w := appCtx.tabbed()
	fmt.Fprintln(w, "DATE\tSTATUS\tROOMS\tMODIFIER\tBAND")
	for _, row := range grid.Rows() {
		mark := ""
		if row.Overridden {
			mark = "*"
		}
		band := ""
		if row.Band != availability.BandNone {
			band = row.Band.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%d%s\t%+.2f\t%s\n",
			row.Date, row.Status, row.AvailableRooms, mark, row.PriceModifier, band)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	appCtx.println("* date has an explicit override")
	return nil
}

type AvailabilitySetCmd struct {
	Property int     `arg:"" help:"Property ID."`
	Room     int     `arg:"" help:"Room ID."`
	Date     string  `arg:"" help:"Date (YYYY-MM-DD)."`
	Rooms    int     `help:"Available rooms." required:""`
	Modifier float64 `help:"Price modifier." default:"0"`
	Closed   bool    `help:"Close the date for sale."`
}

func (cmd *AvailabilitySetCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	grid, err := loadGrid(ctx, appCtx, cmd.Property, cmd.Room, cmd.Date, cmd.Date)
	if err != nil {
		return err
	}

	started := time.Now()
	err = grid.SetDate(ctx, cmd.Date, availability.DateEdit{
		AvailableRooms: cmd.Rooms,
		PriceModifier:  cmd.Modifier,
		Closed:         cmd.Closed,
	})
	appCtx.record(ctx, audit.NewEvent("availability.set").
		WithResource(availResource(cmd.Property, cmd.Room)).
		WithParameters(map[string]any{
			"date":            cmd.Date,
			"available_rooms": cmd.Rooms,
			"price_modifier":  cmd.Modifier,
			"closed":          cmd.Closed,
		}), started, err)
	if err != nil {
		return err
	}

	row := grid.StatusFor(cmd.Date)
	appCtx.printf("%s: %s, %d rooms\n", row.Date, row.Status, row.AvailableRooms)
	return nil
}

type AvailabilityBulkCmd struct {
	Property int    `arg:"" help:"Property ID."`
	Room     int    `arg:"" help:"Room ID."`
	From     string `help:"Start date (YYYY-MM-DD)." required:""`
	To       string `help:"End date (YYYY-MM-DD)." required:""`
	Rooms    string `help:"Available rooms. Empty leaves the field untouched."`
	Modifier string `help:"Price modifier. Empty leaves the field untouched."`
	Closed   bool   `help:"Close the range for sale."`
}

func (cmd *AvailabilityBulkCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	edit, err := availability.ParseBulkEdit(cmd.From, cmd.To, cmd.Rooms, cmd.Modifier, cmd.Closed)
	if err != nil {
		return err
	}

	grid, err := loadGrid(ctx, appCtx, cmd.Property, cmd.Room, cmd.From, cmd.To)
	if err != nil {
		return err
	}

	started := time.Now()
	err = grid.BulkApply(ctx, edit)
	appCtx.record(ctx, audit.NewEvent("availability.bulk").
		WithResource(availResource(cmd.Property, cmd.Room)).
		WithParameters(map[string]any{
			"start_date":      cmd.From,
			"end_date":        cmd.To,
			"available_rooms": cmd.Rooms,
			"price_modifier":  cmd.Modifier,
			"closed":          cmd.Closed,
		}), started, err)
	if err != nil {
		return err
	}

	appCtx.printf("Applied bulk edit to %d dates\n", len(grid.Dates()))
	return nil
}

type AvailabilityCloseCmd struct {
	Property int    `arg:"" help:"Property ID."`
	Room     int    `arg:"" help:"Room ID."`
	From     string `help:"Start date (YYYY-MM-DD)." required:""`
	To       string `help:"End date (YYYY-MM-DD)." required:""`
	Reason   string `help:"Closure reason, e.g. renovation."`
}

func (cmd *AvailabilityCloseCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	svc := availability.NewService(appCtx.API)

	started := time.Now()
	err := svc.CloseRange(ctx, cmd.Property, cmd.Room, cmd.From, cmd.To, cmd.Reason)
	appCtx.record(ctx, audit.NewEvent("availability.close").
		WithResource(availResource(cmd.Property, cmd.Room)).
		WithParameters(map[string]any{
			"start_date": cmd.From,
			"end_date":   cmd.To,
			"reason":     cmd.Reason,
		}), started, err)
	if err != nil {
		return err
	}

	appCtx.printf("Closed %s to %s\n", cmd.From, cmd.To)
	return nil
}

type AvailabilityOpenCmd struct {
	Property int    `arg:"" help:"Property ID."`
	Room     int    `arg:"" help:"Room ID."`
	From     string `help:"Start date (YYYY-MM-DD)." required:""`
	To       string `help:"End date (YYYY-MM-DD)." required:""`
}

func (cmd *AvailabilityOpenCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	svc := availability.NewService(appCtx.API)

	started := time.Now()
	err := svc.OpenRange(ctx, cmd.Property, cmd.Room, cmd.From, cmd.To)
	appCtx.record(ctx, audit.NewEvent("availability.open").
		WithResource(availResource(cmd.Property, cmd.Room)).
		WithParameters(map[string]any{
			"start_date": cmd.From,
			"end_date":   cmd.To,
		}), started, err)
	if err != nil {
		return err
	}

	appCtx.printf("Reopened %s to %s\n", cmd.From, cmd.To)
	return nil
}
