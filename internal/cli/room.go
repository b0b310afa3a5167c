package cli

import (
	"context"
	"fmt"

	"github.com/dotprogrammers/walc-admin/pkg/client"
)

type RoomListCmd struct {
	Property int `arg:"" help:"Property ID."`
}

func (cmd *RoomListCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	rooms, err := appCtx.Rooms.List(ctx, cmd.Property)
	if err != nil {
		return err
	}

	w := appCtx.tabbed()
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tUNITS\tPRICE")
	for _, r := range rooms {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2f\n", r.ID, r.Name, r.RoomType, r.TotalRooms, r.Price)
	}
	return w.Flush()
}

type RoomGetCmd struct {
	Property int `arg:"" help:"Property ID."`
	Room     int `arg:"" help:"Room ID."`
}

func (cmd *RoomGetCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	r, err := appCtx.Rooms.Get(ctx, cmd.Property, cmd.Room)
	if err != nil {
		if client.IsNotFound(err) {
			return fmt.Errorf("room %d not found under property %d", cmd.Room, cmd.Property)
		}
		return err
	}

	appCtx.printf("Room %d: %s (%s)\n", r.ID, r.Name, r.RoomType)
	appCtx.printf("  units: %d, max adults: %d, bed: %s\n", r.TotalRooms, r.MaxAdults, r.BedType)
	appCtx.printf("  price: %.2f\n", r.Price)
	return nil
}
