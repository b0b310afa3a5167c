package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dotprogrammers/walc-admin/pkg/audit"
	"github.com/dotprogrammers/walc-admin/pkg/client"
	"github.com/dotprogrammers/walc-admin/pkg/hotel"
)

type PropertyListCmd struct {
	Page    int `help:"Page number." default:"1"`
	PerPage int `help:"Results per page."`
}

func (cmd *PropertyListCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	perPage := cmd.PerPage
	if perPage == 0 {
		perPage = appCtx.Config.Defaults.PerPage
	}

	properties, page, err := appCtx.Properties.List(ctx, cmd.Page, perPage)
	if err != nil {
		return err
	}

	w := appCtx.tabbed()
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tLOCATION\tPRICE")
	for _, p := range properties {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\n", p.ID, p.Title, p.Category, p.Location, p.Price)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if page != nil {
		appCtx.printf("page %d, %d total\n", page.CurrentPage, page.Total)
	}
	return nil
}

type PropertyGetCmd struct {
	ID int `arg:"" help:"Property ID."`
}

func (cmd *PropertyGetCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	p, err := appCtx.Properties.Get(ctx, cmd.ID)
	if err != nil {
		if client.IsNotFound(err) {
			return fmt.Errorf("property %d not found", cmd.ID)
		}
		return err
	}

	appCtx.printf("Property %d: %s (%s)\n", p.ID, p.Title, p.Category)
	appCtx.printf("  location: %s\n", p.Location)
	appCtx.printf("  price: %.2f %s, rooms: %d, capacity: %d\n", p.Price, p.PriceType, p.RoomCount, p.Capacity)
	if len(p.Amenities) > 0 {
		appCtx.printf("  amenities: %s\n", strings.Join(p.Amenities, ", "))
	}
	if p.Policies.CheckInTime != "" {
		appCtx.printf("  check-in: %s, check-out: %s\n", p.Policies.CheckInTime, p.Policies.CheckOutTime)
	}
	return nil
}

type PropertyCreateCmd struct {
	Title    string  `arg:"" help:"Property title."`
	Category string  `help:"Category, e.g. hotel or villa." default:"hotel"`
	Location string  `help:"Location."`
	Price    float64 `help:"Nightly price."`
	Capacity int     `help:"Guest capacity." default:"2"`
}

func (cmd *PropertyCreateCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	started := time.Now()
	p, err := appCtx.Properties.Create(ctx, hotel.Property{
		Title:    cmd.Title,
		Category: cmd.Category,
		Location: cmd.Location,
		Price:    cmd.Price,
		Capacity: cmd.Capacity,
	})
	appCtx.record(ctx, audit.NewEvent("property.create").WithParameters(map[string]any{
		"title":    cmd.Title,
		"location": cmd.Location,
	}), started, err)
	if err != nil {
		return err
	}

	appCtx.printf("Created property %d: %s\n", p.ID, p.Title)
	return nil
}

type PropertyDeleteCmd struct {
	ID int `arg:"" help:"Property ID."`
}

func (cmd *PropertyDeleteCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	started := time.Now()
	err := appCtx.Properties.Delete(ctx, cmd.ID)
	appCtx.record(ctx, audit.NewEvent("property.delete").
		WithResource(fmt.Sprintf("property/%d", cmd.ID)), started, err)
	if err != nil {
		return err
	}

	appCtx.printf("Deleted property %d\n", cmd.ID)
	return nil
}
