package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dotprogrammers/walc-admin/pkg/audit"
)

type AuditQueryCmd struct {
	Actor  string `help:"Filter by operator email."`
	Action string `help:"Filter by action, e.g. availability.bulk."`
	Since  string `help:"Only events after this date (YYYY-MM-DD)."`
	Failed bool   `help:"Only failed operations."`
	Limit  int    `help:"Maximum events returned." default:"50"`
}

func (cmd *AuditQueryCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	if !appCtx.Config.Audit.Enabled {
		return errors.New("audit trail is not enabled; set audit.enabled and audit.dsn in the config")
	}

	filter := audit.QueryFilter{
		Actor:  cmd.Actor,
		Action: cmd.Action,
		Limit:  cmd.Limit,
	}
	if cmd.Since != "" {
		since, err := time.Parse("2006-01-02", cmd.Since)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}
		filter.StartTime = &since
	}
	if cmd.Failed {
		failed := false
		filter.Success = &failed
	}

	events, err := appCtx.Audit.Query(ctx, filter)
	if err != nil {
		return err
	}

	w := appCtx.tabbed()
	fmt.Fprintln(w, "TIME\tACTOR\tACTION\tRESOURCE\tOK\tERROR")
	for _, e := range events {
		ok := "yes"
		if !e.Success {
			ok = "no"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Format(time.RFC3339), e.Actor, e.Action, e.Resource, ok, e.ErrorMessage)
	}
	return w.Flush()
}
