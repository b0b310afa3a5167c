package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dotprogrammers/walc-admin/pkg/database/migrate"
)

type DoctorCmd struct{}

// Run checks backend reachability, session state and the audit database.
func (cmd *DoctorCmd) Run(appCtx *Context) error {
	ctx := context.Background()
	hasError := false

	appCtx.println("Running diagnostics...")
	appCtx.println()

	if _, _, err := appCtx.Properties.List(ctx, 1, 1); err != nil {
		appCtx.printf("FAIL backend reachable (%s): %v\n", appCtx.Config.API.BaseURL, err)
		hasError = true
	} else {
		appCtx.printf("ok   backend reachable (%s)\n", appCtx.Config.API.BaseURL)
	}

	switch {
	case !appCtx.Sessions.IsAuthenticated():
		appCtx.println("ok   session: not logged in")
	default:
		info, err := appCtx.Sessions.TokenInfo()
		switch {
		case err != nil:
			appCtx.printf("FAIL session: stored token cannot be decoded: %v\n", err)
			hasError = true
		case info.Expired(time.Now()):
			appCtx.printf("warn session: access token expired at %s, will refresh on next call\n",
				info.ExpiresAt.Format(time.RFC3339))
		default:
			appCtx.printf("ok   session: logged in, token valid until %s\n",
				info.ExpiresAt.Format(time.RFC3339))
		}
	}

	switch {
	case !appCtx.Config.Audit.Enabled:
		appCtx.println("ok   audit trail: disabled")
	case appCtx.AuditDB == nil:
		appCtx.println("FAIL audit trail: enabled but database not connected")
		hasError = true
	default:
		if err := appCtx.AuditDB.PingContext(ctx); err != nil {
			appCtx.printf("FAIL audit database: %v\n", err)
			hasError = true
		} else if version, dirty, err := migrate.Version(appCtx.AuditDB); err != nil {
			appCtx.printf("FAIL audit schema version: %v\n", err)
			hasError = true
		} else if dirty {
			appCtx.printf("FAIL audit schema: version %d is dirty\n", version)
			hasError = true
		} else {
			appCtx.printf("ok   audit database: schema version %d\n", version)
		}
	}

	appCtx.println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	appCtx.println("All checks passed")
	return nil
}
