package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dotprogrammers/walc-admin/pkg/audit"
	"github.com/dotprogrammers/walc-admin/pkg/hotel"
	"github.com/dotprogrammers/walc-admin/pkg/session"
)

type LoginCmd struct {
	Email    string `arg:"" help:"Admin account email."`
	Password string `short:"p" help:"Password. Prompted when omitted."`
}

func (cmd *LoginCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	password := cmd.Password
	if password == "" {
		appCtx.printf("Password: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	started := time.Now()
	err := appCtx.Sessions.Login(ctx, cmd.Email, password)
	appCtx.record(ctx, audit.NewEvent("login").WithParameters(map[string]any{
		"email": cmd.Email,
	}), started, err)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			return fmt.Errorf("invalid credentials for %s", cmd.Email)
		}
		return err
	}

	appCtx.printf("Logged in as %s\n", cmd.Email)
	return nil
}

type LogoutCmd struct{}

func (cmd *LogoutCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	started := time.Now()

	// Capture the actor before the tokens are dropped.
	event := audit.NewEvent("logout").WithActor(appCtx.actor())
	appCtx.Sessions.Logout(ctx)
	appCtx.record(ctx, event, started, nil)

	appCtx.println("Logged out")
	return nil
}

type WhoamiCmd struct {
	Remote bool `help:"Verify the session against the backend instead of decoding the local token."`
}

func (cmd *WhoamiCmd) Run(appCtx *Context) error {
	ctx := context.Background()

	if !appCtx.Sessions.IsAuthenticated() {
		return errors.New("not logged in")
	}

	if cmd.Remote {
		user, err := hotel.CurrentUser(ctx, appCtx.API)
		if err != nil {
			return err
		}
		appCtx.printf("%s <%s> (id %d)\n", user.Name, user.Email, user.ID)
		return nil
	}

	info, err := appCtx.Sessions.TokenInfo()
	if err != nil {
		return fmt.Errorf("decoding access token: %w", err)
	}

	who := info.Email
	if who == "" {
		who = info.Subject
	}
	appCtx.printf("%s\n", who)
	if !info.ExpiresAt.IsZero() {
		state := "valid"
		if info.Expired(time.Now()) {
			state = "expired"
		}
		appCtx.printf("token %s, expires %s\n", state, info.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}
