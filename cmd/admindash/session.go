package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/service"
)

var errNoStore = errors.New("session store unavailable")

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	fs := a.flagSet("login")
	username := fs.String("u", "", "Username")
	password := fs.String("p", "", "Password (read from stdin when omitted)")
	token := fs.String("token", "", "Bearer token to store instead of signing in")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if a.store == nil {
		return errNoStore
	}

	tok := *token
	if tok == "" {
		if *username == "" {
			return errors.New("login: -u is required")
		}
		pass := *password
		if pass == "" {
			var err error
			if pass, err = a.readLine("Password: "); err != nil {
				return fmt.Errorf("login: %w", err)
			}
		}
		var err error
		if tok, err = a.client.Login(ctx, *username, pass); err != nil {
			return err
		}
	}

	s, err := service.SessionFromToken(tok)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := a.store.Save(ctx, a.cfg.Client.Profile, s); err != nil {
		return err
	}

	a.log.Info().Str("profile", a.cfg.Client.Profile).Str("role", string(s.Role)).Msg("session stored")
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", s.Name(), s.Role)
	fmt.Fprintf(a.out, "Landing: %s\n", service.NewNavigator(a.authz).Landing(s))
	return nil
}

func (a *app) runLogout(ctx context.Context, args []string) error {
	if err := a.flagSet("logout").Parse(args); err != nil {
		return err
	}
	if a.store == nil {
		return errNoStore
	}
	if err := a.store.Delete(ctx, a.cfg.Client.Profile); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *app) runWhoami(ctx context.Context, args []string) error {
	if err := a.flagSet("whoami").Parse(args); err != nil {
		return err
	}
	s, err := a.session(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Account:\t%s\n", s.Name())
	fmt.Fprintf(tw, "Role:\t%s\n", s.Role)
	if !s.ExpiresAt.IsZero() {
		fmt.Fprintf(tw, "Expires:\t%s\n", s.ExpiresAt.Local().Format(time.RFC1123))
	}
	fmt.Fprintf(tw, "Landing:\t%s\n", service.NewNavigator(a.authz).Landing(s))
	return tw.Flush()
}

func (a *app) runMenu(ctx context.Context, args []string) error {
	if err := a.flagSet("menu").Parse(args); err != nil {
		return err
	}
	s, err := a.session(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, item := range service.NewNavigator(a.authz).Menu(s) {
		fmt.Fprintf(tw, "%s\t%s\n", item.Title, item.Path)
	}
	return tw.Flush()
}

// session returns the credential commands run under: ADMIN_TOKEN when set,
// otherwise the stored session of the profile.
func (a *app) session(ctx context.Context) (domain.Session, error) {
	if a.cfg.Client.Token != "" {
		return service.SessionFromToken(a.cfg.Client.Token)
	}
	if a.store == nil {
		return domain.Session{}, errNoStore
	}

	s, err := a.store.Load(ctx, a.cfg.Client.Profile)
	if errors.Is(err, domain.ErrNoSession) {
		return domain.Session{}, fmt.Errorf("%w: run 'admindash login' first", err)
	}
	if err != nil {
		return domain.Session{}, err
	}
	if s.Expired(a.now()) {
		return domain.Session{}, fmt.Errorf("session expired at %s: run 'admindash login'", s.ExpiresAt.Format(time.RFC3339))
	}
	return s, nil
}

func (a *app) readLine(prompt string) (string, error) {
	fmt.Fprint(a.errOut, prompt)
	sc := bufio.NewScanner(a.in)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errors.New("no input")
	}
	return strings.TrimSpace(sc.Text()), nil
}
