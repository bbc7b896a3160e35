// Command admindash is the terminal dashboard of the super_admin API. It
// signs in, shows the menu the session's role allows and manages users and
// products.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
	"github.com/99minutos/admin-dashboard/internal/infrastructure/acl"
	mongodb "github.com/99minutos/admin-dashboard/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/admin-dashboard/internal/infrastructure/db/redis"
	"github.com/99minutos/admin-dashboard/internal/infrastructure/restclient"
	"github.com/99minutos/admin-dashboard/internal/pkg/config"
	"github.com/99minutos/admin-dashboard/pkg/logger"
)

var version = "dev"

var errUnknownCommand = errors.New("unknown command")

func usage(w io.Writer) {
	fmt.Fprintf(w, `admindash - admin dashboard CLI (version %s)

Usage:
  admindash <command> [options]

Commands:
  login      Sign in with -u/-p (or --token) and store the session
  logout     Forget the stored session
  whoami     Show the signed-in account, its role and landing page
  menu       Show the navigation entries the session may open
  users      Manage users (list, add, edit, delete)
  products   Manage products (list, add, edit, delete)
  activity   Show the most recent notifications from the activity log

Environment:
  ADMIN_API_URL        collection root (default http://localhost:8000/api/super_admin/)
  ADMIN_PROFILE        name the session is stored under (default "default")
  ADMIN_TOKEN          bearer token used instead of the stored session
  ADMIN_ACTIVITY_LOG   record notifications in MongoDB (MONGO_URI, MONGO_DB)
  REDIS_ADDR           session store (default localhost:6379)

Run 'admindash <command> -h' for command-specific help.
`, version)
}

func main() {
	os.Exit(realMain())
}

func realMain() int {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		return 1
	}

	cmd := os.Args[1]
	switch cmd {
	case "-h", "--help", "help":
		usage(os.Stdout)
		return 0
	case "-v", "--version", "version":
		fmt.Println(version)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  true,
		Output:  os.Stderr,
		Service: "admindash",
	})

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer a.close()

	if err := a.run(ctx, cmd, os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, errUnknownCommand) {
			usage(os.Stderr)
		}
		return 1
	}
	return 0
}

// app carries what every command needs. Tests build it directly.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	out    io.Writer
	errOut io.Writer
	in     io.Reader

	client   *restclient.Client
	authz    ports.Authorizer
	store    ports.SessionStore
	activity ports.ActivityRepository
	now      func() time.Time

	closers []func()
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	client, err := restclient.New(restclient.Config{
		BaseURL: cfg.Client.APIBaseURL,
		Timeout: cfg.Client.Timeout,
	}, log)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		log:    log,
		out:    os.Stdout,
		errOut: os.Stderr,
		in:     os.Stdin,
		client: client,
		authz:  acl.DefaultPolicy(),
		now:    time.Now,
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:       cfg.Redis.Addr,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
		ClientName: "admindash",
	})
	switch {
	case err == nil:
		a.store = redisdb.NewSessionStore(rdb)
		a.closers = append(a.closers, func() { _ = rdb.Close() })
	case cfg.Client.Token != "":
		log.Debug().Err(err).Msg("session store unavailable; using ADMIN_TOKEN")
	default:
		return nil, fmt.Errorf("session store: %w", err)
	}

	if cfg.Client.ActivityLog {
		mc, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("activity log: %w", err)
		}
		a.activity = mongodb.NewActivityRepository(db)
		a.closers = append(a.closers, func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mc.Disconnect(dctx)
		})
	}
	return a, nil
}

func (a *app) commands() map[string]func(context.Context, []string) error {
	return map[string]func(context.Context, []string) error{
		"login":    a.runLogin,
		"logout":   a.runLogout,
		"whoami":   a.runWhoami,
		"menu":     a.runMenu,
		"users":    a.resourceCommand(domain.UsersResource),
		"products": a.resourceCommand(domain.ProductsResource),
		"activity": a.runActivity,
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	fn, ok := a.commands()[cmd]
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownCommand, cmd)
	}
	return fn(ctx, args)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
