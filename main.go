package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/178inaba/duty-attendance/auth"
	"github.com/178inaba/duty-attendance/config"
	"github.com/178inaba/duty-attendance/handler"
	"github.com/178inaba/duty-attendance/notifier"
	"github.com/178inaba/duty-attendance/repository"
	"github.com/178inaba/duty-attendance/view"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/slack-go/slack"
)

const usage = `Usage: duty-attendance <command> [flags]

Commands:
  serve             Run the HTTP server (default)
  migrate           Create the database tables
  create-user       -username NAME -password PASSWORD
  create-staff      -username NAME -position POSITION
  create-duty-post  -name NAME -description TEXT`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v.", err)
	}

	db, err := sqlx.Open("mysql", cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("Open database: %v.", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Ping database: %v.", err)
	}

	cmd, args := "serve", []string{}
	if len(os.Args) > 1 {
		cmd, args = os.Args[1], os.Args[2:]
	}

	switch cmd {
	case "serve":
		err = serve(ctx, cfg, db)
	case "migrate":
		err = repository.Migrate(ctx, db)
	case "create-user":
		err = createUser(ctx, db, args)
	case "create-staff":
		err = createStaff(ctx, db, args)
	case "create-duty-post":
		err = createDutyPost(ctx, db, args)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("Run %s: %v.", cmd, err)
	}
}

func serve(ctx context.Context, cfg config.Config, db *sqlx.DB) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return fmt.Errorf("new renderer: %w", err)
	}

	var n handler.Notifier = notifier.Nop{}
	if cfg.SlackToken != "" {
		n = notifier.NewSlack(slack.New(cfg.SlackToken), cfg.SlackChannel)
	}

	h := handler.NewHandler(
		repository.NewUserRepository(db),
		repository.NewStaffRepository(db),
		repository.NewDutyPostRepository(db),
		repository.NewAttendanceRepository(db),
		n,
		renderer,
		handler.Options{
			SessionSecret:      cfg.SessionSecret,
			SessionTTL:         cfg.SessionTTL,
			Location:           cfg.Location,
			SlackSigningSecret: cfg.SlackSigningSecret,
			SecureCookie:       cfg.SecureCookie,
		},
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown: %v.", err)
		}
	}()

	log.Printf("Listening on port %s.", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}

func createUser(ctx context.Context, db *sqlx.DB, args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	username := fs.String("username", "", "login name")
	password := fs.String("password", "", "login password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return errors.New("username and password are required")
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	id, err := repository.NewUserRepository(db).Create(ctx, *username, hash)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	log.Printf("Created user %q (id %d).", *username, id)
	return nil
}

func createStaff(ctx context.Context, db *sqlx.DB, args []string) error {
	fs := flag.NewFlagSet("create-staff", flag.ContinueOnError)
	username := fs.String("username", "", "login name of an existing user")
	position := fs.String("position", "", "position title")
	if err := fs.Parse(args); err != nil {
		return err
	}

	u, err := repository.NewUserRepository(db).GetByUsername(ctx, *username)
	if err != nil {
		return fmt.Errorf("get user by username: %w", err)
	}
	if u == nil {
		return fmt.Errorf("user %q not found", *username)
	}
	id, err := repository.NewStaffRepository(db).Create(ctx, u.ID, *position)
	if err != nil {
		return fmt.Errorf("create staff: %w", err)
	}

	log.Printf("Created staff for %q (id %d).", *username, id)
	return nil
}

func createDutyPost(ctx context.Context, db *sqlx.DB, args []string) error {
	fs := flag.NewFlagSet("create-duty-post", flag.ContinueOnError)
	name := fs.String("name", "", "duty post name")
	description := fs.String("description", "", "duty post description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := repository.NewDutyPostRepository(db).Create(ctx, *name, *description)
	if err != nil {
		return fmt.Errorf("create duty post: %w", err)
	}

	log.Printf("Created duty post %q (id %d).", *name, id)
	return nil
}
