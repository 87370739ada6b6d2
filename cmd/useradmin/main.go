package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"subtrack/internal/domain"
	"subtrack/internal/infra"
	"subtrack/internal/sqlinline"
)

// Operational escape hatch: promote or demote an account, or toggle its
// active flag, without going through the HTTP API.
func main() {
	var (
		idFlag     string
		emailFlag  string
		roleFlag   string
		activeFlag string
	)

	flag.StringVar(&idFlag, "id", "", "user ID to update (UUID)")
	flag.StringVar(&emailFlag, "email", "", "user email to update")
	flag.StringVar(&roleFlag, "role", "", "role to assign (user, admin)")
	flag.StringVar(&activeFlag, "active", "", "set account active state (true, false)")
	flag.Parse()

	userID := strings.TrimSpace(idFlag)
	email := strings.TrimSpace(emailFlag)
	role := strings.TrimSpace(strings.ToLower(roleFlag))

	if userID == "" && email == "" {
		exitWithError(errors.New("either -id or -email must be provided"))
	}
	if role == "" && activeFlag == "" {
		exitWithError(errors.New("nothing to do: provide -role and/or -active"))
	}
	if role != "" && !domain.UserRole(role).Valid() {
		exitWithError(fmt.Errorf("unsupported role %q", role))
	}
	var active bool
	switch activeFlag {
	case "", "true", "false":
		active = activeFlag == "true"
	default:
		exitWithError(fmt.Errorf("-active must be true or false, got %q", activeFlag))
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "useradmin").Logger()
	runner := infra.NewSQLRunner(pool, logger)

	var current struct {
		ID     string
		Email  string
		Role   string
		Active bool
	}
	lookupCtx, cancelLookup := context.WithTimeout(context.Background(), 5*time.Second)
	var scanErr error
	if userID != "" {
		row := runner.QueryRow(lookupCtx, sqlinline.QSelectUserAccessByID, userID)
		scanErr = row.Scan(&current.ID, &current.Email, &current.Role, &current.Active)
	} else {
		row := runner.QueryRow(lookupCtx, sqlinline.QSelectUserAccessByEmail, email)
		scanErr = row.Scan(&current.ID, &current.Email, &current.Role, &current.Active)
	}
	cancelLookup()
	if scanErr != nil {
		exitWithError(fmt.Errorf("failed to load user: %w", scanErr))
	}

	updateCtx, cancelUpdate := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelUpdate()

	if role != "" {
		row := runner.QueryRow(updateCtx, sqlinline.QUpdateUserRole, current.ID, role)
		if err := row.Scan(&current.ID, &current.Email, &current.Role, &current.Active); err != nil {
			exitWithError(fmt.Errorf("failed to update role: %w", err))
		}
	}
	if activeFlag != "" {
		if _, err := runner.Exec(updateCtx, sqlinline.QSetUserActive, current.ID, active); err != nil {
			exitWithError(fmt.Errorf("failed to update active state: %w", err))
		}
		current.Active = active
	}

	fmt.Printf("User %s (%s): role=%s active=%t\n", current.ID, current.Email, current.Role, current.Active)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
