package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shiftware/internal/bootstrap"
	"shiftware/internal/platform/config"
	"shiftware/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var stateDir string

	root := &cobra.Command{
		Use:           "shiftware",
		Short:         "Shiftware shift scheduling and invoicing client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&stateDir, "state-dir", "", "state directory (default: platform config dir)")

	root.AddCommand(newTUICmd(&stateDir))
	root.AddCommand(newLoginCmd(&stateDir))
	root.AddCommand(newLogoutCmd(&stateDir))
	root.AddCommand(newSessionCmd(&stateDir))
	root.AddCommand(newProfileCmd(&stateDir))
	root.AddCommand(newClientsCmd(&stateDir))
	root.AddCommand(newRosterCmd(&stateDir))
	root.AddCommand(newInvoicesCmd(&stateDir))
	return root
}

func loadApp(stateDir string) (*bootstrap.App, config.Config, error) {
	cfg, err := config.New(stateDir)
	if err != nil {
		return nil, config.Config{}, err
	}
	logging.Setup(cfg.LogLevel, os.Stderr)
	app, err := bootstrap.New(cfg)
	return app, cfg, err
}

// restore adopts the persisted session so authenticated commands work
// without an explicit login each run. A missing session is not an error
// here; the command itself will report unauthorized.
func restore(ctx context.Context, app *bootstrap.App) {
	_, _ = app.SessionCLI.Restore(ctx)
}

func newTUICmd(stateDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the Shiftware terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.New(*stateDir)
			if err != nil {
				return err
			}
			_, closeLog, err := logging.SetupFile(cfg.LogLevel, cfg.StateDir)
			if err != nil {
				return err
			}
			defer closeLog()
			app, err := bootstrap.New(cfg)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newLoginCmd(stateDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Sign in and persist the session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadApp(*stateDir)
			if err != nil {
				return err
			}
			session, err := app.SessionCLI.Login(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", session.Email)
			return nil
		},
	}
}

func newLogoutCmd(stateDir *string) *cobra.Command {
	var local bool
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear session state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*stateDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			restore(ctx, app)
			if err := app.SessionCLI.Logout(ctx, !local); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "skip notifying the server")
	return cmd
}

func newSessionCmd(stateDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Inspect the saved session"}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show whether a session is saved and who it belongs to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*stateDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			out, err := app.SessionCLI.Restore(ctx)
			if err != nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no saved session")
				return nil
			}
			if out.Authenticated {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session saved (not yet validated)")
			}
			return nil
		},
	}

	restoreCmd := &cobra.Command{
		Use:   "restore",
		Short: "Adopt the saved session without contacting the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*stateDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Restore(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "restored session (authenticated=%v)\n", out.Authenticated)
			return nil
		},
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check the saved session against the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*stateDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			restore(ctx, app)
			valid, err := app.SessionCLI.Validate(ctx)
			if err != nil {
				return err
			}
			if valid {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session is valid")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session expired")
			return nil
		},
	}

	session.AddCommand(status, restoreCmd, validate)
	return session
}

func newProfileCmd(stateDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in user's profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*stateDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			restore(ctx, app)
			profile, err := app.SessionCLI.LoadProfile(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "name:     %s\n", profile.Name)
			_, _ = fmt.Fprintf(w, "email:    %s\n", profile.Email)
			if profile.Business != "" {
				_, _ = fmt.Fprintf(w, "business: %s\n", profile.Business)
			}
			if profile.ABN != "" {
				_, _ = fmt.Fprintf(w, "abn:      %s\n", profile.ABN)
			}
			if profile.Phone != "" {
				_, _ = fmt.Fprintf(w, "phone:    %s\n", profile.Phone)
			}
			return nil
		},
	}
}

func newClientsCmd(stateDir *string) *cobra.Command {
	clients := &cobra.Command{Use: "clients", Short: "Manage clients"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all clients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*stateDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			restore(ctx, app)
			out, err := app.RosterCLI.List(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.FromCache {
				_, _ = fmt.Fprintln(w, "(offline — showing cached data)")
			}
			for _, c := range out.Clients {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Email)
			}
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <name> <email>",
		Short: "Create a client",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadApp(*stateDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			restore(ctx, app)
			client, err := app.RosterCLI.Create(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created client %d: %s <%s>\n", client.ID, client.Name, client.Email)
			return nil
		},
	}

	clients.AddCommand(listCmd, addCmd)
	return clients
}

func newRosterCmd(stateDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "Show the day-grouped shift calendar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*stateDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			restore(ctx, app)
			calendar, err := app.ScheduleCLI.Calendar(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if calendar.FromCache {
				_, _ = fmt.Fprintln(w, "(offline — showing cached data)")
			}
			for _, day := range calendar.Days {
				_, _ = fmt.Fprintf(w, "%s\n", day)
				for _, shift := range calendar.ByDay[day] {
					_, _ = fmt.Fprintf(w, "  %s – %s  %s  %.1fh\n",
						shift.FormattedStart, shift.FormattedEnd, shift.ClientName, shift.Hours)
					if shift.Description != "" {
						_, _ = fmt.Fprintf(w, "    %s\n", shift.Description)
					}
				}
			}
			return nil
		},
	}
}

func newInvoicesCmd(stateDir *string) *cobra.Command {
	invoices := &cobra.Command{Use: "invoices", Short: "Manage invoices"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices with client and totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*stateDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			restore(ctx, app)
			out, err := app.BillingCLI.List(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.FromCache {
				_, _ = fmt.Fprintln(w, "(offline — showing cached data)")
			}
			for _, inv := range out.Invoices {
				status := "unpaid"
				if inv.Paid {
					status = "paid " + inv.PaidAt.Format("2006-01-02")
				}
				_, _ = fmt.Fprintf(w, "#%d\t%s\t%d shift(s)\t$%s\t%s\n",
					inv.ID, inv.ClientName, inv.ShiftCount, inv.Total, status)
			}
			return nil
		},
	}

	var due string
	createCmd := &cobra.Command{
		Use:   "create <client-id> <shift-id,...>",
		Short: "Raise an invoice for a client's shifts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadApp(*stateDir)
			if err != nil {
				return err
			}
			clientID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid client id %q", args[0])
			}
			var shiftIDs []int64
			for _, raw := range strings.Split(args[1], ",") {
				id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
				if err != nil {
					return fmt.Errorf("invalid shift id %q", raw)
				}
				shiftIDs = append(shiftIDs, id)
			}
			dueAt := time.Now().AddDate(0, 0, 14)
			if due != "" {
				if dueAt, err = time.Parse("2006-01-02", due); err != nil {
					return fmt.Errorf("invalid due date %q, want yyyy-mm-dd", due)
				}
			}
			ctx := context.Background()
			restore(ctx, app)
			invoice, err := app.BillingCLI.Create(ctx, clientID, shiftIDs, dueAt)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "raised invoice %d for %s: $%s\n",
				invoice.ID, invoice.ClientName, invoice.Total)
			return nil
		},
	}
	createCmd.Flags().StringVar(&due, "due", "", "due date (yyyy-mm-dd, default: 14 days out)")

	invoices.AddCommand(listCmd, createCmd)
	return invoices
}
