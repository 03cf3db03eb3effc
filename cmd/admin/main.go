package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/referral-platform/internal/app"
	"github.com/amirhossein-jamali/referral-platform/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/referral-platform/internal/domain/port/core"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/referral-platform/internal/infrastructure/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "referral-admin",
		Short:         "Operational commands for the referral platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newMigrateCommand(),
		newRoleCommand("grant-admin", "Give an existing user the admin role", entity.RoleAdmin),
		newRoleCommand("revoke-admin", "Return an admin to the user role", entity.RoleUser),
		newBackfillCommand(),
	)
	return root
}

// withApp loads configuration, connects and runs fn, closing everything afterwards
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.NewZapLogger(cfg.IsProduction(), coreport.ParseLogLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()

	a, err := app.New(cmd.Context(), cfg, appLogger)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(cmd.Context(), a)
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and create the bootstrap admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Migrate(ctx); err != nil {
					return err
				}
				cmd.Println("Schema is up to date")
				return nil
			})
		},
	}
}

func newRoleCommand(use, short string, role entity.Role) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <email>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				user, err := a.Users.SetRole(ctx, args[0], role)
				if err != nil {
					return err
				}
				cmd.Printf("User %d (%s) now has role %s\n", user.ID, user.Email, user.Role)
				return nil
			})
		},
	}
}

func newBackfillCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill-codes",
		Short: "Assign referral codes to users that have none",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				assigned, err := a.Referrals.BackfillCodes(ctx)
				if err != nil {
					return err
				}
				cmd.Printf("Assigned %d referral codes\n", assigned)
				return nil
			})
		},
	}
}
