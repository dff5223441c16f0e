package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crucial707/itadmin/internal/auth"
	"github.com/crucial707/itadmin/internal/config"
	"github.com/crucial707/itadmin/internal/db"
	"github.com/crucial707/itadmin/internal/logging"
	"github.com/crucial707/itadmin/internal/repo"
	"github.com/crucial707/itadmin/internal/seed"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(config.Load()).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "itadmin-api",
		Short:         "IT asset admin API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			slog.SetDefault(logging.New(cfg.LogFormat, cfg.LogLevel))
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context(), cfg)
			},
		},
		migrateCmd(cfg),
		seedCmd(cfg),
		tokenCmd(cfg),
	)
	return root
}

// ==========================
// serve
// ==========================

func serve(ctx context.Context, cfg config.Config) error {
	if cfg.AutoMigrate {
		if err := db.Migrate(cfg.DatabaseURL()); err != nil {
			return err
		}
		slog.Info("migrations applied")
	}

	conn, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	if cfg.SeedOnStart {
		if _, err := seed.Bootstrap(ctx, repo.NewUserRepo(conn)); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(conn, cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		tls := cfg.TLSCertFile != ""
		slog.Info("starting server", "addr", srv.Addr, "tls", tls, "driver", cfg.DBDriver)
		if tls {
			errCh <- srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

func connect(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	conn, err := db.Connect(ctx, cfg.DBDriver, cfg.DSN(), db.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return conn, nil
}

// ==========================
// migrate
// ==========================

func migrateCmd(cfg config.Config) *cobra.Command {
	var down int
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations, or roll back with --down",
		RunE: func(cmd *cobra.Command, args []string) error {
			if down > 0 {
				if err := db.Rollback(cfg.DatabaseURL(), down); err != nil {
					return err
				}
				slog.Info("migrations rolled back", "steps", down)
				return nil
			}
			if err := db.Migrate(cfg.DatabaseURL()); err != nil {
				return err
			}
			slog.Info("migrations applied")
			return nil
		},
	}
	cmd.Flags().IntVar(&down, "down", 0, "number of migration steps to roll back")
	return cmd
}

// ==========================
// seed
// ==========================

func seedCmd(cfg config.Config) *cobra.Command {
	var sample bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default admin user, and optionally demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer conn.Close()

			if sample {
				sum, err := seed.Sample(cmd.Context(), conn)
				if err != nil {
					return fmt.Errorf("sample data: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users, %d assets, %d tickets\n", sum.Users, sum.Assets, sum.Tickets)
				return nil
			}

			created, err := seed.Bootstrap(cmd.Context(), repo.NewUserRepo(conn))
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created default admin %s\n", seed.AdminEmail)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Users already exist; nothing to do")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&sample, "sample", false, "load demo users, assets and tickets")
	return cmd
}

// ==========================
// token
// ==========================

func tokenCmd(cfg config.Config) *cobra.Command {
	var (
		userID int
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token that identifies the acting user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return errors.New("--user-id must be a positive user id")
			}
			token, err := auth.Issue([]byte(cfg.JWTSecret), userID, ttl)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().IntVar(&userID, "user-id", 0, "id of the user the token identifies")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Duration(cfg.JWTExpireHours)*time.Hour, "token lifetime")
	return cmd
}
