package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chetan-code/missioncontrol/internal/auth"
	"github.com/chetan-code/missioncontrol/internal/config"
	"github.com/chetan-code/missioncontrol/internal/db"
	"github.com/chetan-code/missioncontrol/internal/handler"
	"github.com/chetan-code/missioncontrol/internal/repository"
	"github.com/chetan-code/missioncontrol/internal/service"
	"github.com/spf13/cobra"
)

const shutdownGrace = 10 * time.Second

func newServeCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			setupSlog(os.Stdout, cfg.LogLevel)
			if addr == "" {
				addr = cfg.Addr()
			}

			database, err := db.Open(cfg.DBURL)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer database.Close()

			router, err := newRouter(cfg, database, auth.DefaultHashParams)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides PORT)")
	return cmd
}

// newRouter wires repositories and services over database.
func newRouter(cfg *config.Config, database *sql.DB, hashParams auth.HashParams) (http.Handler, error) {
	tokens, err := auth.NewTokenIssuer([]byte(cfg.JWTSecret))
	if err != nil {
		return nil, err
	}
	hasher := auth.NewPasswordHasher(hashParams)
	uow := db.NewUnitOfWork(database)

	users := repository.NewUserRepo(database)
	tasks := repository.NewTaskRepo(database)
	taxonomy := repository.NewTaxonomyRepo(database)

	identity, err := service.NewIdentityService(users, hasher, tokens)
	if err != nil {
		return nil, err
	}

	services := handler.Services{
		Identity:  identity,
		Tasks:     service.NewTaskService(tasks, uow),
		Taxonomy:  service.NewTaxonomyService(taxonomy, uow),
		Admin:     service.NewAdminService(users, hasher),
		Dashboard: service.NewDashboardService(users, tasks),
	}
	if cfg.Google.Enabled() {
		handler.SetupGothic(cfg.Google, []byte(cfg.JWTSecret), strings.HasPrefix(cfg.Google.CallbackURL, "https://"))
		services.Google = handler.NewGoogleAuth(identity)
		slog.Info("google_login_enabled", "callback", cfg.Google.CallbackURL)
	}
	return handler.NewRouter(services), nil
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_start", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		slog.Error("server_start_failed", "error", err)
		return err
	case <-ctx.Done():
	}

	slog.Info("server_shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
