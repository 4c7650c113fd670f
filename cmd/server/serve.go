package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/soaringjerry/messageservice/internal/api"
	"github.com/soaringjerry/messageservice/internal/catalog"
	"github.com/soaringjerry/messageservice/internal/config"
	"github.com/soaringjerry/messageservice/internal/logging"
	"github.com/soaringjerry/messageservice/internal/middleware"
	"github.com/soaringjerry/messageservice/internal/services"
)

const serviceName = "messagesvc"

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default when no command is given)",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.Init(level, cfg.LogFormat, cfg.LogColored, cmd.ErrOrStderr())
	log := logging.New("server")

	store, err := buildStore(cfg.SeedFile)
	if err != nil {
		return err
	}
	log.Info("catalog seeded", "messages", store.Len(), "seed_file", cfg.SeedFile)

	messages := services.NewMessageService(store, logging.New("messages"))
	router := api.NewRouter(messages, buildInfo(cfg), logging.New("api"))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(cfg, router, log),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("stopped cleanly")
	return nil
}

// buildStore seeds from path, or from the embedded set when path is empty.
func buildStore(path string) (*catalog.Store, error) {
	if path == "" {
		return catalog.NewSeededStore()
	}
	set, err := catalog.LoadSeedFile(path)
	if err != nil {
		return nil, err
	}
	return catalog.NewStore(set.Messages())
}

func newHandler(cfg config.Config, router *api.Router, log *slog.Logger) http.Handler {
	mws := []middleware.Middleware{
		middleware.RequestID,
		middleware.AccessLog(log),
		middleware.Recover(log),
		middleware.SecureHeaders,
		middleware.NoStore,
	}
	if cfg.CORSEnabled {
		mws = append(mws, middleware.CORS)
	}
	return otelhttp.NewHandler(middleware.Chain(router.Handler(), mws...), serviceName)
}

func buildInfo(cfg config.Config) api.BuildInfo {
	info := api.BuildInfo{Name: serviceName, Version: version, Commit: commit, BuildTime: buildTime}
	if cfg.Commit != "" {
		info.Commit = cfg.Commit
	}
	if cfg.BuildTime != "" {
		info.BuildTime = cfg.BuildTime
	}
	return info
}
