package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"p9e.in/ascomp/config"
	"p9e.in/ascomp/handlers"
	"p9e.in/ascomp/pkg/logger"
	"p9e.in/ascomp/pkg/storage"
	"p9e.in/ascomp/routes"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

// setup loads configuration and builds the logger every command shares.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, nil, err
	}
	if !cfg.EnvFileLoaded {
		log.Debug("no .env file found, using system environment variables")
	}
	return cfg, log, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := config.Connect(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	uploadDir := ""
	if local, ok := store.(*storage.LocalStore); ok {
		uploadDir = local.Dir()
	}

	h := handlers.New(config.DB, log, store, handlers.Options{
		Renderer:  cfg.PDF.Renderer,
		ChromeBin: cfg.PDF.ChromeBin,
		Timeout:   cfg.PDF.Timeout,
	})
	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: routes.RegisterRoutes(routes.Deps{
			Handler:   h,
			Log:       log,
			JWTSecret: []byte(cfg.JWTSecret),
			UploadDir: uploadDir,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", cfg.Port),
			zap.String("storage", store.Driver()), zap.String("pdf_renderer", cfg.PDF.Renderer))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()
		if err := config.Connect(cfg); err != nil {
			return err
		}
		log.Info("migrations applied")
		return nil
	},
}
