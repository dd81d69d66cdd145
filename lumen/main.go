package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lumen/lumen/agents/setup"
	"lumen/lumen/config"
	"lumen/lumen/controllers"
	"lumen/lumen/routes"
	"lumen/lumen/sources/psql"
	"lumen/lumen/sources/psql/dao"
	"lumen/lumen/sources/storage"
	"lumen/lumen/utils/logging"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		fmt.Fprintln(os.Stderr, "logger init:", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := run(cfg); err != nil {
		logging.ErrorLogger.Error("server stopped", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	agents, err := setup.Build(cfg)
	if err != nil {
		return err
	}
	defer agents.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	checks := map[string]controllers.Check{}

	var store storage.UploadStore
	if cfg.MinIOEnabled() {
		m, err := storage.NewMinIOStore(ctx, cfg)
		if err != nil {
			return fmt.Errorf("minio connection error: %w", err)
		}
		checks["minio"] = m.Ping
		store = m
	} else {
		d, err := storage.NewDiskStore(cfg.UploadDir)
		if err != nil {
			return err
		}
		store = d
	}

	c := routes.Controllers{
		Chat:   controllers.NewChatController(agents.Pipeline),
		Image:  controllers.NewImageController(agents.Analyzer, store, cfg.MaxUploadBytes),
		Health: controllers.NewHealthController(checks),
	}

	if cfg.DatabaseEnabled() {
		db, err := psql.NewDatabase(ctx, cfg)
		if err != nil {
			return fmt.Errorf("database connection error: %w", err)
		}
		defer db.Close()
		checks["database"] = db.Ping

		userDAO := dao.NewUserDAO(db.DB)
		if cfg.AuthEnabled() {
			c.Auth = controllers.NewAuthController(userDAO, cfg)
			c.User = controllers.NewUserController(userDAO)
		}
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           routes.NewRouter(cfg, c),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server listen error: %w", err)
	case <-sigCh:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	logging.AppLogger.Info("server shutdown complete")
	return nil
}
