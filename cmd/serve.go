package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/project-registry/api/v1"
	"github.com/project-registry/config"
	"github.com/project-registry/database"
	"github.com/project-registry/logutils"
	"github.com/project-registry/services"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveFlags struct {
	envFile string
	port    string
	driver  string
}

// ServeCmd starts the HTTP server
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return serve(ctx)
	},
}

func init() {
	ServeCmd.Flags().StringVar(&serveFlags.envFile, "env-file", "", "path to a .env file (default ./.env)")
	ServeCmd.Flags().StringVar(&serveFlags.port, "port", "", "listen port, overrides PORT")
	ServeCmd.Flags().StringVar(&serveFlags.driver, "driver", "", "store driver (mongo, postgres or memory), overrides DB_DRIVER")
}

func serve(ctx context.Context) error {
	if serveFlags.envFile != "" {
		config.LoadEnv(serveFlags.envFile)
	} else {
		config.LoadEnv()
	}
	cfg, err := config.LoadWithOverrides(config.Overrides{
		Port:   serveFlags.port,
		Driver: serveFlags.driver,
	})
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logutils.Configure(cfg.App.LogLevel, cfg.App.LogFormat)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer closeCancel()
		if err := conn.Close(closeCtx); err != nil {
			logutils.Log.WithError(err).Error("failed to close database connection")
		}
	}()
	logutils.Log.WithField("driver", conn.Driver).Info("database connected")

	router := v1.NewRouter(v1.Dependencies{
		Projects:    services.NewProjectService(conn.Projects),
		Auth:        services.NewAuthService(conn.Users, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Store:       conn,
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logutils.Log.WithFields(logutils.Fields{
			"addr":        httpServer.Addr,
			"environment": cfg.App.Environment,
			"version":     cfg.App.Version,
		}).Info("HTTP server listening")
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logutils.Log.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logutils.Log.Info("server stopped gracefully")
	return nil
}
