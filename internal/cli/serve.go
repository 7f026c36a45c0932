package cli

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleetadmin/internal/db"
	"fleetadmin/internal/handlers"
	"fleetadmin/internal/router"
	"fleetadmin/internal/services"

	"github.com/spf13/cobra"
)

func serveCmd(a *app) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the console's HTTP gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				a.cfg.Port = port
			}
			return runServer(a)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (default $PORT or 8080)")
	return cmd
}

// openAudit connects the audit store and starts its retention sweep. With
// no AUDIT_DB_URL the gateway runs without an audit trail.
func openAudit(a *app) (*services.AuditService, func(), error) {
	if a.cfg.AuditDBUrl == "" {
		a.logger.Info().Msg("AUDIT_DB_URL not set, audit log disabled")
		return nil, func() {}, nil
	}

	conn, err := db.InitDB(a.cfg.AuditDriver, a.cfg.AuditDBUrl, a.logger)
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(conn, a.cfg.AuditDriver, a.logger); err != nil {
		conn.Close()
		return nil, nil, err
	}

	audit := services.NewAuditService(conn, a.cfg.AuditDriver, a.logger)
	jobs := services.NewJobService(audit, a.cfg.AuditRetentionDays, a.logger)
	scheduler, err := jobs.Start(a.cfg.AuditSweepSchedule)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	return audit, func() {
		<-scheduler.Stop().Done()
		closeDB(a, conn)
	}, nil
}

func closeDB(a *app, conn *sql.DB) {
	if err := conn.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Closing audit database")
	}
}

func runServer(a *app) error {
	log := a.logger
	log.Info().Str("env", a.cfg.Env).Msg("Starting gateway")

	audit, closeAudit, err := openAudit(a)
	if err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	defer closeAudit()

	backend := &handlers.Backend{
		BaseURL: a.cfg.BaseURL,
		HTTP:    &http.Client{Timeout: a.cfg.HTTPTimeout},
		Logger:  log,
		Audit:   audit,
	}

	server := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           router.SetupRouter(a.cfg, backend, a.uploads, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("Gateway listening on port %s", a.cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
		log.Info().Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Gateway stopped")
	return nil
}
