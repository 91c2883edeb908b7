package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"patient-adherence/internal/adapters/auth/jwtauth"
	pg "patient-adherence/internal/adapters/storage/postgres"
	"patient-adherence/internal/config"
	"patient-adherence/internal/jobs"
	"patient-adherence/internal/platform/civil"
	"patient-adherence/internal/platform/logger"
	"patient-adherence/internal/ports/auth"
	"patient-adherence/internal/router"
)

// @title Patient Adherence API
// @version 1.0
// @description Seguimiento de medicación y exámenes: dosis programadas, confirmaciones y reportes de adherencia.
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:   "patient-adherence",
		Short: "Medication and exam adherence API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(expandCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the dose expansion scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := pg.Migrate(cmd.Context(), db)
			if err != nil {
				log.Error("migration failed", map[string]any{"applied": n, "error": err})
				return err
			}
			log.Info("migrations applied", map[string]any{"applied": n})
			return nil
		},
	}
}

func expandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Create the dose entries of one civil day (idempotent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("date")

			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}

			day := civil.DateOf(time.Now())
			if raw != "" {
				if day, err = civil.ParseDate(raw); err != nil {
					return err
				}
			}

			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			svcs := router.NewServices(router.Options{DB: db, Logger: log})
			sched, err := jobs.NewScheduler(svcs.Medications, cfg.ExpansionCron, nil, log)
			if err != nil {
				return err
			}
			_, err = sched.ExpandDate(cmd.Context(), day)
			return err
		},
	}
	cmd.Flags().String("date", "", "Civil date YYYY-MM-DD (default today)")
	return cmd
}

func bootstrap() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	return cfg, log, nil
}

func openDB(cfg *config.Config) (*sql.DB, error) {
	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN is required for this command")
	}
	db, err := pg.Open(cfg.DBDSN, cfg.DBMaxOpenConns)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func runServer() error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	opts := router.Options{
		Logger:  log,
		Swagger: cfg.SwaggerEnabled,
	}

	if cfg.DBDSN != "" {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		opts.DB = db
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	// sin verifier => modo dev con X-Debug-User-ID
	var verifier auth.AuthVerifier
	if cfg.JWTSecret != "" {
		verifier = jwtauth.NewVerifier(jwtauth.Options{Secret: cfg.JWTSecret})
	} else {
		log.Warn("JWT_SECRET not set, accepting X-Debug-User-ID", nil)
	}
	opts.AuthVerifier = verifier

	svcs := router.NewServices(opts)

	sched, err := jobs.NewScheduler(svcs.Medications, cfg.ExpansionCron, nil, log)
	if err != nil {
		return err
	}
	if err := sched.Start(context.Background()); err != nil {
		return err
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.Mount(svcs, opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("server error", map[string]any{"error": err})
		return err
	case <-quit:
	}

	log.Info("shutting down server", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("server stopped", nil)
	return nil
}
