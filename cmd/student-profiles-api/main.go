// main is the entry point of the Student Profiles API.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file (plus .env / env overrides)
//  2. Initialise the logger
//  3. Load the course → branches reference table
//  4. Connect to the configured document store (MongoDB or SQLite)
//  5. Build the validator, the profile service and the route table
//  6. Start the HTTP server in a separate goroutine
//  7. Block until an OS signal arrives, then shut down gracefully
//
// RUNNING THE SERVER:
//
//	go run ./cmd/student-profiles-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/student-profiles-api
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/student-profiles-api/internal/config"
	"github.com/aanand-mishra/student-profiles-api/internal/http/router"
	"github.com/aanand-mishra/student-profiles-api/internal/profile"
	"github.com/aanand-mishra/student-profiles-api/internal/refdata"
	"github.com/aanand-mishra/student-profiles-api/internal/storage"
	"github.com/aanand-mishra/student-profiles-api/internal/storage/mongo"
	"github.com/aanand-mishra/student-profiles-api/internal/storage/sqlite"
	"github.com/aanand-mishra/student-profiles-api/internal/validation"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// The handlers log through the default logger, so make ours the default.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting student-profiles-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Reference Data ─────────────────────────────────────────────────
	// Without the table no registration can be judged, so refuse to start.
	table, err := refdata.Load(cfg.ReferenceDataPath)
	if err != nil {
		log.Error("failed to load reference data",
			slog.String("path", cfg.ReferenceDataPath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("reference data loaded",
		slog.Int("courses", len(table.Courses())))

	// ── 4. Initialise Storage ─────────────────────────────────────────────
	// The rest of the program only sees the storage.Gateway interface.
	store, err := openStore(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("driver", cfg.Storage.Driver),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised",
		slog.String("driver", cfg.Storage.Driver))

	// ── 5. Service + Routes ───────────────────────────────────────────────
	service := profile.New(validation.New(table), store, log)

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router.New(service, log, cfg.HTTPServer.AllowedOrigin),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	// In-flight requests get ShutdownTimeout to finish; the store is closed
	// afterwards so no request loses its connection mid-write.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	exitCode := 0
	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		exitCode = 1
	}

	if err := store.Close(ctx); err != nil {
		log.Error("failed to close storage",
			slog.String("error", err.Error()))
		exitCode = 1
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
	log.Info("server stopped gracefully")
}

// openStore connects the backend named by cfg.Storage.Driver.
func openStore(cfg *config.Config) (storage.Gateway, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		return sqlite.New(cfg)
	default:
		return mongo.New(context.Background(), cfg)
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
