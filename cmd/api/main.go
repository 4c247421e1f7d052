package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mdr-twin-gateway/internal/adapters/storage"
	"mdr-twin-gateway/internal/config"
	"mdr-twin-gateway/internal/domain/twin"
	"mdr-twin-gateway/internal/platform/logger"
	"mdr-twin-gateway/internal/router"

	"github.com/google/uuid"
)

// @title MDR Twin Gateway API
// @version 1.0
// @description API de solo lectura sobre la base de contact tracing MDR (vista de gemelo digital).
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{App: config.DefaultAppName}).Error("invalid configuration", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}

	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server error", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}
}

const shutdownTimeout = 10 * time.Second

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	}).With(logger.Fields{
		"target":      "api",
		"instance_id": uuid.NewString(),
	})
}

// run abre el almacenamiento y recién entonces abre el puerto: si el store
// no abre, no hay disponibilidad parcial.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	if err := cfg.Database.Validate(); err != nil {
		return err
	}

	store, err := storage.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	log.Info("store opened", logger.Fields{
		"driver":    store.Driver,
		"location":  store.Location,
		"read_only": true,
	})
	logDiagnostics(ctx, twin.NewService(store.Repo), log)

	ln, err := net.Listen("tcp", cfg.Server.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Addr(), err)
	}

	return serve(ctx, ln, router.NewRouter(router.Options{Repo: store.Repo, Logger: log}), log)
}

// serve atiende ln hasta que ctx termina y no vuelve hasta que Shutdown haya
// drenado las requests en curso: el caller cierra el store al retornar.
func serve(ctx context.Context, ln net.Listener, h http.Handler, log logger.Logger) error {
	srv := &http.Server{
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	shutdownDone := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownDone <- srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", logger.Fields{"addr": ln.Addr().String()})
	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	// Serve vuelve apenas empieza Shutdown
	if err := <-shutdownDone; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped", nil)
	return nil
}

// logDiagnostics reporta una sola vez conteo de pacientes y tablas.
// Un fallo aquí no es fatal: el store ya abrió y cada request reporta sus errores.
func logDiagnostics(ctx context.Context, svc *twin.Service, log logger.Logger) {
	dctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	d, err := svc.Diagnostics(dctx)
	fields := logger.Fields{
		"patients": d.PatientCount,
		"tables":   d.Tables,
	}
	if err != nil {
		fields["error"] = err.Error()
		log.Warn("startup diagnostics incomplete", fields)
		return
	}
	log.Info("startup diagnostics", fields)
}
