package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"mdr-twin-gateway/internal/config"
	"mdr-twin-gateway/internal/platform/logger"
	"mdr-twin-gateway/internal/probe"

	"github.com/google/uuid"
)

// Probe TCP: contesta cualquier conexión con un texto fijo.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{App: config.DefaultAppName}).Error("invalid configuration", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	}).With(logger.Fields{
		"target":      "probe",
		"instance_id": uuid.NewString(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &probe.Server{Payload: cfg.Probe.Payload, Logger: log}

	log.Info("probe server running", logger.Fields{"addr": cfg.Probe.Addr()})
	if err := srv.ListenAndServe(ctx, cfg.Probe.Addr()); err != nil {
		log.Error("probe error", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}
}
