package main

import (
	"net/http"
	"os"
	"time"

	"mdr-twin-gateway/internal/config"
	"mdr-twin-gateway/internal/platform/logger"
	"mdr-twin-gateway/internal/router"

	"github.com/google/uuid"
)

// Servidor mini: solo /health ("mini-ok"), sin base de datos.
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
		"target":      "mini",
		"instance_id": uuid.NewString(),
	})

	srv := &http.Server{
		Addr:         cfg.Mini.Addr(),
		Handler:      router.NewMiniRouter(log),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("mini server running", logger.Fields{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}
}
