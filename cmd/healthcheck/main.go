package main

import (
	"context"
	"os"
	"strconv"

	"mdr-twin-gateway/internal/config"
	"mdr-twin-gateway/internal/platform/httpclient"
)

// healthcheck sale con 0 si /health del servicio local responde {"status":"ok"}.
// Pensado para HEALTHCHECK de contenedores. Acepta la URL base como primer argumento.
func main() {
	base := "http://127.0.0.1:" + strconv.Itoa(config.DefaultPort)
	if v := os.Getenv(config.EnvPort); v != "" {
		base = "http://127.0.0.1:" + v
	}
	if len(os.Args) > 1 {
		base = os.Args[1]
	}

	c, err := httpclient.New(base, httpclient.DefaultTimeout)
	if err != nil {
		os.Exit(1)
	}
	if err := c.CheckHealth(context.Background()); err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}
