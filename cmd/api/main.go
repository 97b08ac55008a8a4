package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	api "authservice/internal/adapter/http"
	"authservice/pkg/config"
	"authservice/pkg/tracing"
)

func main() {
	ctx := context.Background()

	lokiURL := os.Getenv("LOKI_URL")

	if lokiURL == "" {
		lokiURL = "http://localhost:3100"
	}

	logger, err := config.NewLokiLogger("authservice", lokiURL)

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	telemetry, err := tracing.InitTelemetry(tracing.TelemetryConfig{
		ServiceName:    "authservice",
		ServiceVersion: "1.0.0",
		Environment:    os.Getenv("GIN_MODE"),
		MetricsPort:    "9091",
		OTLPEndpoint:   "localhost:4317",
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer telemetry.Shutdown(ctx)

	metrics := tracing.NewAppMetrics(telemetry.PrometheusRegistry)
	metrics.StartSystemMetrics(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go api.StartServer(metrics, logger)

	<-c
	logger.Logger.Info("Shutting down gracefully...")
}
