package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"symbol-charts-go/internal/binance"
	"symbol-charts-go/internal/chart"
	"symbol-charts-go/internal/config"
	"symbol-charts-go/internal/database"
	"symbol-charts-go/internal/logger"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Initialize Binance feed client and check connectivity
	restClient := binance.NewRestClient(&cfg.Binance, log)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if _, err := restClient.GetServerTime(ctx); err != nil {
		cancel()
		log.Fatal("Failed to connect to Binance API", zap.Error(err))
	}
	cancel()
	log.Info("Successfully connected to Binance API.")

	// Pick the trade source: a tabular trade file when configured,
	// otherwise the account trade store.
	var trades chart.TradeSource
	if cfg.Chart.TradesCSV != "" {
		log.Info("Using tabular trade source", zap.String("path", cfg.Chart.TradesCSV))
		trades = chart.CSVSource{Path: cfg.Chart.TradesCSV}
	} else {
		db, err := database.NewDatabase(cfg.Database.DSN)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		trades = chart.StoreSource{DB: db}
	}

	pipeline := chart.NewPipeline(log, restClient, trades, cfg.Chart.Interval, cfg.Chart.AnnotationOffset)

	// Setup HTTP server
	mux := http.NewServeMux()

	apiHandler := NewAPIHandler(log, &cfg, pipeline)
	mux.HandleFunc("/api/status", apiHandler.StatusHandler)
	mux.HandleFunc("/api/chart", apiHandler.ChartHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting web server", zap.String("address", addr))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal("Web server failed", zap.Error(err))
	}
}
