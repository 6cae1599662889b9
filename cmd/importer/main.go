package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"symbol-charts-go/internal/config"
	"symbol-charts-go/internal/database"
	"symbol-charts-go/internal/logger"
	"symbol-charts-go/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// timeLayout matches the execution-history export format.
const timeLayout = "2006-01-02 15:04:05"

func main() {
	csvPath := flag.String("csv", "", "path to the account trade history CSV")
	configPath := flag.String("config", "./configs", "path to the config directory")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *csvPath == "" {
		log.Fatal("-csv flag is required")
	}

	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	count, err := importTrades(db, *csvPath)
	if err != nil {
		log.Fatal("Import failed", zap.Error(err))
	}
	log.Info("Import complete", zap.Int("trades", count))
}

// importTrades loads an execution-history CSV with columns
// {symbol, orderId, side, price, qty, realizedPnl, time} into the
// account trade store.
func importTrades(db *gorm.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("%s has no header row", path)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	for _, name := range []string{"symbol", "orderId", "side", "price", "qty", "realizedPnl", "time"} {
		if _, ok := col[name]; !ok {
			return 0, fmt.Errorf("missing required column %q", name)
		}
	}

	trades := make([]models.AccountTrade, 0, len(records)-1)
	for line, row := range records[1:] {
		orderID, err := strconv.ParseInt(row[col["orderId"]], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("row %d orderId: %w", line+2, err)
		}
		price, err := strconv.ParseFloat(row[col["price"]], 64)
		if err != nil {
			return 0, fmt.Errorf("row %d price: %w", line+2, err)
		}
		qty, err := strconv.ParseFloat(row[col["qty"]], 64)
		if err != nil {
			return 0, fmt.Errorf("row %d qty: %w", line+2, err)
		}
		pnl, err := strconv.ParseFloat(row[col["realizedPnl"]], 64)
		if err != nil {
			return 0, fmt.Errorf("row %d realizedPnl: %w", line+2, err)
		}
		ts, err := time.ParseInLocation(timeLayout, row[col["time"]], time.UTC)
		if err != nil {
			return 0, fmt.Errorf("row %d time: %w", line+2, err)
		}

		trades = append(trades, models.AccountTrade{
			Symbol:      row[col["symbol"]],
			OrderID:     orderID,
			Side:        row[col["side"]],
			Price:       price,
			Qty:         qty,
			RealizedPnl: pnl,
			Time:        ts,
		})
	}

	if len(trades) == 0 {
		return 0, nil
	}
	if err := db.Create(&trades).Error; err != nil {
		return 0, fmt.Errorf("failed to insert trades: %w", err)
	}
	return len(trades), nil
}
