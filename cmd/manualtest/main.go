// Manual smoke tool for the KuCoin adapter. Runs one operation against the
// live exchange and prints the result; not a service.
//
//	manualtest -op ticker -pair ETH-DAI
//	manualtest -op place-order -pair ETH-DAI -sell -price 80.22 -amount 0.12
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/deepinit-arek/pyexchange/internal/infra"
	"github.com/deepinit-arek/pyexchange/internal/infra/kucoin"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml configuration")
	op := flag.String("op", "ticker", "operation: markets, ticker, balances, balance, fiat-balance, user, order-book, orders, place-order, cancel-order, cancel-all, trades, all-trades")
	pair := flag.String("pair", "ETH-DAI", "trading pair")
	coin := flag.String("coin", "ETH", "asset for balance")
	fiat := flag.String("fiat", "USD", "fiat currency for fiat-balance")
	priceStr := flag.String("price", "0", "order price")
	amountStr := flag.String("amount", "0", "order amount")
	sell := flag.Bool("sell", false, "sell side (default buy)")
	orderID := flag.String("order-id", "", "order id for cancel-order")
	page := flag.Int("page", 1, "page number for trades")
	limit := flag.Int("limit", 0, "order book depth (0 = exchange default)")
	flag.Parse()

	// Secrets may come from a local .env; absence is fine.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	adapter, err := kucoin.NewAdapter(
		cfg.API.Kucoin.RestURL,
		cfg.API.Kucoin.APIKey,
		cfg.API.Kucoin.SecretKey,
		time.Duration(cfg.API.Kucoin.TimeoutSec)*time.Second,
	)
	if err != nil {
		slog.Error("Failed to build adapter", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()

	var result any
	switch *op {
	case "markets":
		result, err = adapter.GetMarkets(ctx)
	case "ticker":
		result, err = adapter.Ticker(ctx, *pair)
	case "balances":
		result, err = adapter.GetBalances(ctx)
	case "balance":
		result, err = adapter.GetBalance(ctx, *coin)
	case "fiat-balance":
		result, err = adapter.GetFiatBalance(ctx, *fiat)
	case "user":
		result, err = adapter.GetUserInfo(ctx)
	case "order-book":
		result, err = adapter.OrderBook(ctx, *pair, *limit)
	case "orders":
		result, err = adapter.GetOrders(ctx, *pair)
	case "place-order":
		var price, amount decimal.Decimal
		if price, err = decimal.NewFromString(*priceStr); err != nil {
			break
		}
		if amount, err = decimal.NewFromString(*amountStr); err != nil {
			break
		}
		result, err = adapter.PlaceOrder(ctx, *pair, *sell, price, amount)
	case "cancel-order":
		result, err = adapter.CancelOrder(ctx, *orderID, *sell, *pair)
	case "cancel-all":
		result, err = adapter.CancelAllOrders(ctx, *sell, *pair)
	case "trades":
		result, err = adapter.GetTrades(ctx, *pair, *page)
	case "all-trades":
		result, err = adapter.GetAllTrades(ctx, *pair, *page)
	default:
		slog.Error("Unknown operation", slog.String("op", *op))
		os.Exit(2)
	}

	if err != nil {
		slog.Error("Operation failed", slog.String("op", *op), slog.Any("error", err))
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Printf("%+v\n", result)
		return
	}
	fmt.Println(string(out))
}
