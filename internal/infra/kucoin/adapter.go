package kucoin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/deepinit-arek/pyexchange/internal/domain"
)

// orderPrecision is the number of decimal places the exchange accepts per
// asset when placing orders. Assets outside this table cannot be traded.
var orderPrecision = map[string]int32{
	"ETH":  7,
	"USDT": 6,
	"MKR":  4,
	"BTC":  7,
	"DAI":  4,
}

// Adapter is the typed facade over the KuCoin client. It validates
// arguments, forwards calls, and reshapes responses into domain values.
// It holds no state beyond the client handle and is safe for concurrent use
// to the same extent the client is.
type Adapter struct {
	client Client
}

// NewAdapter builds an adapter backed by the real REST client.
func NewAdapter(apiServer, apiKey, secretKey string, timeout time.Duration) (*Adapter, error) {
	if apiServer == "" {
		return nil, fmt.Errorf("%w: empty api server", ErrInvalidArgument)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: empty api key", ErrInvalidArgument)
	}
	if secretKey == "" {
		return nil, fmt.Errorf("%w: empty secret key", ErrInvalidArgument)
	}
	return &Adapter{client: newRESTClient(apiServer, apiKey, secretKey, timeout)}, nil
}

// NewAdapterWithClient builds an adapter around an existing client,
// typically a fake in tests.
func NewAdapterWithClient(client Client) *Adapter {
	return &Adapter{client: client}
}

// GetMarkets returns the tradable pairs, untouched.
func (a *Adapter) GetMarkets(ctx context.Context) ([]string, error) {
	return a.client.GetTradingMarkets(ctx)
}

// Ticker returns the ticker snapshot for a pair, untouched.
func (a *Adapter) Ticker(ctx context.Context, pair string) (Tick, error) {
	if pair == "" {
		return Tick{}, fmt.Errorf("%w: empty pair", ErrInvalidArgument)
	}
	return a.client.GetTick(ctx, pair)
}

// GetBalances returns all account balances, untouched.
func (a *Adapter) GetBalances(ctx context.Context) ([]CoinBalance, error) {
	return a.client.GetAllBalances(ctx)
}

// GetBalance returns the balance of a single asset.
func (a *Adapter) GetBalance(ctx context.Context, coin string) (CoinBalance, error) {
	if coin == "" {
		return CoinBalance{}, fmt.Errorf("%w: empty coin", ErrInvalidArgument)
	}
	return a.client.GetCoinBalance(ctx, coin)
}

// GetFiatBalance returns the account value in the given fiat currency.
func (a *Adapter) GetFiatBalance(ctx context.Context, fiat string) (TotalBalance, error) {
	if fiat == "" {
		return TotalBalance{}, fmt.Errorf("%w: empty fiat currency", ErrInvalidArgument)
	}
	return a.client.GetTotalBalance(ctx, fiat)
}

// GetUserInfo returns the account profile, untouched.
func (a *Adapter) GetUserInfo(ctx context.Context) (UserInfo, error) {
	return a.client.GetUser(ctx)
}

// OrderBook returns a depth snapshot. A limit of 0 leaves the depth to the
// exchange default.
func (a *Adapter) OrderBook(ctx context.Context, pair string, limit int) (OrderBook, error) {
	if pair == "" {
		return OrderBook{}, fmt.Errorf("%w: empty pair", ErrInvalidArgument)
	}
	return a.client.GetOrderBook(ctx, pair, limit)
}

// GetOrders returns the active orders of a pair, sell orders first, each
// side in the order the exchange returned it. No further ordering is
// guaranteed.
func (a *Adapter) GetOrders(ctx context.Context, pair string) ([]domain.Order, error) {
	if pair == "" {
		return nil, fmt.Errorf("%w: empty pair", ErrInvalidArgument)
	}

	active, err := a.client.GetActiveOrders(ctx, pair)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(active.Sell)+len(active.Buy))
	for _, row := range active.Sell {
		order, err := orderFromRow(row, pair, true)
		if err != nil {
			return nil, fmt.Errorf("mapping sell order: %w", err)
		}
		orders = append(orders, order)
	}
	for _, row := range active.Buy {
		order, err := orderFromRow(row, pair, false)
		if err != nil {
			return nil, fmt.Errorf("mapping buy order: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// PlaceOrder submits a limit order and returns the exchange-assigned order
// id. Price is formatted to the quote asset's precision, amount to the base
// asset's; an asset without a configured precision fails before any remote
// call is made.
func (a *Adapter) PlaceOrder(ctx context.Context, pair string, isSell bool, price, amount decimal.Decimal) (string, error) {
	base, quote, err := splitPair(pair)
	if err != nil {
		return "", err
	}
	if price.IsNegative() {
		return "", fmt.Errorf("%w: negative price %s", ErrInvalidArgument, price)
	}
	if amount.IsNegative() {
		return "", fmt.Errorf("%w: negative amount %s", ErrInvalidArgument, amount)
	}

	priceStr, err := formatToPrecision(price, quote)
	if err != nil {
		return "", err
	}
	amountStr, err := formatToPrecision(amount, base)
	if err != nil {
		return "", err
	}

	side := domain.SideName(isSell)
	slog.Info("Placing order",
		slog.String("side", side),
		slog.String("pair", pair),
		slog.String("price", priceStr),
		slog.String("amount", amountStr),
	)

	orderID, err := a.client.CreateOrder(ctx, pair, side, priceStr, amountStr)
	if err != nil {
		return "", fmt.Errorf("placing %s order for %s: %w", side, pair, err)
	}

	slog.Info("Placed order", slog.String("order_id", orderID))
	return orderID, nil
}

// CancelOrder attempts to cancel an order and reports success as a boolean.
// A remote failure is logged and reported as false instead of propagated;
// this is deliberately the one place the adapter swallows an error.
func (a *Adapter) CancelOrder(ctx context.Context, orderID string, isSell bool, pair string) (bool, error) {
	if orderID == "" {
		return false, fmt.Errorf("%w: empty order id", ErrInvalidArgument)
	}
	if pair == "" {
		return false, fmt.Errorf("%w: empty pair", ErrInvalidArgument)
	}

	side := domain.SideName(isSell)
	slog.Info("Cancelling order", slog.String("order_id", orderID), slog.String("side", side))

	if err := a.client.CancelOrder(ctx, orderID, side, pair); err != nil {
		slog.Error("Failed to cancel order", slog.String("order_id", orderID), slog.Any("error", err))
		return false, nil
	}

	slog.Info("Cancelled order", slog.String("order_id", orderID))
	return true, nil
}

// CancelAllOrders cancels every active order of one side of a pair and
// returns how many cancellations succeeded. Individual failures follow the
// CancelOrder swallow rule.
func (a *Adapter) CancelAllOrders(ctx context.Context, isSell bool, pair string) (int, error) {
	orders, err := a.GetOrders(ctx, pair)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, order := range orders {
		if order.IsSell != isSell {
			continue
		}
		ok, err := a.CancelOrder(ctx, order.OrderID, isSell, pair)
		if err != nil {
			return cancelled, err
		}
		if ok {
			cancelled++
		}
	}
	return cancelled, nil
}

// GetTrades returns one page (100 entries) of this account's trade history
// for a pair. The caller's page numbering starts at 1; the exchange's at 0.
func (a *Adapter) GetTrades(ctx context.Context, pair string, pageNumber int) ([]domain.Trade, error) {
	if pair == "" {
		return nil, fmt.Errorf("%w: empty pair", ErrInvalidArgument)
	}
	if pageNumber < 1 {
		return nil, fmt.Errorf("%w: page number %d", ErrInvalidArgument, pageNumber)
	}

	const limit = 100
	records, err := a.client.GetSymbolDealtOrders(ctx, pair, pageNumber-1, limit)
	if err != nil {
		return nil, err
	}

	trades := make([]domain.Trade, 0, len(records))
	for _, rec := range records {
		trade, err := tradeFromRecord(pair, rec)
		if err != nil {
			return nil, fmt.Errorf("mapping dealt order: %w", err)
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

// GetAllTrades returns the 50 most recent public trades for a pair. The
// endpoint is not paged, so any page number other than 1 is rejected before
// a remote call is made.
func (a *Adapter) GetAllTrades(ctx context.Context, pair string, pageNumber int) ([]domain.Trade, error) {
	if pair == "" {
		return nil, fmt.Errorf("%w: empty pair", ErrInvalidArgument)
	}
	if pageNumber != 1 {
		return nil, fmt.Errorf("%w: got page %d", ErrUnsupportedPage, pageNumber)
	}

	const limit = 50
	rows, err := a.client.GetRecentOrders(ctx, pair, limit)
	if err != nil {
		return nil, err
	}

	trades := make([]domain.Trade, 0, len(rows))
	for _, row := range rows {
		trade, err := tradeFromRow(pair, row)
		if err != nil {
			return nil, fmt.Errorf("mapping public trade: %w", err)
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

// splitPair splits "ETH-DAI" into base "ETH" and quote "DAI".
func splitPair(pair string) (base, quote string, err error) {
	parts := strings.Split(pair, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: malformed pair %q", ErrInvalidArgument, pair)
	}
	return parts[0], parts[1], nil
}

// formatToPrecision renders a decimal with exactly the asset's configured
// number of decimal places.
func formatToPrecision(value decimal.Decimal, asset string) (string, error) {
	places, ok := orderPrecision[asset]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}
	return value.StringFixed(places), nil
}
