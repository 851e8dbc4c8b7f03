package kucoin

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/deepinit-arek/pyexchange/internal/domain"
)

// fakeClient records every remote call so tests can assert both results and
// the absence of calls for precondition failures.
type fakeClient struct {
	calls []string

	markets      []string
	tick         Tick
	balances     []CoinBalance
	coinBalance  CoinBalance
	totalBalance TotalBalance
	user         UserInfo
	orderBook    OrderBook
	activeOrders ActiveOrders
	dealtOrders  []dealtOrder
	recentRows   []publicTradeRow

	createOrderID string

	lastCreate struct {
		pair, side, price, amount string
	}
	lastCancel struct {
		orderOid, side, pair string
	}
	lastPage  int
	lastLimit int

	err       error
	cancelErr error
}

func (f *fakeClient) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeClient) GetTradingMarkets(ctx context.Context) ([]string, error) {
	f.record("GetTradingMarkets")
	return f.markets, f.err
}

func (f *fakeClient) GetTick(ctx context.Context, pair string) (Tick, error) {
	f.record("GetTick")
	return f.tick, f.err
}

func (f *fakeClient) GetAllBalances(ctx context.Context) ([]CoinBalance, error) {
	f.record("GetAllBalances")
	return f.balances, f.err
}

func (f *fakeClient) GetCoinBalance(ctx context.Context, coin string) (CoinBalance, error) {
	f.record("GetCoinBalance")
	return f.coinBalance, f.err
}

func (f *fakeClient) GetTotalBalance(ctx context.Context, currency string) (TotalBalance, error) {
	f.record("GetTotalBalance")
	return f.totalBalance, f.err
}

func (f *fakeClient) GetUser(ctx context.Context) (UserInfo, error) {
	f.record("GetUser")
	return f.user, f.err
}

func (f *fakeClient) GetOrderBook(ctx context.Context, pair string, limit int) (OrderBook, error) {
	f.record("GetOrderBook")
	f.lastLimit = limit
	return f.orderBook, f.err
}

func (f *fakeClient) GetActiveOrders(ctx context.Context, pair string) (ActiveOrders, error) {
	f.record("GetActiveOrders")
	return f.activeOrders, f.err
}

func (f *fakeClient) CreateOrder(ctx context.Context, pair, side, price, amount string) (string, error) {
	f.record("CreateOrder")
	f.lastCreate.pair = pair
	f.lastCreate.side = side
	f.lastCreate.price = price
	f.lastCreate.amount = amount
	return f.createOrderID, f.err
}

func (f *fakeClient) CancelOrder(ctx context.Context, orderOid, side, pair string) error {
	f.record("CancelOrder")
	f.lastCancel.orderOid = orderOid
	f.lastCancel.side = side
	f.lastCancel.pair = pair
	return f.cancelErr
}

func (f *fakeClient) GetSymbolDealtOrders(ctx context.Context, pair string, page, limit int) ([]dealtOrder, error) {
	f.record("GetSymbolDealtOrders")
	f.lastPage = page
	f.lastLimit = limit
	return f.dealtOrders, f.err
}

func (f *fakeClient) GetRecentOrders(ctx context.Context, pair string, limit int) ([]publicTradeRow, error) {
	f.record("GetRecentOrders")
	f.lastLimit = limit
	return f.recentRows, f.err
}

func sellRow(orderID, price, amount string) orderRow {
	return orderRow{
		raw(`1544564526000`), raw(`"SELL"`), raw(price),
		raw(amount), raw(`0`), raw(fmt.Sprintf("%q", orderID)),
	}
}

func buyRow(orderID, price, amount string) orderRow {
	return orderRow{
		raw(`1544564526000`), raw(`"BUY"`), raw(price),
		raw(amount), raw(`0`), raw(fmt.Sprintf("%q", orderID)),
	}
}

func TestAdapter_GetOrders_SellsFirstSideOrderPreserved(t *testing.T) {
	fake := &fakeClient{
		activeOrders: ActiveOrders{
			Sell: []orderRow{
				sellRow("s1", "26.1", "1"),
				sellRow("s2", "26.2", "2"),
			},
			Buy: []orderRow{
				buyRow("b1", "24.1", "3"),
				buyRow("b2", "24.2", "4"),
				buyRow("b3", "24.3", "5"),
			},
		},
	}
	adapter := NewAdapterWithClient(fake)

	orders, err := adapter.GetOrders(context.Background(), "ETH-DAI")
	if err != nil {
		t.Fatalf("GetOrders error: %v", err)
	}
	if len(orders) != 5 {
		t.Fatalf("got %d orders, want 5", len(orders))
	}

	wantIDs := []string{"s1", "s2", "b1", "b2", "b3"}
	for i, want := range wantIDs {
		if orders[i].OrderID != want {
			t.Errorf("orders[%d].OrderID = %q, want %q", i, orders[i].OrderID, want)
		}
		wantSell := i < 2
		if orders[i].IsSell != wantSell {
			t.Errorf("orders[%d].IsSell = %v, want %v", i, orders[i].IsSell, wantSell)
		}
	}
}

func TestAdapter_GetOrders_EmptyPair(t *testing.T) {
	fake := &fakeClient{}
	adapter := NewAdapterWithClient(fake)

	_, err := adapter.GetOrders(context.Background(), "")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("error = %v, want ErrInvalidArgument", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("remote calls made: %v", fake.calls)
	}
}

func TestAdapter_PlaceOrder_FormatsPerAssetPrecision(t *testing.T) {
	fake := &fakeClient{createOrderID: "5c1366ab335e7e74f25baf5d"}
	adapter := NewAdapterWithClient(fake)

	// Quote asset DAI has 4 places, base asset ETH has 7.
	orderID, err := adapter.PlaceOrder(context.Background(), "ETH-DAI", true,
		dec("80.222222222"), dec("0.12222223545"))
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}
	if orderID != "5c1366ab335e7e74f25baf5d" {
		t.Errorf("orderID = %q", orderID)
	}
	if fake.lastCreate.side != "SELL" {
		t.Errorf("side = %q, want SELL", fake.lastCreate.side)
	}
	if fake.lastCreate.price != "80.2222" {
		t.Errorf("price = %q, want 80.2222", fake.lastCreate.price)
	}
	if fake.lastCreate.amount != "0.1222222" {
		t.Errorf("amount = %q, want 0.1222222", fake.lastCreate.amount)
	}
}

func TestAdapter_PlaceOrder_PadsShortDecimals(t *testing.T) {
	fake := &fakeClient{createOrderID: "oid"}
	adapter := NewAdapterWithClient(fake)

	// USDT quote: 6 places; DAI base: 4 places.
	if _, err := adapter.PlaceOrder(context.Background(), "DAI-USDT", false,
		dec("1"), dec("25")); err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}
	if fake.lastCreate.price != "1.000000" {
		t.Errorf("price = %q, want 1.000000", fake.lastCreate.price)
	}
	if fake.lastCreate.amount != "25.0000" {
		t.Errorf("amount = %q, want 25.0000", fake.lastCreate.amount)
	}
	if fake.lastCreate.side != "BUY" {
		t.Errorf("side = %q, want BUY", fake.lastCreate.side)
	}
}

func TestAdapter_PlaceOrder_UnknownAsset(t *testing.T) {
	fake := &fakeClient{}
	adapter := NewAdapterWithClient(fake)

	_, err := adapter.PlaceOrder(context.Background(), "XYZ-DAI", true, dec("1"), dec("1"))
	if !errors.Is(err, ErrUnknownAsset) {
		t.Fatalf("error = %v, want ErrUnknownAsset", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("remote calls made before precision check: %v", fake.calls)
	}
}

func TestAdapter_PlaceOrder_BadInputs(t *testing.T) {
	adapter := NewAdapterWithClient(&fakeClient{})

	tests := []struct {
		name   string
		pair   string
		price  string
		amount string
	}{
		{"missing delimiter", "ETHDAI", "1", "1"},
		{"empty pair", "", "1", "1"},
		{"empty base", "-DAI", "1", "1"},
		{"negative price", "ETH-DAI", "-1", "1"},
		{"negative amount", "ETH-DAI", "1", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := adapter.PlaceOrder(context.Background(), tt.pair, true,
				dec(tt.price), dec(tt.amount))
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestAdapter_PlaceOrder_RemoteFailure(t *testing.T) {
	fake := &fakeClient{err: errors.New("boom")}
	adapter := NewAdapterWithClient(fake)

	_, err := adapter.PlaceOrder(context.Background(), "ETH-DAI", false, dec("1"), dec("1"))
	if err == nil {
		t.Fatal("expected error from remote failure")
	}
}

func TestAdapter_CancelOrder(t *testing.T) {
	tests := []struct {
		name      string
		cancelErr error
		want      bool
	}{
		{"remote success", nil, true},
		{"remote failure swallowed", errors.New("remote exploded"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeClient{cancelErr: tt.cancelErr}
			adapter := NewAdapterWithClient(fake)

			ok, err := adapter.CancelOrder(context.Background(), "oid-1", true, "ETH-DAI")
			if err != nil {
				t.Fatalf("CancelOrder must not propagate remote errors, got %v", err)
			}
			if ok != tt.want {
				t.Errorf("CancelOrder = %v, want %v", ok, tt.want)
			}
			if fake.lastCancel.side != "SELL" || fake.lastCancel.orderOid != "oid-1" {
				t.Errorf("forwarded cancel = %+v", fake.lastCancel)
			}
		})
	}
}

func TestAdapter_CancelOrder_EmptyArgs(t *testing.T) {
	adapter := NewAdapterWithClient(&fakeClient{})

	if _, err := adapter.CancelOrder(context.Background(), "", true, "ETH-DAI"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty order id: error = %v, want ErrInvalidArgument", err)
	}
	if _, err := adapter.CancelOrder(context.Background(), "oid", true, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty pair: error = %v, want ErrInvalidArgument", err)
	}
}

func TestAdapter_CancelAllOrders_OneSideOnly(t *testing.T) {
	fake := &fakeClient{
		activeOrders: ActiveOrders{
			Sell: []orderRow{sellRow("s1", "26", "1"), sellRow("s2", "27", "1")},
			Buy:  []orderRow{buyRow("b1", "24", "1")},
		},
	}
	adapter := NewAdapterWithClient(fake)

	cancelled, err := adapter.CancelAllOrders(context.Background(), true, "ETH-DAI")
	if err != nil {
		t.Fatalf("CancelAllOrders error: %v", err)
	}
	if cancelled != 2 {
		t.Errorf("cancelled = %d, want 2", cancelled)
	}

	cancels := 0
	for _, call := range fake.calls {
		if call == "CancelOrder" {
			cancels++
		}
	}
	if cancels != 2 {
		t.Errorf("remote cancels = %d, want 2", cancels)
	}
}

func TestAdapter_GetTrades_PageTranslation(t *testing.T) {
	fake := &fakeClient{
		dealtOrders: []dealtOrder{{
			ID:        raw(`12345`),
			OrderOid:  "oid-1",
			CreatedAt: raw(`1544564526000`),
			Direction: "SELL",
			DealPrice: raw(`25.0005`),
			Amount:    raw(`0.0614088`),
		}},
	}
	adapter := NewAdapterWithClient(fake)

	trades, err := adapter.GetTrades(context.Background(), "ETH-DAI", 3)
	if err != nil {
		t.Fatalf("GetTrades error: %v", err)
	}
	if fake.lastPage != 2 {
		t.Errorf("remote page = %d, want 2 (caller page 3, zero-based)", fake.lastPage)
	}
	if fake.lastLimit != 100 {
		t.Errorf("limit = %d, want 100", fake.lastLimit)
	}
	if len(trades) != 1 || trades[0].TradeID != "12345" {
		t.Errorf("trades = %v", trades)
	}
}

func TestAdapter_GetTrades_BadPage(t *testing.T) {
	fake := &fakeClient{}
	adapter := NewAdapterWithClient(fake)

	_, err := adapter.GetTrades(context.Background(), "ETH-DAI", 0)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("error = %v, want ErrInvalidArgument", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("remote calls made: %v", fake.calls)
	}
}

func TestAdapter_GetAllTrades(t *testing.T) {
	fake := &fakeClient{
		recentRows: []publicTradeRow{{
			raw(`1544564526000`), raw(`"SELL"`), raw(`25.0005`),
			raw(`0.0614088`), raw(`1.5352507`), raw(`"5c102f2d335e7e08134edd77"`),
		}},
	}
	adapter := NewAdapterWithClient(fake)

	trades, err := adapter.GetAllTrades(context.Background(), "ETH-DAI", 1)
	if err != nil {
		t.Fatalf("GetAllTrades error: %v", err)
	}
	if fake.lastLimit != 50 {
		t.Errorf("limit = %d, want 50", fake.lastLimit)
	}
	if len(trades) != 1 {
		t.Fatalf("got %d trades, want 1", len(trades))
	}
	want := domain.Trade{
		OrderID:   "5c102f2d335e7e08134edd77",
		Timestamp: 1544564526,
		Pair:      "ETH-DAI",
		IsSell:    true,
		Price:     dec("25.0005"),
		Amount:    dec("0.0614088"),
	}
	if !trades[0].Equal(want) {
		t.Errorf("trade = %s, want %s", trades[0], want)
	}
}

func TestAdapter_GetAllTrades_UnsupportedPage(t *testing.T) {
	fake := &fakeClient{}
	adapter := NewAdapterWithClient(fake)

	_, err := adapter.GetAllTrades(context.Background(), "ETH-DAI", 2)
	if !errors.Is(err, ErrUnsupportedPage) {
		t.Fatalf("error = %v, want ErrUnsupportedPage", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("remote calls made: %v", fake.calls)
	}
}

func TestAdapter_Passthrough_EmptyArgs(t *testing.T) {
	adapter := NewAdapterWithClient(&fakeClient{})
	ctx := context.Background()

	if _, err := adapter.Ticker(ctx, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Ticker: error = %v", err)
	}
	if _, err := adapter.GetBalance(ctx, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("GetBalance: error = %v", err)
	}
	if _, err := adapter.GetFiatBalance(ctx, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("GetFiatBalance: error = %v", err)
	}
	if _, err := adapter.OrderBook(ctx, "", 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("OrderBook: error = %v", err)
	}
}

func TestNewAdapter_Validation(t *testing.T) {
	tests := []struct {
		name                      string
		server, apiKey, secretKey string
	}{
		{"empty server", "", "k", "s"},
		{"empty api key", "https://api.kucoin.com", "", "s"},
		{"empty secret", "https://api.kucoin.com", "k", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAdapter(tt.server, tt.apiKey, tt.secretKey, 0); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}
