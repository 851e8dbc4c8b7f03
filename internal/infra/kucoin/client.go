package kucoin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/deepinit-arek/pyexchange/internal/infra"
)

// Client is the raw KuCoin v1 API surface the adapter builds on. It deals in
// wire shapes only; all domain mapping happens above it. Implementations own
// transport, authentication and rate limiting.
type Client interface {
	GetTradingMarkets(ctx context.Context) ([]string, error)
	GetTick(ctx context.Context, pair string) (Tick, error)
	GetAllBalances(ctx context.Context) ([]CoinBalance, error)
	GetCoinBalance(ctx context.Context, coin string) (CoinBalance, error)
	GetTotalBalance(ctx context.Context, currency string) (TotalBalance, error)
	GetUser(ctx context.Context) (UserInfo, error)
	GetOrderBook(ctx context.Context, pair string, limit int) (OrderBook, error)
	GetActiveOrders(ctx context.Context, pair string) (ActiveOrders, error)
	CreateOrder(ctx context.Context, pair, side, price, amount string) (string, error)
	CancelOrder(ctx context.Context, orderOid, side, pair string) error
	GetSymbolDealtOrders(ctx context.Context, pair string, page, limit int) ([]dealtOrder, error)
	GetRecentOrders(ctx context.Context, pair string, limit int) ([]publicTradeRow, error)
}

// restClient talks to the real exchange. One shared token bucket gates every
// request; KuCoin bans IPs that burst past its account limits.
type restClient struct {
	http    *resty.Client
	signer  *Signer
	limiter *infra.RateLimiter
}

func newRESTClient(apiServer, apiKey, secretKey string, timeout time.Duration) *restClient {
	return &restClient{
		http: resty.New().
			SetBaseURL(apiServer).
			SetTimeout(timeout),
		signer:  NewSigner(apiKey, secretKey),
		limiter: infra.NewKucoinRateLimiter(),
	}
}

// do performs one request/response cycle: rate limit, sign when needed,
// check the HTTP status and the envelope, then decode the data payload.
func (c *restClient) do(ctx context.Context, method, endpoint string, params url.Values, signed bool, out any) error {
	c.limiter.Wait()

	var env apiEnvelope
	req := c.http.R().
		SetContext(ctx).
		SetResult(&env).
		SetError(&env)

	query := params.Encode() // Encode sorts by key, which the signature requires
	if query != "" {
		req.SetQueryString(query)
	}
	if signed {
		req.SetHeaders(c.signer.GenerateHeaders(endpoint, query, nextNonce()))
	}

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		return fmt.Errorf("kucoin %s %s: %w", method, endpoint, err)
	}
	if resp.IsError() {
		return fmt.Errorf("kucoin %s %s: status %d: %s", method, endpoint, resp.StatusCode(), resp.Body())
	}
	if !env.Success {
		return fmt.Errorf("kucoin %s %s: api error %s: %s", method, endpoint, env.Code, env.Msg)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("kucoin %s %s: decode data: %w", method, endpoint, err)
		}
	}
	return nil
}

func (c *restClient) GetTradingMarkets(ctx context.Context) ([]string, error) {
	var markets []string
	err := c.do(ctx, resty.MethodGet, "/v1/open/markets", nil, false, &markets)
	return markets, err
}

func (c *restClient) GetTick(ctx context.Context, pair string) (Tick, error) {
	params := url.Values{"symbol": {pair}}
	var tick Tick
	err := c.do(ctx, resty.MethodGet, "/v1/open/tick", params, false, &tick)
	return tick, err
}

func (c *restClient) GetAllBalances(ctx context.Context) ([]CoinBalance, error) {
	var balances []CoinBalance
	err := c.do(ctx, resty.MethodGet, "/v1/account/balance", nil, true, &balances)
	return balances, err
}

func (c *restClient) GetCoinBalance(ctx context.Context, coin string) (CoinBalance, error) {
	var balance CoinBalance
	endpoint := fmt.Sprintf("/v1/account/%s/balance", coin)
	err := c.do(ctx, resty.MethodGet, endpoint, nil, true, &balance)
	return balance, err
}

func (c *restClient) GetTotalBalance(ctx context.Context, currency string) (TotalBalance, error) {
	params := url.Values{"currency": {currency}}
	var total TotalBalance
	err := c.do(ctx, resty.MethodGet, "/v1/account/total-balance", params, true, &total)
	return total, err
}

func (c *restClient) GetUser(ctx context.Context) (UserInfo, error) {
	var user UserInfo
	err := c.do(ctx, resty.MethodGet, "/v1/user/info", nil, true, &user)
	return user, err
}

func (c *restClient) GetOrderBook(ctx context.Context, pair string, limit int) (OrderBook, error) {
	params := url.Values{"symbol": {pair}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var book OrderBook
	err := c.do(ctx, resty.MethodGet, "/v1/open/orders", params, false, &book)
	return book, err
}

func (c *restClient) GetActiveOrders(ctx context.Context, pair string) (ActiveOrders, error) {
	params := url.Values{"symbol": {pair}}
	var orders ActiveOrders
	err := c.do(ctx, resty.MethodGet, "/v1/order/active", params, true, &orders)
	return orders, err
}

func (c *restClient) CreateOrder(ctx context.Context, pair, side, price, amount string) (string, error) {
	params := url.Values{
		"symbol": {pair},
		"type":   {side},
		"price":  {price},
		"amount": {amount},
	}
	var result struct {
		OrderOid string `json:"orderOid"`
	}
	if err := c.do(ctx, resty.MethodPost, "/v1/order", params, true, &result); err != nil {
		return "", err
	}
	return result.OrderOid, nil
}

func (c *restClient) CancelOrder(ctx context.Context, orderOid, side, pair string) error {
	params := url.Values{
		"symbol":   {pair},
		"orderOid": {orderOid},
		"type":     {side},
	}
	return c.do(ctx, resty.MethodPost, "/v1/cancel-order", params, true, nil)
}

func (c *restClient) GetSymbolDealtOrders(ctx context.Context, pair string, page, limit int) ([]dealtOrder, error) {
	params := url.Values{
		"symbol": {pair},
		"page":   {strconv.Itoa(page)},
		"limit":  {strconv.Itoa(limit)},
	}
	var result dealtOrdersPage
	if err := c.do(ctx, resty.MethodGet, "/v1/deal-orders", params, true, &result); err != nil {
		return nil, err
	}
	return result.Datas, nil
}

func (c *restClient) GetRecentOrders(ctx context.Context, pair string, limit int) ([]publicTradeRow, error) {
	params := url.Values{
		"symbol": {pair},
		"limit":  {strconv.Itoa(limit)},
	}
	var rows []publicTradeRow
	err := c.do(ctx, resty.MethodGet, "/v1/open/deal-orders", params, false, &rows)
	return rows, err
}
