package kucoin

import "encoding/json"

// apiEnvelope is the wrapper KuCoin v1 puts around every payload.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
}

// Tick is a single-pair ticker snapshot, passed through untouched.
type Tick struct {
	Symbol        string      `json:"symbol"`
	Buy           json.Number `json:"buy"`
	Sell          json.Number `json:"sell"`
	LastDealPrice json.Number `json:"lastDealPrice"`
	High          json.Number `json:"high"`
	Low           json.Number `json:"low"`
	Vol           json.Number `json:"vol"`
	VolValue      json.Number `json:"volValue"`
	ChangeRate    json.Number `json:"changeRate"`
	Datetime      int64       `json:"datetime"`
}

// CoinBalance is the per-asset account balance.
type CoinBalance struct {
	CoinType      string      `json:"coinType"`
	Balance       json.Number `json:"balance"`
	FreezeBalance json.Number `json:"freezeBalance"`
}

// TotalBalance is the account value expressed in one fiat currency.
type TotalBalance struct {
	Currency     string      `json:"currency"`
	TotalBalance json.Number `json:"totalBalance"`
}

// UserInfo is the account profile, passed through untouched.
type UserInfo struct {
	OID      string `json:"oid"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Language string `json:"language"`
	Currency string `json:"currency"`
}

// OrderBook is a depth snapshot: rows of [price, amount, volume].
type OrderBook struct {
	Sell [][]json.Number `json:"SELL"`
	Buy  [][]json.Number `json:"BUY"`
}

// orderRow is one positional active-order entry. Field types vary between
// numbers and strings on the wire, so cells stay raw until conversion:
// [timestamp, type, price, amount, dealAmount, orderOid].
type orderRow []json.RawMessage

// ActiveOrders groups the open orders of a pair by side.
type ActiveOrders struct {
	Sell []orderRow `json:"SELL"`
	Buy  []orderRow `json:"BUY"`
}

// dealtOrder is one keyed record from the account trade history.
// ID arrives as an integer, createdAt as milliseconds, and the numeric
// fields as either numbers or strings.
type dealtOrder struct {
	ID        json.RawMessage `json:"id"`
	OrderOid  string          `json:"orderOid"`
	CreatedAt json.RawMessage `json:"createdAt"`
	Direction string          `json:"direction"`
	DealPrice json.RawMessage `json:"dealPrice"`
	Amount    json.RawMessage `json:"amount"`
}

// dealtOrdersPage is the paged container for dealtOrder records.
type dealtOrdersPage struct {
	Datas []dealtOrder `json:"datas"`
	Total int          `json:"total"`
	Limit int          `json:"limit"`
	Page  int          `json:"currPage"`
}

// publicTradeRow is one positional public-trade entry:
// [timestamp_ms, direction, price, amount, volume, orderOid].
type publicTradeRow []json.RawMessage
