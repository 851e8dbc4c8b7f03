package domain

import (
	"fmt"
	"hash/fnv"

	"github.com/shopspring/decimal"
)

// Trade is a single historical fill. TradeID and OrderID may be empty
// depending on the endpoint that produced the record: the public trade feed
// carries no trade id, some private feeds carry no order id.
type Trade struct {
	TradeID   string
	OrderID   string
	Timestamp int64 // epoch seconds, truncated from the exchange millisecond stamp
	Pair      string
	IsSell    bool
	Price     decimal.Decimal
	Amount    decimal.Decimal
}

// Equal reports value equality over all fields. Decimals compare by value,
// so 1.50 equals 1.5.
func (t Trade) Equal(other Trade) bool {
	return t.TradeID == other.TradeID &&
		t.OrderID == other.OrderID &&
		t.Timestamp == other.Timestamp &&
		t.Pair == other.Pair &&
		t.IsSell == other.IsSell &&
		t.Price.Equal(other.Price) &&
		t.Amount.Equal(other.Amount)
}

// Hash returns a stable FNV-1a hash over a canonical encoding of all fields.
// Trades that are Equal hash identically; use it when a Trade has to act as
// a map key, since decimal fields make the struct itself non-comparable.
func (t Trade) Hash() uint64 {
	h := fnv.New64a()
	// Decimal.String trims trailing zeros, so 1.50 and 1.5 encode the same.
	fmt.Fprintf(h, "%s|%s|%d|%s|%t|%s|%s",
		t.TradeID, t.OrderID, t.Timestamp, t.Pair, t.IsSell,
		t.Price.String(), t.Amount.String())
	return h.Sum64()
}

func (t Trade) String() string {
	return fmt.Sprintf("Trade{id=%s order=%s ts=%d pair=%s side=%s price=%s amount=%s}",
		t.TradeID, t.OrderID, t.Timestamp, t.Pair, SideName(t.IsSell),
		t.Price.String(), t.Amount.String())
}
