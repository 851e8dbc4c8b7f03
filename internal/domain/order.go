package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Order is an exchange-assigned active order.
// All monetary values are exact decimals; float64 is never used for money.
type Order struct {
	OrderID string
	Pair    string // e.g. "ETH-DAI"
	IsSell  bool
	Price   decimal.Decimal
	Amount  decimal.Decimal
}

// SellToBuyPrice returns the order price seen from the sell side.
func (o Order) SellToBuyPrice() decimal.Decimal {
	return o.Price
}

// BuyToSellPrice returns the order price seen from the buy side.
func (o Order) BuyToSellPrice() decimal.Decimal {
	return o.Price
}

// RemainingBuyAmount is how much of the buy asset the order still stands to
// receive: amount*price for a sell, the amount itself for a buy.
func (o Order) RemainingBuyAmount() decimal.Decimal {
	if o.IsSell {
		return o.Amount.Mul(o.Price)
	}
	return o.Amount
}

// RemainingSellAmount is how much of the sell asset the order still has on
// the book: the amount itself for a sell, amount*price for a buy.
func (o Order) RemainingSellAmount() decimal.Decimal {
	if o.IsSell {
		return o.Amount
	}
	return o.Amount.Mul(o.Price)
}

func (o Order) String() string {
	return fmt.Sprintf("Order{id=%s pair=%s side=%s price=%s amount=%s}",
		o.OrderID, o.Pair, SideName(o.IsSell), o.Price.String(), o.Amount.String())
}

// SideName renders a sell flag the way the exchange spells it.
func SideName(isSell bool) string {
	if isSell {
		return "SELL"
	}
	return "BUY"
}
