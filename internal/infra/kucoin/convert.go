package kucoin

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/deepinit-arek/pyexchange/internal/domain"
)

// The exchange mixes keyed records and positional rows for the same data,
// and numeric cells arrive either as JSON numbers or as quoted strings.
// Each payload shape gets its own named conversion function; the raw-cell
// helpers below absorb the number/string variance.

// rawString decodes a raw cell into its text content: quoted strings are
// unquoted, everything else is taken verbatim.
func rawString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("malformed string cell %s: %w", raw, err)
		}
		return s, nil
	}
	return string(raw), nil
}

// rawDecimal decodes a raw cell into a non-negative exact decimal.
func rawDecimal(raw json.RawMessage) (decimal.Decimal, error) {
	s, err := rawString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed numeric cell %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative value %s not allowed", d)
	}
	return d, nil
}

// rawUnixSeconds decodes a millisecond timestamp cell, truncating to seconds.
// Scientific-notation stamps (1.544564526e12) are handled by going through
// decimal rather than strconv.
func rawUnixSeconds(raw json.RawMessage) (int64, error) {
	s, err := rawString(raw)
	if err != nil {
		return 0, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp cell %q: %w", s, err)
	}
	return d.IntPart() / 1000, nil
}

// orderFromRow maps one positional active-order row to an Order. The side is
// not part of the row; it comes from which list the row was found in.
func orderFromRow(row orderRow, pair string, isSell bool) (domain.Order, error) {
	if len(row) < 6 {
		return domain.Order{}, fmt.Errorf("active order row has %d cells, want 6", len(row))
	}

	price, err := rawDecimal(row[2])
	if err != nil {
		return domain.Order{}, fmt.Errorf("order price: %w", err)
	}
	amount, err := rawDecimal(row[3])
	if err != nil {
		return domain.Order{}, fmt.Errorf("order amount: %w", err)
	}
	orderID, err := rawString(row[5])
	if err != nil {
		return domain.Order{}, fmt.Errorf("order id: %w", err)
	}

	return domain.Order{
		OrderID: orderID,
		Pair:    pair,
		IsSell:  isSell,
		Price:   price,
		Amount:  amount,
	}, nil
}

// tradeFromRecord maps one keyed account-history record to a Trade.
func tradeFromRecord(pair string, rec dealtOrder) (domain.Trade, error) {
	tradeID, err := rawString(rec.ID)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("trade id: %w", err)
	}
	timestamp, err := rawUnixSeconds(rec.CreatedAt)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("trade createdAt: %w", err)
	}
	price, err := rawDecimal(rec.DealPrice)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("trade dealPrice: %w", err)
	}
	amount, err := rawDecimal(rec.Amount)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("trade amount: %w", err)
	}

	return domain.Trade{
		TradeID:   tradeID,
		OrderID:   rec.OrderOid,
		Timestamp: timestamp,
		Pair:      pair,
		IsSell:    rec.Direction == "SELL",
		Price:     price,
		Amount:    amount,
	}, nil
}

// tradeFromRow maps one positional public-trade row to a Trade. The public
// feed carries no trade id, so TradeID stays empty; otherwise the result is
// field-equivalent to what tradeFromRecord yields for the same fill.
func tradeFromRow(pair string, row publicTradeRow) (domain.Trade, error) {
	if len(row) < 6 {
		return domain.Trade{}, fmt.Errorf("public trade row has %d cells, want 6", len(row))
	}

	timestamp, err := rawUnixSeconds(row[0])
	if err != nil {
		return domain.Trade{}, fmt.Errorf("trade timestamp: %w", err)
	}
	direction, err := rawString(row[1])
	if err != nil {
		return domain.Trade{}, fmt.Errorf("trade direction: %w", err)
	}
	price, err := rawDecimal(row[2])
	if err != nil {
		return domain.Trade{}, fmt.Errorf("trade price: %w", err)
	}
	amount, err := rawDecimal(row[3])
	if err != nil {
		return domain.Trade{}, fmt.Errorf("trade amount: %w", err)
	}
	orderID, err := rawString(row[5])
	if err != nil {
		return domain.Trade{}, fmt.Errorf("trade order id: %w", err)
	}

	return domain.Trade{
		OrderID:   orderID,
		Timestamp: timestamp,
		Pair:      pair,
		IsSell:    direction == "SELL",
		Price:     price,
		Amount:    amount,
	}, nil
}
