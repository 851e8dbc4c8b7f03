package kucoin

import "errors"

// Contract violations are reported synchronously, before any remote call.
var (
	// ErrInvalidArgument is returned for empty or ill-shaped caller input.
	ErrInvalidArgument = errors.New("kucoin: invalid argument")

	// ErrUnknownAsset is returned by PlaceOrder when an asset has no
	// configured order precision.
	ErrUnknownAsset = errors.New("kucoin: no configured precision for asset")

	// ErrUnsupportedPage is returned by GetAllTrades for any page other
	// than the first; the public trade endpoint is not paged.
	ErrUnsupportedPage = errors.New("kucoin: only page 1 is supported")
)
