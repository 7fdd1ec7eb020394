package model

import "github.com/shopspring/decimal"

// ExchangeQuote is an estimated conversion between two coins.
type ExchangeQuote struct {
	From            string
	To              string
	MinAmount       decimal.Decimal
	Amount          decimal.Decimal
	EstimatedAmount decimal.Decimal
	Rate            decimal.Decimal
	RangeMin        decimal.NullDecimal
	RangeMax        decimal.NullDecimal
	CustomAmount    bool
	NetworkFee      string
	ServiceFee      string
}
