package exchange

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"CryptoTracker/internal/model"
)

var (
	ErrSameCurrency  = errors.New("please select different currencies")
	ErrUnsupported   = errors.New("currency not supported by ChangeNOW")
	ErrInvalidAmount = errors.New("amount must be greater than 0")
	ErrBelowMinimum  = errors.New("amount is below minimum")
)

// API is the subset of the ChangeNOW client the Quoter needs.
type API interface {
	MinAmount(ctx context.Context, from, to string) (decimal.Decimal, error)
	EstimateAmount(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
	Range(ctx context.Context, from, to string) (Range, error)
}

// Quoter builds exchange quotes between tracked coins.
type Quoter struct {
	API    API
	logger zerolog.Logger
}

// NewQuoter creates a Quoter.
func NewQuoter(api API) *Quoter {
	return &Quoter{API: api, logger: log.With().Str("component", "quoter").Logger()}
}

// Quote estimates converting from into to. Without a custom amount the
// quote is for max(minimum, 1) units of from.
func (q *Quoter) Quote(ctx context.Context, from, to model.Coin, custom decimal.NullDecimal) (*model.ExchangeQuote, error) {
	if from.ID == to.ID {
		return nil, ErrSameCurrency
	}
	if from.ExchangeTicker == "" || to.ExchangeTicker == "" {
		return nil, ErrUnsupported
	}
	if custom.Valid && !custom.Decimal.IsPositive() {
		return nil, ErrInvalidAmount
	}
	fromT, toT := from.ExchangeTicker, to.ExchangeTicker

	var (
		minAmount decimal.Decimal
		rng       Range
		rngOK     bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		minAmount, err = q.API.MinAmount(gctx, fromT, toT)
		return err
	})
	g.Go(func() error {
		r, err := q.API.Range(gctx, fromT, toT)
		if err != nil {
			q.logger.Warn().Err(err).Str("pair", fromT+"_"+toT).Msg("exchange range unavailable")
			return nil
		}
		rng, rngOK = r, true
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	amount := decimal.Max(minAmount, decimal.NewFromInt(1))
	if custom.Valid {
		if custom.Decimal.LessThan(minAmount) {
			return nil, fmt.Errorf("%w (%s %s)", ErrBelowMinimum, minAmount.String(), strings.ToUpper(fromT))
		}
		amount = custom.Decimal
	}

	estimated, err := q.API.EstimateAmount(ctx, amount, fromT, toT)
	if err != nil {
		return nil, err
	}

	quote := &model.ExchangeQuote{
		From:            strings.ToUpper(fromT),
		To:              strings.ToUpper(toT),
		MinAmount:       minAmount,
		Amount:          amount,
		EstimatedAmount: estimated,
		Rate:            estimated.DivRound(amount, 16),
		CustomAmount:    custom.Valid,
		NetworkFee:      "Variable",
		ServiceFee:      "Included in rate",
	}
	if rngOK {
		quote.RangeMin = decimal.NewNullDecimal(rng.Min)
		quote.RangeMax = rng.Max
	}
	q.logger.Info().Str("from", quote.From).Str("to", quote.To).Str("amount", amount.String()).
		Str("estimated", estimated.String()).Msg("quote ready")
	return quote, nil
}
