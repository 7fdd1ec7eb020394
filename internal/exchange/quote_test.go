package exchange

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CryptoTracker/internal/model"
)

type fakeAPI struct {
	mu        sync.Mutex
	min       decimal.Decimal
	rate      decimal.Decimal
	rangeErr  error
	minErr    error
	estimated []decimal.Decimal
}

func (f *fakeAPI) MinAmount(_ context.Context, _, _ string) (decimal.Decimal, error) {
	return f.min, f.minErr
}

func (f *fakeAPI) EstimateAmount(_ context.Context, amount decimal.Decimal, _, _ string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.estimated = append(f.estimated, amount)
	return amount.Mul(f.rate), nil
}

func (f *fakeAPI) Range(_ context.Context, _, _ string) (Range, error) {
	if f.rangeErr != nil {
		return Range{}, f.rangeErr
	}
	return Range{Min: f.min, Max: decimal.NewNullDecimal(decimal.NewFromInt(50))}, nil
}

var (
	btc  = model.Coin{ID: "bitcoin", Symbol: "BTC", ExchangeTicker: "btc"}
	eth  = model.Coin{ID: "ethereum", Symbol: "ETH", ExchangeTicker: "eth"}
	shib = model.Coin{ID: "shiba-inu", Symbol: "SHIB", ExchangeTicker: "shib"}
	nope = model.Coin{ID: "nowhere", Symbol: "NOPE"}
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestQuote_DefaultAmountIsAtLeastOne(t *testing.T) {
	api := &fakeAPI{min: d("0.0004"), rate: d("16.5")}
	q, err := NewQuoter(api).Quote(context.Background(), btc, eth, decimal.NullDecimal{})
	require.NoError(t, err)

	assert.Equal(t, "BTC", q.From)
	assert.Equal(t, "ETH", q.To)
	assert.True(t, q.Amount.Equal(d("1")))
	assert.True(t, q.EstimatedAmount.Equal(d("16.5")))
	assert.True(t, q.Rate.Equal(d("16.5")))
	assert.False(t, q.CustomAmount)
	assert.Equal(t, "Variable", q.NetworkFee)
	assert.Equal(t, "Included in rate", q.ServiceFee)
	assert.True(t, q.RangeMax.Valid)
}

func TestQuote_DefaultAmountUsesLargeMinimum(t *testing.T) {
	api := &fakeAPI{min: d("250000"), rate: d("0.00000001")}
	q, err := NewQuoter(api).Quote(context.Background(), shib, btc, decimal.NullDecimal{})
	require.NoError(t, err)
	assert.True(t, q.Amount.Equal(d("250000")))
	assert.True(t, q.Rate.Equal(d("0.00000001")))
}

func TestQuote_CustomAmount(t *testing.T) {
	api := &fakeAPI{min: d("0.0004"), rate: d("16")}
	q, err := NewQuoter(api).Quote(context.Background(), btc, eth, decimal.NewNullDecimal(d("0.5")))
	require.NoError(t, err)
	assert.True(t, q.CustomAmount)
	assert.True(t, q.Amount.Equal(d("0.5")))
	assert.True(t, q.EstimatedAmount.Equal(d("8")))
	assert.True(t, q.Rate.Equal(d("16")))
}

func TestQuote_Rejections(t *testing.T) {
	api := &fakeAPI{min: d("0.01"), rate: d("16")}
	quoter := NewQuoter(api)
	ctx := context.Background()

	_, err := quoter.Quote(ctx, btc, btc, decimal.NullDecimal{})
	assert.ErrorIs(t, err, ErrSameCurrency)

	_, err = quoter.Quote(ctx, btc, nope, decimal.NullDecimal{})
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = quoter.Quote(ctx, btc, eth, decimal.NewNullDecimal(decimal.Zero))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = quoter.Quote(ctx, btc, eth, decimal.NewNullDecimal(d("0.001")))
	assert.ErrorIs(t, err, ErrBelowMinimum)
	assert.ErrorContains(t, err, "amount is below minimum (0.01 BTC)")

	assert.Empty(t, api.estimated)
}

func TestQuote_RangeFailureIsNotFatal(t *testing.T) {
	api := &fakeAPI{min: d("0.5"), rate: d("2"), rangeErr: errors.New("range down")}
	q, err := NewQuoter(api).Quote(context.Background(), btc, eth, decimal.NullDecimal{})
	require.NoError(t, err)
	assert.False(t, q.RangeMin.Valid)
	assert.False(t, q.RangeMax.Valid)
}

func TestQuote_MinAmountFailureIsFatal(t *testing.T) {
	api := &fakeAPI{minErr: errors.New("pair disabled")}
	_, err := NewQuoter(api).Quote(context.Background(), btc, eth, decimal.NullDecimal{})
	assert.ErrorContains(t, err, "pair disabled")
}
