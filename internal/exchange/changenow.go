package exchange

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"CryptoTracker/internal/platform/httpx"
)

const DefaultChangeNOWURL = "https://api.changenow.io/v1"

// Range is the amount window ChangeNOW accepts for a pair. Max is unset when
// there is no upper limit.
type Range struct {
	Min decimal.Decimal
	Max decimal.NullDecimal
}

// Client talks to the ChangeNOW v1 public API.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *httpx.Client
}

// NewClient creates a ChangeNOW client with optional proxy support.
func NewClient(baseURL, apiKey, proxyURL string, requestsPerMinute int) *Client {
	if baseURL == "" {
		baseURL = DefaultChangeNOWURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP: httpx.NewClient(httpx.Options{
			Name:              "changenow",
			Timeout:           10 * time.Second,
			RequestsPerMinute: requestsPerMinute,
			Proxy:             proxyURL,
		}),
	}
}

func (c *Client) endpoint(path string) string {
	u := c.BaseURL + path
	if c.APIKey != "" {
		u += "?api_key=" + url.QueryEscape(c.APIKey)
	}
	return u
}

func pair(from, to string) string {
	return url.PathEscape(strings.ToLower(from) + "_" + strings.ToLower(to))
}

// MinAmount returns the smallest amount of from that can be exchanged to to.
func (c *Client) MinAmount(ctx context.Context, from, to string) (decimal.Decimal, error) {
	var resp struct {
		MinAmount decimal.Decimal `json:"minAmount"`
	}
	if err := c.HTTP.GetJSON(ctx, c.endpoint("/min-amount/"+pair(from, to)), &resp); err != nil {
		return decimal.Zero, errors.Wrap(err, "changenow min amount")
	}
	return resp.MinAmount, nil
}

// EstimateAmount returns how much of to is received for amount of from.
func (c *Client) EstimateAmount(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	path := fmt.Sprintf("/exchange-amount/%s/%s", amount.String(), pair(from, to))
	var resp struct {
		EstimatedAmount decimal.Decimal `json:"estimatedAmount"`
	}
	if err := c.HTTP.GetJSON(ctx, c.endpoint(path), &resp); err != nil {
		return decimal.Zero, errors.Wrap(err, "changenow exchange amount")
	}
	return resp.EstimatedAmount, nil
}

// Range returns the accepted amount window for the pair.
func (c *Client) Range(ctx context.Context, from, to string) (Range, error) {
	var resp struct {
		MinAmount decimal.Decimal     `json:"minAmount"`
		MaxAmount decimal.NullDecimal `json:"maxAmount"`
	}
	if err := c.HTTP.GetJSON(ctx, c.endpoint("/exchange-range/"+pair(from, to)), &resp); err != nil {
		return Range{}, errors.Wrap(err, "changenow exchange range")
	}
	return Range{Min: resp.MinAmount, Max: resp.MaxAmount}, nil
}
