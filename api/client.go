package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UnknownSymbol marks a quote that could not be fetched.
const UnknownSymbol = "N/A"

// Quote holds the price data shown for one token.
type Quote struct {
	Symbol    string
	Price     decimal.Decimal
	Change24h decimal.Decimal
}

// Fallback is the quote displayed whenever the price source fails.
func Fallback() Quote {
	return Quote{Symbol: UnknownSymbol, Price: decimal.Zero, Change24h: decimal.Zero}
}

// IsFallback reports whether q is the placeholder returned on failure.
func (q Quote) IsFallback() bool {
	return q.Symbol == UnknownSymbol
}

// Rising reports whether the 24h change is zero or positive.
func (q Quote) Rising() bool {
	return !q.Change24h.IsNegative()
}

// tickerResponse is the subset of Binance's /api/v3/ticker/24hr payload we read.
type tickerResponse struct {
	Symbol             string           `json:"symbol"`
	LastPrice          *decimal.Decimal `json:"lastPrice"`
	PriceChangePercent *decimal.Decimal `json:"priceChangePercent"`
}

// errorResponse is what Binance sends with a non-200 status.
type errorResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// Client fetches 24h ticker statistics for a token against a fixed quote currency.
type Client struct {
	baseURL       string
	quoteCurrency string
	httpClient    *http.Client
	logger        *zap.Logger
}

func NewClient(baseURL, quoteCurrency string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:       baseURL,
		quoteCurrency: strings.ToUpper(quoteCurrency),
		httpClient:    &http.Client{Timeout: timeout},
		logger:        logger.Named("binance"),
	}
}

// Quote returns the current quote for symbol (e.g. "btc"). Any failure is
// logged and turned into Fallback(); it never returns an error.
func (c *Client) Quote(ctx context.Context, symbol string) Quote {
	q, err := c.fetch(ctx, symbol)
	if err != nil {
		c.logger.Warn("Error fetching quote", zap.String("symbol", symbol), zap.Error(err))
		return Fallback()
	}
	c.logger.Debug("Quote updated",
		zap.String("symbol", q.Symbol),
		zap.Stringer("price", q.Price),
		zap.Stringer("change24h", q.Change24h))
	return q
}

func (c *Client) pair(symbol string) string {
	return strings.ToUpper(symbol) + c.quoteCurrency
}

func (c *Client) fetch(ctx context.Context, symbol string) (Quote, error) {
	if symbol == "" {
		return Quote{}, errors.New("empty symbol")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return Quote{}, fmt.Errorf("bad api url: %w", err)
	}
	q := u.Query()
	q.Set("symbol", c.pair(symbol))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Quote{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Quote{}, fmt.Errorf("cannot read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Msg != "" {
			return Quote{}, fmt.Errorf("API error %d: %s (code %d)", resp.StatusCode, apiErr.Msg, apiErr.Code)
		}
		return Quote{}, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var ticker tickerResponse
	if err := json.Unmarshal(body, &ticker); err != nil {
		return Quote{}, fmt.Errorf("cannot parse response: %w", err)
	}
	if ticker.LastPrice == nil {
		return Quote{}, errors.New("no lastPrice in response")
	}
	if ticker.PriceChangePercent == nil {
		return Quote{}, errors.New("no priceChangePercent in response")
	}

	return Quote{
		Symbol:    strings.ToUpper(symbol),
		Price:     *ticker.LastPrice,
		Change24h: *ticker.PriceChangePercent,
	}, nil
}
