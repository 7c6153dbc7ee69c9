// Package cmc is the CoinMarketCap Pro API client. It performs exactly one
// request per call: no retries, no backoff, no pagination beyond the limit
// parameter.
package cmc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jerripat/CoinMarketCap/internal/config"
	"github.com/jerripat/CoinMarketCap/internal/market"
)

const (
	listingsPath = "/v1/cryptocurrency/listings/latest"
	quotesPath   = "/v1/cryptocurrency/quotes/latest"
)

// ErrSymbolNotFound is returned by Quote when the requested ticker is
// absent from the response map.
var ErrSymbolNotFound = errors.New("symbol not found in API response")

// APIError is a non-2xx response, carrying the status and raw body so the
// caller can surface exactly what the API said.
type APIError struct {
	Code   int
	Status string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s - %s", e.Status, e.Body)
}

// Client talks to one CoinMarketCap endpoint with a fixed reference
// currency and request timeout.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	convert string
}

func New(cfg *config.Config) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		convert: cfg.Convert,
	}
}

// Listings fetches the top coins ordered by rank, starting at 1.
// limit must be positive; user-supplied text is the caller's problem.
func (c *Client) Listings(ctx context.Context, limit int) ([]market.CoinRecord, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be a positive integer, got %d", limit)
	}

	query := url.Values{
		"start":   {"1"},
		"limit":   {strconv.Itoa(limit)},
		"convert": {c.convert},
	}

	var payload listingsResponse
	if err := c.getJSON(ctx, listingsPath, query, &payload); err != nil {
		return nil, err
	}

	records := make([]market.CoinRecord, 0, len(payload.Data))
	for _, l := range payload.Data {
		records = append(records, l.toRecord(c.convert))
	}
	return records, nil
}

// Quote fetches the latest quote for a single ticker symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (market.CoinRecord, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	query := url.Values{
		"symbol":  {symbol},
		"convert": {c.convert},
	}

	var payload quotesResponse
	if err := c.getJSON(ctx, quotesPath, query, &payload); err != nil {
		return market.CoinRecord{}, err
	}

	l, ok := payload.Data[symbol]
	if !ok {
		return market.CoinRecord{}, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
	return l.toRecord(c.convert), nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request [%s]: %w", path, err)
	}
	req.Header.Set("Accepts", "application/json")
	req.Header.Set("X-CMC_PRO_API_KEY", c.apiKey)

	logrus.Debugf("GET %s", reqURL)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed [%s]: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("body read error [%s]: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Code: resp.StatusCode, Status: resp.Status, Body: strings.TrimSpace(string(body))}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("JSON parse error [%s]: %w", path, err)
	}
	return nil
}

// toRecord flattens one listing and its quote in the reference currency.
// The record's timestamp prefers the quote's last_updated and falls back
// to the listing's.
func (l listing) toRecord(convert string) market.CoinRecord {
	q := l.Quote[convert]

	updated := q.LastUpdated
	if updated == "" {
		updated = l.LastUpdated
	}

	return market.CoinRecord{
		Rank:         l.CMCRank,
		Symbol:       l.Symbol,
		Name:         l.Name,
		PriceUSD:     q.Price,
		PctChange24h: q.PercentChange24h,
		PctChange7d:  q.PercentChange7d,
		MarketCapUSD: q.MarketCap,
		Volume24hUSD: q.Volume24h,
		LastUpdated:  updated,
	}
}
