package cmc

// Wire types for the CoinMarketCap Pro v1 API. Monetary and percentage
// fields are pointers so an omitted value survives as nil instead of zero.

type listingsResponse struct {
	Status statusObject `json:"status"`
	Data   []listing    `json:"data"`
}

type quotesResponse struct {
	Status statusObject `json:"status"`
	Data   map[string]listing `json:"data"`
}

type statusObject struct {
	Timestamp    string `json:"timestamp"`
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	CreditCount  int    `json:"credit_count"`
}

type listing struct {
	ID          int                   `json:"id"`
	Name        string                `json:"name"`
	Symbol      string                `json:"symbol"`
	Slug        string                `json:"slug"`
	CMCRank     *int                  `json:"cmc_rank"`
	LastUpdated string                `json:"last_updated"`
	Quote       map[string]quoteEntry `json:"quote"`
}

type quoteEntry struct {
	Price            *float64 `json:"price"`
	Volume24h        *float64 `json:"volume_24h"`
	PercentChange24h *float64 `json:"percent_change_24h"`
	PercentChange7d  *float64 `json:"percent_change_7d"`
	MarketCap        *float64 `json:"market_cap"`
	LastUpdated      string   `json:"last_updated"`
}
