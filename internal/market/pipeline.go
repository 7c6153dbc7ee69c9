package market

import (
	"cmp"
	"slices"
	"strings"
)

// SortKey selects the CoinRecord field the table is ordered by.
type SortKey int

const (
	SortByRank SortKey = iota
	SortBySymbol
	SortByName
	SortByPrice
	SortByPct24h
	SortByPct7d
	SortByMarketCap
	SortByVolume
	SortByUpdated
)

// Apply filters rows by a case-insensitive substring of "symbol name" and
// stable-sorts them by key. Missing values compare as smaller than any
// present value before the descending flip is applied, so they land at the
// top ascending and the bottom descending. The input slice is not mutated.
func Apply(rows []CoinRecord, query string, key SortKey, descending bool) []CoinRecord {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]CoinRecord, 0, len(rows))
	for _, r := range rows {
		if query == "" || strings.Contains(strings.ToLower(r.Symbol+" "+r.Name), query) {
			out = append(out, r)
		}
	}

	slices.SortStableFunc(out, func(a, b CoinRecord) int {
		c := compareByKey(a, b, key)
		if descending {
			c = -c
		}
		return c
	})
	return out
}

// compareByKey orders two records by (isMissing, value) for the given key.
func compareByKey(a, b CoinRecord, key SortKey) int {
	switch key {
	case SortByRank:
		return compareIntPtr(a.Rank, b.Rank)
	case SortBySymbol:
		return strings.Compare(a.Symbol, b.Symbol)
	case SortByName:
		return strings.Compare(a.Name, b.Name)
	case SortByPrice:
		return compareFloatPtr(a.PriceUSD, b.PriceUSD)
	case SortByPct24h:
		return compareFloatPtr(a.PctChange24h, b.PctChange24h)
	case SortByPct7d:
		return compareFloatPtr(a.PctChange7d, b.PctChange7d)
	case SortByMarketCap:
		return compareFloatPtr(a.MarketCapUSD, b.MarketCapUSD)
	case SortByVolume:
		return compareFloatPtr(a.Volume24hUSD, b.Volume24hUSD)
	case SortByUpdated:
		// Empty timestamp counts as missing.
		if a.LastUpdated == "" || b.LastUpdated == "" {
			return compareMissing(a.LastUpdated == "", b.LastUpdated == "")
		}
		return strings.Compare(a.LastUpdated, b.LastUpdated)
	}
	return 0
}

func compareFloatPtr(a, b *float64) int {
	if a == nil || b == nil {
		return compareMissing(a == nil, b == nil)
	}
	return cmp.Compare(*a, *b)
}

func compareIntPtr(a, b *int) int {
	if a == nil || b == nil {
		return compareMissing(a == nil, b == nil)
	}
	return cmp.Compare(*a, *b)
}

// compareMissing handles the cases where at least one side is missing:
// missing < present, missing == missing.
func compareMissing(aMissing, bMissing bool) int {
	switch {
	case aMissing && bMissing:
		return 0
	case aMissing:
		return -1
	default:
		return 1
	}
}
