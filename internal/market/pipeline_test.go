package market

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func sampleRows() []CoinRecord {
	return []CoinRecord{
		{Rank: ip(1), Symbol: "BTC", Name: "Bitcoin", PriceUSD: fp(64000), PctChange24h: fp(1.2)},
		{Rank: ip(2), Symbol: "ETH", Name: "Ethereum", PriceUSD: fp(3100), PctChange24h: fp(-0.8)},
		{Rank: ip(3), Symbol: "USDT", Name: "Tether USDt", PriceUSD: fp(1.0)},
		{Rank: ip(4), Symbol: "DOGE", Name: "Dogecoin", PriceUSD: fp(0.12), PctChange24h: fp(5.4)},
	}
}

func TestApplyEmptyQueryKeepsEverything(t *testing.T) {
	rows := sampleRows()
	out := Apply(rows, "", SortByRank, false)
	assert.Len(t, out, len(rows))
}

func TestApplyFilterMatchesSymbolOrName(t *testing.T) {
	rows := sampleRows()

	out := Apply(rows, "eth", SortByRank, false)
	require.Len(t, out, 2) // ETH and Tether
	for _, r := range out {
		hay := strings.ToLower(r.Symbol + " " + r.Name)
		assert.Contains(t, hay, "eth")
	}

	// Query can span the symbol/name boundary.
	out = Apply(rows, "btc bit", SortByRank, false)
	require.Len(t, out, 1)
	assert.Equal(t, "BTC", out[0].Symbol)

	out = Apply(rows, "DOGECO", SortByRank, false)
	require.Len(t, out, 1)
	assert.Equal(t, "DOGE", out[0].Symbol)

	out = Apply(rows, "zzz", SortByRank, false)
	assert.Empty(t, out)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	rows := []CoinRecord{
		{Symbol: "C", Name: "c", PriceUSD: fp(3)},
		{Symbol: "A", Name: "a", PriceUSD: fp(1)},
		{Symbol: "B", Name: "b", PriceUSD: fp(2)},
	}
	_ = Apply(rows, "", SortByPrice, false)

	assert.Equal(t, "C", rows[0].Symbol)
	assert.Equal(t, "A", rows[1].Symbol)
	assert.Equal(t, "B", rows[2].Symbol)
}

func TestSortNullPolicy(t *testing.T) {
	rows := []CoinRecord{
		{Symbol: "N", PriceUSD: nil},
		{Symbol: "FIVE", PriceUSD: fp(5)},
		{Symbol: "THREE", PriceUSD: fp(3)},
	}

	asc := Apply(rows, "", SortByPrice, false)
	require.Len(t, asc, 3)
	assert.Equal(t, []string{"N", "THREE", "FIVE"}, symbols(asc))

	desc := Apply(rows, "", SortByPrice, true)
	assert.Equal(t, []string{"FIVE", "THREE", "N"}, symbols(desc))
}

func TestSortMissingRankAndTimestamp(t *testing.T) {
	rows := []CoinRecord{
		{Symbol: "A", Rank: ip(2), LastUpdated: "2024-07-30T05:43:00Z"},
		{Symbol: "B", Rank: nil, LastUpdated: ""},
		{Symbol: "C", Rank: ip(1), LastUpdated: "2024-07-29T00:00:00Z"},
	}

	byRank := Apply(rows, "", SortByRank, false)
	assert.Equal(t, []string{"B", "C", "A"}, symbols(byRank))

	byUpdatedDesc := Apply(rows, "", SortByUpdated, true)
	assert.Equal(t, []string{"A", "C", "B"}, symbols(byUpdatedDesc))
}

func TestSortIsStable(t *testing.T) {
	rows := []CoinRecord{
		{Symbol: "A", PriceUSD: fp(1)},
		{Symbol: "B", PriceUSD: fp(1)},
		{Symbol: "C", PriceUSD: fp(1)},
		{Symbol: "D", PriceUSD: fp(0.5)},
	}

	out := Apply(rows, "", SortByPrice, false)
	assert.Equal(t, []string{"D", "A", "B", "C"}, symbols(out))

	// Descending flips the groups but keeps input order inside a group.
	out = Apply(rows, "", SortByPrice, true)
	assert.Equal(t, []string{"A", "B", "C", "D"}, symbols(out))
}

func TestViewStateSortByToggleRule(t *testing.T) {
	vs := NewViewState()
	require.Equal(t, SortByRank, vs.SortKey)
	require.False(t, vs.SortDescending)

	vs.SortBy(SortByRank)
	assert.Equal(t, SortByRank, vs.SortKey)
	assert.True(t, vs.SortDescending, "same column flips direction")

	vs.SortBy(SortBySymbol)
	assert.Equal(t, SortBySymbol, vs.SortKey)
	assert.False(t, vs.SortDescending, "new column starts ascending")
}

func TestViewStateEmptyFetchRendersEmpty(t *testing.T) {
	vs := NewViewState()
	vs.SetRows(sampleRows())
	require.NotEmpty(t, vs.Visible())

	// A failed refresh replaces the rows with nothing.
	vs.SetRows(nil)
	assert.Empty(t, vs.Visible())
	assert.Zero(t, vs.Len())
}

func TestChangeClass(t *testing.T) {
	assert.Equal(t, ChangePositive, Change(CoinRecord{PctChange24h: fp(0)}))
	assert.Equal(t, ChangePositive, Change(CoinRecord{PctChange24h: fp(2.5)}))
	assert.Equal(t, ChangeNegative, Change(CoinRecord{PctChange24h: fp(-0.01)}))
	assert.Equal(t, ChangeNeutral, Change(CoinRecord{}))
}

func symbols(rows []CoinRecord) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Symbol
	}
	return out
}
