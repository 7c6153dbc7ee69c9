package market

// CoinRecord is one coin's market snapshot in the reference currency.
// Optional fields are pointers; nil means the API omitted the value.
// Records are treated as immutable once produced by the fetcher.
type CoinRecord struct {
	Rank         *int
	Symbol       string
	Name         string
	PriceUSD     *float64
	PctChange24h *float64
	PctChange7d  *float64
	MarketCapUSD *float64
	Volume24hUSD *float64
	LastUpdated  string // ISO-8601, empty when absent
}

// ChangeClass categorizes a record by its 24h change for row coloring.
type ChangeClass int

const (
	ChangeNeutral ChangeClass = iota
	ChangePositive
	ChangeNegative
)

// Change returns the coloring class for a record: positive when the 24h
// change is >= 0, negative when < 0, neutral when the value is missing.
func Change(rec CoinRecord) ChangeClass {
	if rec.PctChange24h == nil {
		return ChangeNeutral
	}
	if *rec.PctChange24h >= 0 {
		return ChangePositive
	}
	return ChangeNegative
}
