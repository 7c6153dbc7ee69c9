package market

// ViewState holds the last-fetched rows together with the current filter
// and sort settings. It is owned by the display surface and must only be
// touched from the event-loop goroutine.
type ViewState struct {
	rawRows []CoinRecord

	FilterQuery    string
	SortKey        SortKey
	SortDescending bool
}

// NewViewState starts empty, sorted by rank ascending.
func NewViewState() *ViewState {
	return &ViewState{SortKey: SortByRank}
}

// SetRows replaces the raw rows wholesale. Each refresh, successful or not,
// goes through here; rows are never partially mutated.
func (v *ViewState) SetRows(rows []CoinRecord) {
	v.rawRows = rows
}

// Len reports the number of raw (unfiltered) rows.
func (v *ViewState) Len() int {
	return len(v.rawRows)
}

// SortBy applies the header-click rule: clicking the current sort column
// flips the direction, clicking a different column selects it ascending.
func (v *ViewState) SortBy(key SortKey) {
	if key == v.SortKey {
		v.SortDescending = !v.SortDescending
		return
	}
	v.SortKey = key
	v.SortDescending = false
}

// SetQuery updates the filter query.
func (v *ViewState) SetQuery(q string) {
	v.FilterQuery = q
}

// Visible returns the rows to render under the current filter and sort.
func (v *ViewState) Visible() []CoinRecord {
	return Apply(v.rawRows, v.FilterQuery, v.SortKey, v.SortDescending)
}
