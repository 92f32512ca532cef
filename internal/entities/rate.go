package entities

import (
	"strings"
	"time"
)

const (
	// AllSymbolsParam is the sembol value that selects every symbol of a category.
	AllSymbolsParam = "all"

	// UnknownCategory groups records the API did not tag with a source category.
	UnknownCategory = "unknown"
)

// RateQuery selects the categories (doviz, kripto, altin...) and symbols to fetch.
type RateQuery struct {
	Categories []string
	Symbols    []string
	All        bool
}

func NewQuery(categories []string, symbols ...string) RateQuery {
	return RateQuery{
		Categories: categories,
		Symbols:    symbols,
	}
}

// AllSymbols builds a query for every symbol of the given categories.
func AllSymbols(categories ...string) RateQuery {
	return RateQuery{
		Categories: categories,
		All:        true,
	}
}

// ParseQuery builds a query from comma separated lists, "all" selecting every symbol.
func ParseQuery(categories, symbols string) RateQuery {
	cats := splitList(categories)

	if strings.TrimSpace(symbols) == "" || strings.EqualFold(strings.TrimSpace(symbols), AllSymbolsParam) {
		return AllSymbols(cats...)
	}

	return NewQuery(cats, splitList(symbols)...)
}

func (q RateQuery) Validate() error {
	if len(q.Categories) == 0 {
		return InvalidQuery("no categories")
	}
	for _, c := range q.Categories {
		if strings.TrimSpace(c) == "" {
			return InvalidQuery("blank category")
		}
	}

	if q.All {
		if len(q.Symbols) > 0 {
			return InvalidQuery("symbols given together with all")
		}
		return nil
	}

	if len(q.Symbols) == 0 {
		return InvalidQuery("no symbols")
	}
	for _, s := range q.Symbols {
		if strings.TrimSpace(s) == "" {
			return InvalidQuery("blank symbol")
		}
	}

	return nil
}

// ListParam is the value of the list query parameter. Order is kept as given.
func (q RateQuery) ListParam() string {
	return strings.Join(q.Categories, ",")
}

// SymbolParam is the value of the sembol query parameter.
func (q RateQuery) SymbolParam() string {
	if q.All {
		return AllSymbolsParam
	}
	return strings.Join(q.Symbols, ",")
}

// Key identifies the query in caches and snapshot storage.
func (q RateQuery) Key() string {
	return q.ListParam() + "|" + q.SymbolParam()
}

type RateRecord struct {
	Symbol         string    `json:"symbol"`
	Buy            string    `json:"buy,omitempty"`
	Sell           string    `json:"sell"`
	Unit           string    `json:"unit"`
	Rate           string    `json:"rate,omitempty"`
	ChangePercent  string    `json:"change_percent"`
	Direction      Direction `json:"direction"`
	SourceCategory string    `json:"source_category,omitempty"`
}

// HasBuy reports whether the API sent a buy (alis) price for the record.
func (r RateRecord) HasBuy() bool {
	return r.Buy != ""
}

type RateLimitInfo struct {
	Remaining int    `json:"remaining"`
	Limit     int    `json:"limit"`
	ResetAt   string `json:"reset_at"`
}

var resetLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func (r RateLimitInfo) Exhausted() bool {
	return r.Remaining == 0
}

// ResetTime parses ResetAt. Naive timestamps are read as UTC.
func (r RateLimitInfo) ResetTime() (time.Time, bool) {
	for _, layout := range resetLayouts {
		if t, err := time.Parse(layout, r.ResetAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RateResponse is the normalized API answer. Records keep the order the server sent them in.
type RateResponse struct {
	Success      bool           `json:"success"`
	Records      []RateRecord   `json:"records"`
	RateLimit    *RateLimitInfo `json:"rate_limit,omitempty"`
	ErrorMessage string         `json:"error,omitempty"`
}

func (r *RateResponse) Record(symbol string) (RateRecord, bool) {
	for _, rec := range r.Records {
		if rec.Symbol == symbol {
			return rec, true
		}
	}
	return RateRecord{}, false
}

func (r *RateResponse) Symbols() []string {
	symbols := make([]string, len(r.Records))
	for i, rec := range r.Records {
		symbols[i] = rec.Symbol
	}
	return symbols
}

type CategoryGroup struct {
	Category string
	Records  []RateRecord
}

// GroupByCategory groups records by SourceCategory in order of first appearance.
func (r *RateResponse) GroupByCategory() []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[string]int)

	for _, rec := range r.Records {
		category := rec.SourceCategory
		if category == "" {
			category = UnknownCategory
		}

		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, CategoryGroup{Category: category})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}

	return groups
}

// Origin tells where a served response came from.
type Origin string

const (
	OriginUpstream Origin = "upstream"
	OriginCache    Origin = "cache"
	OriginSnapshot Origin = "snapshot"
)

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
