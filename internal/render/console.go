// Package render prints rate responses for terminals and browsers.
package render

import (
	"fmt"
	"github.com/berkocan/genelpara-api/internal/entities"
	"github.com/shopspring/decimal"
	"io"
	"strings"
)

const (
	pricePlaces   = 4
	groupedPlaces = 2
)

// Price formats a price literal with a fixed number of decimals. Text that is not a
// number is returned unchanged.
func Price(s string, places int32) string {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return d.StringFixed(places)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// Console writes one line per record in server order, then the rate-limit footer.
func Console(w io.Writer, resp *entities.RateResponse) error {
	ew := &errWriter{w: w}

	if !resp.Success {
		ew.printf("API error: %s\n", resp.ErrorMessage)
		return ew.err
	}

	for _, rec := range resp.Records {
		ew.printf("%-6s: %10s %s %s %8s", rec.Symbol, Price(rec.Sell, pricePlaces), rec.Unit, rec.Direction.Arrow(), rec.ChangePercent)
		if rec.Rate != "" {
			ew.printf(" (%6s%%)", rec.Rate)
		}
		ew.printf("\n")
	}

	footer(ew, resp.RateLimit)

	return ew.err
}

// Grouped writes records under a heading per source category.
func Grouped(w io.Writer, resp *entities.RateResponse) error {
	ew := &errWriter{w: w}

	if !resp.Success {
		ew.printf("API error: %s\n", resp.ErrorMessage)
		return ew.err
	}

	for _, group := range resp.GroupByCategory() {
		ew.printf("%s:\n%s\n", strings.ToUpper(group.Category), strings.Repeat("-", 50))
		for _, rec := range group.Records {
			ew.printf("  %-6s: %s %s (change: %s%%)\n", rec.Symbol, Price(rec.Sell, groupedPlaces), rec.Unit, rec.ChangePercent)
		}
		ew.printf("\n")
	}

	footer(ew, resp.RateLimit)

	return ew.err
}

// Compare writes a fixed-width table for the given symbols in the order asked for.
// Symbols missing from the response are skipped.
func Compare(w io.Writer, resp *entities.RateResponse, symbols []string) error {
	ew := &errWriter{w: w}

	if !resp.Success {
		ew.printf("API error: %s\n", resp.ErrorMessage)
		return ew.err
	}

	if len(symbols) == 0 {
		symbols = resp.Symbols()
	}

	rule := strings.Repeat("=", 70)
	ew.printf("%s\n  COMPARISON\n%s\n", rule, rule)
	ew.printf("%-10s %12s %12s %12s %10s\n", "Symbol", "Buy", "Sell", "Change", "Rate")
	ew.printf("%s\n", strings.Repeat("-", 70))

	for _, symbol := range symbols {
		rec, ok := resp.Record(symbol)
		if !ok {
			continue
		}

		buy := "-"
		if rec.HasBuy() {
			buy = Price(rec.Buy, pricePlaces)
		}
		rate := "-"
		if rec.Rate != "" {
			rate = rec.Rate + "%"
		}

		ew.printf("%-10s %12s %12s %12s %10s\n", rec.Symbol, buy, Price(rec.Sell, pricePlaces), rec.ChangePercent, rate)
	}

	ew.printf("%s\n", rule)

	footer(ew, resp.RateLimit)

	return ew.err
}

func footer(ew *errWriter, rl *entities.RateLimitInfo) {
	if rl == nil {
		return
	}
	ew.printf("Rate limit: %d/%d remaining, resets at %s\n", rl.Remaining, rl.Limit, rl.ResetAt)
}
