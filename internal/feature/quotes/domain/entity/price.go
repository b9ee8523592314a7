// Package entity defines the quote domain values.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the timestamp format used by the quote API and on the chart axis.
const TimestampLayout = "2006-01-02 15:04:05"

// PricePoint は1分足1本分の終値です。
type PricePoint struct {
	Time  time.Time
	Close decimal.Decimal
}

// TimeSeries は時刻の昇順に並んだ価格系列です。時刻の重複はありません。
type TimeSeries []PricePoint

// Times returns the x axis view: every timestamp formatted with TimestampLayout.
func (s TimeSeries) Times() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Time.Format(TimestampLayout)
	}
	return out
}

// Closes returns the y axis view, aligned with Times.
func (s TimeSeries) Closes() []decimal.Decimal {
	out := make([]decimal.Decimal, len(s))
	for i, p := range s {
		out[i] = p.Close
	}
	return out
}

// Latest returns the most recent point. ok is false for an empty series.
func (s TimeSeries) Latest() (p PricePoint, ok bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[len(s)-1], true
}
