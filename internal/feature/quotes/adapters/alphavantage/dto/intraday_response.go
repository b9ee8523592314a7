// Package dto はAlpha Vantage APIのレスポンス形状を定義します。
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// IntradayResponse は TIME_SERIES_INTRADAY (interval=1min) のレスポンスです。
// エラー時はSeriesがnilになり、3つのメッセージのいずれかが設定されます。
type IntradayResponse struct {
	ErrorMessage string         `json:"Error Message"`
	Note         string         `json:"Note"`
	Information  string         `json:"Information"`
	Series       *OrderedSeries `json:"Time Series (1min)"`
}

// APIMessage returns the first non-empty error-like message of the body.
func (r IntradayResponse) APIMessage() string {
	switch {
	case r.ErrorMessage != "":
		return r.ErrorMessage
	case r.Note != "":
		return r.Note
	default:
		return r.Information
	}
}

// Bar は1分足1本分の値です。数値は文字列で返されます。
type Bar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// Entry はタイムスタンプとその足の組です。
type Entry struct {
	Timestamp string
	Bar       Bar
}

// OrderedSeries はJSONオブジェクトのキー順を保持した時系列です。
type OrderedSeries []Entry

// UnmarshalJSON decodes the series object token by token so that key order survives.
func (s *OrderedSeries) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("time series: expected object, got %v", tok)
	}

	out := OrderedSeries{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("time series: unexpected key %v", tok)
		}
		var bar Bar
		if err := dec.Decode(&bar); err != nil {
			return fmt.Errorf("time series %q: %w", key, err)
		}
		out = append(out, Entry{Timestamp: key, Bar: bar})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}
