// Package alphavantage provides a client for the Alpha Vantage intraday quote API.
package alphavantage

import (
	"os"
	"time"
)

const (
	DefaultBaseURL = "https://www.alphavantage.co"
	DefaultSymbol  = "EGHT"
)

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // Base URL for the API (e.g., "https://www.alphavantage.co")
	Symbol  string        // Ticker symbol to chart
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Alpha Vantage configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:  os.Getenv("ALPHAVANTAGE_API_KEY"),
		BaseURL: os.Getenv("ALPHAVANTAGE_BASE_URL"),
		Symbol:  os.Getenv("QUOTE_SYMBOL"),
		Timeout: 15 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Symbol == "" {
		cfg.Symbol = DefaultSymbol
	}
	if d, err := time.ParseDuration(os.Getenv("HTTP_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

// Missing returns the names of required settings that are empty.
func (c Config) Missing() []string {
	if c.APIKey == "" {
		return []string{"ALPHAVANTAGE_API_KEY"}
	}
	return nil
}
