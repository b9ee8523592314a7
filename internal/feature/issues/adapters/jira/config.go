// Package jira はJira REST API（v2 search）からの課題取得を提供します。
package jira

import (
	"encoding/base64"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultPageSize は1回のsearchリクエストで取得する課題数です。
	DefaultPageSize = 100
	// DefaultTimeout はHTTPリクエスト全体のタイムアウトです。
	DefaultTimeout = 15 * time.Second
)

// Config holds configuration for the Jira client.
type Config struct {
	BaseURL  string        // Jira site URL (e.g., "https://example.atlassian.net")
	Username string        // Basic auth user (account email)
	APIToken string        // Basic auth password / API token
	JQL      string        // Optional search filter; empty searches everything visible
	PageSize int           // Issues per search page
	Timeout  time.Duration // HTTP request timeout
}

// LoadConfig loads Jira configuration from environment variables.
// JIRA_BASIC_AUTH (base64 of "user:token") is accepted in place of JIRA_USERNAME / JIRA_API_TOKEN.
func LoadConfig() Config {
	cfg := Config{
		BaseURL:  strings.TrimSpace(os.Getenv("JIRA_BASE_URL")),
		Username: os.Getenv("JIRA_USERNAME"),
		APIToken: os.Getenv("JIRA_API_TOKEN"),
		JQL:      os.Getenv("JIRA_JQL"),
		PageSize: DefaultPageSize,
		Timeout:  DefaultTimeout,
	}
	if n, err := strconv.Atoi(os.Getenv("JIRA_PAGE_SIZE")); err == nil && n > 0 {
		cfg.PageSize = n
	}
	if d, err := time.ParseDuration(os.Getenv("HTTP_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if cfg.Username == "" && cfg.APIToken == "" {
		cfg.Username, cfg.APIToken = decodeBasic(os.Getenv("JIRA_BASIC_AUTH"))
	}
	return cfg
}

// Missing returns the names of required settings that are empty.
func (c Config) Missing() []string {
	var out []string
	if c.BaseURL == "" {
		out = append(out, "JIRA_BASE_URL")
	}
	if c.Username == "" || c.APIToken == "" {
		out = append(out, "JIRA_USERNAME/JIRA_API_TOKEN (or JIRA_BASIC_AUTH)")
	}
	return out
}

// decodeBasic splits a base64 "user:password" credential. Invalid input yields empty strings.
func decodeBasic(encoded string) (string, string) {
	encoded = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(encoded), "Basic "))
	if encoded == "" {
		return "", ""
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ""
	}
	user, pass, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", ""
	}
	return user, pass
}
