// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"jira_dashboard/internal/feature/issues/adapters/jira"
	issuesusecase "jira_dashboard/internal/feature/issues/usecase"
	"jira_dashboard/internal/feature/quotes/adapters/alphavantage"
	quotesusecase "jira_dashboard/internal/feature/quotes/usecase"
	infrahttp "jira_dashboard/internal/platform/http"
)

// NewIssueAggregator creates an IssueAggregator backed by the Jira search API.
func NewIssueAggregator(cfg jira.Config, retries int, log zerolog.Logger) (*issuesusecase.IssueAggregator, error) {
	repo, err := jira.NewJiraIssueRepository(cfg, infrahttp.NewRetryTransport(infrahttp.NewTransport(), retries))
	if err != nil {
		return nil, fmt.Errorf("jira repository: %w", err)
	}
	return issuesusecase.NewIssueAggregator(repo, log.With().Str("component", "issues").Logger()), nil
}

// NewQuoteAggregator creates a QuoteAggregator backed by Alpha Vantage.
func NewQuoteAggregator(cfg alphavantage.Config, retries int, log zerolog.Logger) *quotesusecase.QuoteAggregator {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout, retries)
	repo := alphavantage.NewAlphaVantageQuotes(cfg, httpClient)
	return quotesusecase.NewQuoteAggregator(repo, log.With().Str("component", "quotes").Logger())
}
