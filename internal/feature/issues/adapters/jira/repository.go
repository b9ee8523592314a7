package jira

import (
	"context"
	"fmt"
	"net/http"

	gojira "github.com/andygrunwald/go-jira"

	"jira_dashboard/internal/feature/issues/domain/entity"
	"jira_dashboard/internal/feature/issues/usecase"
)

// searchFields はsearch APIで要求するフィールドです。集計に必要なものだけに絞ります。
var searchFields = []string{"issuetype", "status", "assignee"}

// JiraIssueRepository はJira search APIから全課題を取得するIssueRepository実装です。
type JiraIssueRepository struct {
	client   *gojira.Client
	jql      string
	pageSize int
}

// JiraIssueRepositoryがIssueRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.IssueRepository = (*JiraIssueRepository)(nil)

// NewJiraIssueRepository はBasic認証付きのgo-jiraクライアントを構築します。
// base は下位のトランスポートで、nilの場合はhttp.DefaultTransportを使用します。
func NewJiraIssueRepository(cfg Config, base http.RoundTripper) (*JiraIssueRepository, error) {
	tp := &gojira.BasicAuthTransport{
		Username:  cfg.Username,
		Password:  cfg.APIToken,
		Transport: acceptJSON{next: base},
	}
	client, err := gojira.NewClient(&http.Client{Transport: tp, Timeout: cfg.Timeout}, cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("create jira client: %w", err)
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &JiraIssueRepository{client: client, jql: cfg.JQL, pageSize: pageSize}, nil
}

// FetchAll はstartAtでページングしながらtotal件すべての課題を取得します。
func (r *JiraIssueRepository) FetchAll(ctx context.Context) (entity.IssueSet, error) {
	var (
		issues []entity.Issue
		total  = -1
		start  = 0
	)
	for {
		page, resp, err := r.client.Issue.SearchWithContext(ctx, r.jql, &gojira.SearchOptions{
			StartAt:    start,
			MaxResults: r.pageSize,
			Fields:     searchFields,
		})
		if err != nil {
			return entity.IssueSet{}, fmt.Errorf("jira search startAt=%d: %w", start, err)
		}
		if total < 0 {
			total = resp.Total
			issues = make([]entity.Issue, 0, total)
		}
		for _, is := range page {
			e, err := toEntity(is)
			if err != nil {
				return entity.IssueSet{}, err
			}
			issues = append(issues, e)
		}
		start += len(page)
		if len(page) == 0 || start >= total {
			break
		}
	}

	if len(issues) != total {
		return entity.IssueSet{}, fmt.Errorf("jira search: %w: total=%d issues=%d", usecase.ErrIssueCountMismatch, total, len(issues))
	}
	return entity.IssueSet{Total: total, Issues: issues}, nil
}

// toEntity はgo-jiraの課題をドメインエンティティに変換します。
func toEntity(is gojira.Issue) (entity.Issue, error) {
	if is.Fields == nil || is.Fields.Status == nil || is.Fields.Status.Name == "" {
		return entity.Issue{}, fmt.Errorf("jira issue %q: missing status field", is.Key)
	}
	if is.Fields.Type.Name == "" {
		return entity.Issue{}, fmt.Errorf("jira issue %q: missing issuetype field", is.Key)
	}
	e := entity.Issue{
		Type:   is.Fields.Type.Name,
		Status: is.Fields.Status.Name,
	}
	if is.Fields.Assignee != nil {
		name := is.Fields.Assignee.DisplayName
		e.Assignee = &name
	}
	return e, nil
}

// acceptJSON はすべてのリクエストに Accept: application/json を付与します。
type acceptJSON struct {
	next http.RoundTripper
}

func (a acceptJSON) RoundTrip(req *http.Request) (*http.Response, error) {
	next := a.next
	if next == nil {
		next = http.DefaultTransport
	}
	req = req.Clone(req.Context())
	req.Header.Set("Accept", "application/json")
	return next.RoundTrip(req)
}
