package http

import (
	"io"
	"net"
	"net/http"
	"time"
)

// DefaultRetryBaseDelay is the backoff before the first retry; it doubles on every attempt.
const DefaultRetryBaseDelay = 300 * time.Millisecond

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
// retries 回まで一時的な失敗（ネットワークエラー、429、5xx）を再試行します。
//
// 注意:
//   - http.DefaultClientにはタイムアウトがないため、常にカスタムクライアントを使用すること
//   - Client.Timeout は再試行を含めたリクエスト全体に適用される
func NewHTTPClient(timeout time.Duration, retries int) *http.Client {
	return &http.Client{Timeout: timeout, Transport: NewRetryTransport(NewTransport(), retries)}
}

// NewTransport は接続の安定性とリソース管理のために明示的に設定したTransportを返します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト（デフォルトより短い）
//   - Dialer.KeepAlive: 再利用可能なTCP接続の維持期間
//   - MaxIdleConns: 最大アイドル接続数
//   - IdleConnTimeout: アイドル接続の維持期間
//   - TLSHandshakeTimeout: HTTPSハンドシェイクの最大時間
func NewTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
}

// RetryTransport は一時的な失敗を指数バックオフ（BaseDelay * 2^attempt）で再試行します。
type RetryTransport struct {
	Next      http.RoundTripper
	Retries   int
	BaseDelay time.Duration
}

// NewRetryTransport wraps next with bounded retries. A nil next uses http.DefaultTransport.
func NewRetryTransport(next http.RoundTripper, retries int) *RetryTransport {
	return &RetryTransport{Next: next, Retries: retries, BaseDelay: DefaultRetryBaseDelay}
}

func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}
	ctx := req.Context()

	for attempt := 0; ; attempt++ {
		r := req
		if attempt > 0 && req.Body != nil && req.Body != http.NoBody {
			if req.GetBody == nil {
				return nil, errBodyNotRewindable
			}
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			r = req.Clone(ctx)
			r.Body = body
		}

		res, err := next.RoundTrip(r)
		if attempt >= t.Retries || ctx.Err() != nil || !retryable(res, err) {
			return res, err
		}
		if res != nil {
			_, _ = io.Copy(io.Discard, res.Body)
			_ = res.Body.Close()
		}

		timer := time.NewTimer(t.BaseDelay << attempt)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func retryable(res *http.Response, err error) bool {
	if err != nil {
		return true
	}
	return res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500
}
