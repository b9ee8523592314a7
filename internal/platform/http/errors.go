// Package http は外部API呼び出し用のHTTPクライアントとミドルウェアを提供します。
package http

import "errors"

var errBodyNotRewindable = errors.New("retry: request body cannot be rewound")
