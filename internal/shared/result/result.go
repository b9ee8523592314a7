// Package result は取得結果と「取得失敗」マーカーをまとめて運ぶ型を提供します。
package result

// Result は導出済みの値と、取得に失敗した場合のエラーを保持します。
// Err が nil でない場合でも Value は描画可能なプレースホルダーであることが期待されます。
type Result[T any] struct {
	Value T
	Err   error
}

// OK は成功した結果を生成します。
func OK[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Failed は失敗した結果を生成します。fallback は描画用のプレースホルダー値です。
func Failed[T any](fallback T, err error) Result[T] {
	return Result[T]{Value: fallback, Err: err}
}

// Failed は取得または導出に失敗していれば true を返します。
func (r Result[T]) Failed() bool {
	return r.Err != nil
}
