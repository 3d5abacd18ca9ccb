// Package apperr はアプリケーション全体で使用する型付きエラーを提供する。
//
// 各エラーは種別（Kind）を持ち、エラーディスパッチミドルウェアが
// 種別からHTTPステータスコードとクライアント向けメッセージを導出する。
// 内部原因（Err）はサーバー側のログにのみ出力し、クライアントへは返さない。
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind はエラーの種別を表す。
type Kind int

const (
	// KindUnauthorized はセッショントークンの欠落・改ざん・期限切れを表す。
	KindUnauthorized Kind = iota + 1
	// KindAuthProvider は外部認証プロバイダとの交換失敗を表す。
	KindAuthProvider
	// KindConflict は一意制約違反などの競合による失敗を表す。
	KindConflict
	// KindNotFound はリソースが存在しないことを表す。
	KindNotFound
	// KindInternal は分類できない内部エラーを表す。
	KindInternal
)

// Error はHTTPレスポンスへ変換可能なアプリケーションエラー。
type Error struct {
	// Kind はエラー種別。
	Kind Kind
	// Message はクライアントへ返す短いメッセージ。
	Message string
	// Err は内部原因。ログにのみ出力する。
	Err error
}

// Error はerrorインターフェースを実装する。
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap は内部原因を返す。
func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus はエラー種別に対応するHTTPステータスコードを返す。
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindAuthProvider:
		return http.StatusBadGateway
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Unauthorized は認証失敗エラーを生成する。
func Unauthorized(err error) *Error {
	return &Error{Kind: KindUnauthorized, Message: "認証が必要です", Err: err}
}

// AuthProvider は外部認証プロバイダとの交換失敗エラーを生成する。
func AuthProvider(err error) *Error {
	return &Error{Kind: KindAuthProvider, Message: "認証プロバイダとの通信に失敗しました", Err: err}
}

// Conflict は競合による失敗エラーを生成する。
func Conflict(err error) *Error {
	return &Error{Kind: KindConflict, Message: "リソースが競合しました", Err: err}
}

// NotFound はリソース不在エラーを生成する。
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Internal は内部エラーを生成する。
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "内部サーバーエラーが発生しました", Err: err}
}

// From はerrをErrorへ変換する。Errorでない場合はKindInternalとして扱う。
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
