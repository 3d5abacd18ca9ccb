// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// セッションCookie（JWT）の発行・検証と保護ルートのゲート、
// 型付きエラーのディスパッチ、パニックリカバリ、CORS設定を含む。
package middleware
