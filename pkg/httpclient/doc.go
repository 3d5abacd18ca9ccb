// Package httpclient は外部APIとのHTTP通信を行うクライアントを提供する。
//
// 認証プロバイダのユーザー情報APIを呼び出す際に使用する。
// OAuth2のアクセストークンを持つhttp.Clientを差し込めるため、
// トークン付与の詳細は呼び出し側（provider層）が決める。
package httpclient
