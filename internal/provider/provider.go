// Package provider は外部認証プロバイダ（GitHub・Google）とのOAuth2フローを抽象化する。
//
// 各プロバイダは認可URLの生成と認可コードの交換を実装し、交換に成功すると
// 正規化されたユーザープロファイルを返す。ユーザーの登録やセッション管理は
// ここでは行わない。交換失敗時のリトライも行わない（リトライの方針は
// プロバイダ側のトークンエンドポイントに委ねる）。
package provider

import "context"

// Profile は認証プロバイダから取得した正規化済みのユーザープロファイル。
// OAuthコールバックからユーザー登録までの間だけ存在し、永続化されない。
type Profile struct {
	// Provider はプロバイダ名（"github"・"google"）。
	Provider string
	// ProviderID はプロバイダ内で一意のユーザーID。
	ProviderID string
	// DisplayName はユーザーの表示名。
	DisplayName string
	// Email はユーザーのメールアドレス。取得できない場合は空。
	Email string
	// AvatarURL はユーザーのアバター画像URL。
	AvatarURL string
}

// Provider は外部認証プロバイダが実装するインターフェース。
type Provider interface {
	// Name はプロバイダ名を返す。
	Name() string
	// Configured はOAuthクライアント認証情報が設定されているかどうかを返す。
	Configured() bool
	// AuthCodeURL はstateパラメータを含む認可エンドポイントのURLを返す。
	AuthCodeURL(state string) string
	// Exchange は認可コードをアクセストークンと交換し、ユーザープロファイルを取得する。
	Exchange(ctx context.Context, code string) (*Profile, error)
}
