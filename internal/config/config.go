// Package config はzariサーバーの設定を環境変数から読み込む。
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config はzariサーバーの設定。全て環境変数から読み込む。
type Config struct {
	// Port はHTTPサーバーのリッスンポート。
	Port string `env:"PORT" envDefault:"8080"`
	// DBPath はSQLiteデータベースファイルのパス。
	DBPath string `env:"DB_PATH" envDefault:"/data/zari.db"`
	// JWTSecret はセッショントークンの署名鍵。起動後は変更しない。
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-key"`
	// CookieName はセッショントークンを格納するCookie名。
	CookieName string `env:"JWT_TOKEN_NAME" envDefault:"zari_session"`
	// FrontendURL はCORSで許可するフロントエンドのオリジン。
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	// CallbackBaseURL はOAuthコールバックURLのベースURL。
	CallbackBaseURL string `env:"CALLBACK_BASE_URL" envDefault:"http://localhost:8080"`

	// GitHubClientID はGitHub OAuthアプリのクライアントID。
	GitHubClientID string `env:"GITHUB_CLIENT_ID"`
	// GitHubClientSecret はGitHub OAuthアプリのクライアントシークレット。
	GitHubClientSecret string `env:"GITHUB_CLIENT_SECRET"`
	// GoogleClientID はGoogle OAuthクライアントID。
	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`
	// GoogleClientSecret はGoogle OAuthクライアントシークレット。
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
}

// Load は環境変数から設定を読み込む。
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("環境変数の読み込みに失敗: %w", err)
	}
	return cfg, nil
}
