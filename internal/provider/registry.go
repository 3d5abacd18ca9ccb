package provider

import "github.com/nao1215/zari/internal/config"

// NewRegistry は設定からサポートする全プロバイダを生成する。
// スライスの順序はルーティング登録と /api/auth のレスポンスに使用される。
func NewRegistry(cfg *config.Config) []Provider {
	return []Provider{
		NewGitHub(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.CallbackBaseURL),
		NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.CallbackBaseURL),
	}
}
