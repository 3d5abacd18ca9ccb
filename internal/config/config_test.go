package config

import (
	"os"
	"testing"
)

// unsetenv はテスト中だけ環境変数を未設定状態にする。
// t.Setenvでテスト終了後の復元を登録してから削除する。
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()

	for _, key := range keys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("環境変数 %s の削除に失敗: %v", key, err)
		}
	}
}

// TestLoad は環境変数からの設定読み込みを検証する。
func TestLoad(t *testing.T) {
	t.Run("環境変数が未設定の場合はデフォルト値が使われること", func(t *testing.T) {
		unsetenv(t, "PORT", "DB_PATH", "JWT_SECRET", "JWT_TOKEN_NAME",
			"FRONTEND_URL", "CALLBACK_BASE_URL",
			"GITHUB_CLIENT_ID", "GITHUB_CLIENT_SECRET",
			"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}

		if cfg.Port != "8080" {
			t.Errorf("Port = %q, want %q", cfg.Port, "8080")
		}
		if cfg.DBPath != "/data/zari.db" {
			t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/data/zari.db")
		}
		if cfg.JWTSecret != "dev-secret-key" {
			t.Errorf("JWTSecret = %q, want %q", cfg.JWTSecret, "dev-secret-key")
		}
		if cfg.CookieName != "zari_session" {
			t.Errorf("CookieName = %q, want %q", cfg.CookieName, "zari_session")
		}
		if cfg.CallbackBaseURL != "http://localhost:8080" {
			t.Errorf("CallbackBaseURL = %q, want %q", cfg.CallbackBaseURL, "http://localhost:8080")
		}
		if cfg.GitHubClientID != "" {
			t.Errorf("GitHubClientID = %q, want empty", cfg.GitHubClientID)
		}
	})

	t.Run("環境変数が設定されている場合はその値が使われること", func(t *testing.T) {
		t.Setenv("PORT", "9000")
		t.Setenv("JWT_SECRET", "super-secret")
		t.Setenv("JWT_TOKEN_NAME", "custom_session")
		t.Setenv("CALLBACK_BASE_URL", "https://zari.example.com")
		t.Setenv("GITHUB_CLIENT_ID", "gh-client")
		t.Setenv("GITHUB_CLIENT_SECRET", "gh-secret")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}

		if cfg.Port != "9000" {
			t.Errorf("Port = %q, want %q", cfg.Port, "9000")
		}
		if cfg.JWTSecret != "super-secret" {
			t.Errorf("JWTSecret = %q, want %q", cfg.JWTSecret, "super-secret")
		}
		if cfg.CookieName != "custom_session" {
			t.Errorf("CookieName = %q, want %q", cfg.CookieName, "custom_session")
		}
		if cfg.CallbackBaseURL != "https://zari.example.com" {
			t.Errorf("CallbackBaseURL = %q, want %q", cfg.CallbackBaseURL, "https://zari.example.com")
		}
		if cfg.GitHubClientID != "gh-client" {
			t.Errorf("GitHubClientID = %q, want %q", cfg.GitHubClientID, "gh-client")
		}
		if cfg.GitHubClientSecret != "gh-secret" {
			t.Errorf("GitHubClientSecret = %q, want %q", cfg.GitHubClientSecret, "gh-secret")
		}
	})
}
