package provider

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/nao1215/zari/pkg/httpclient"
)

// googleAPIBaseURL はGoogleユーザー情報APIのベースURL。
const googleAPIBaseURL = "https://www.googleapis.com"

// Google はGoogleのOAuth2プロバイダ。
type Google struct {
	// conf はOAuth2クライアント設定。
	conf *oauth2.Config
	// apiBaseURL はユーザー情報APIのベースURL。テストで差し替える。
	apiBaseURL string
}

// NewGoogle は新しいGoogleプロバイダを生成する。
func NewGoogle(clientID, clientSecret, callbackBaseURL string) *Google {
	return &Google{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackBaseURL + "/auth/google/callback",
			Endpoint:     endpoints.Google,
			Scopes:       []string{"openid", "email", "profile"},
		},
		apiBaseURL: googleAPIBaseURL,
	}
}

// Name はプロバイダ名を返す。
func (g *Google) Name() string { return "google" }

// Configured はOAuthクライアント認証情報が設定されているかどうかを返す。
func (g *Google) Configured() bool {
	return g.conf.ClientID != "" && g.conf.ClientSecret != ""
}

// AuthCodeURL はstateパラメータを含む認可エンドポイントのURLを返す。
func (g *Google) AuthCodeURL(state string) string {
	return g.conf.AuthCodeURL(state)
}

// googleUser はGoogleユーザー情報APIのレスポンス。
type googleUser struct {
	// ID はGoogle内で一意のユーザーID。
	ID string `json:"id"`
	// Name は表示名。
	Name string `json:"name"`
	// Email はメールアドレス。
	Email string `json:"email"`
	// Picture はアバター画像URL。
	Picture string `json:"picture"`
}

// Exchange は認可コードをアクセストークンと交換し、Googleのユーザー情報を
// 正規化したプロファイルとして返す。
func (g *Google) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("Googleトークン交換に失敗: %w", err)
	}

	client := httpclient.NewWithHTTPClient(g.apiBaseURL, g.conf.Client(ctx, token))
	var user googleUser
	if err := client.GetJSON(ctx, "/oauth2/v2/userinfo", &user); err != nil {
		return nil, fmt.Errorf("Googleユーザー情報の取得に失敗: %w", err)
	}

	return &Profile{
		Provider:    g.Name(),
		ProviderID:  user.ID,
		DisplayName: user.Name,
		Email:       user.Email,
		AvatarURL:   user.Picture,
	}, nil
}
