package provider

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/nao1215/zari/pkg/httpclient"
)

// githubAPIBaseURL はGitHub APIのベースURL。
const githubAPIBaseURL = "https://api.github.com"

// GitHub はGitHubのOAuth2プロバイダ。
type GitHub struct {
	// conf はOAuth2クライアント設定。
	conf *oauth2.Config
	// apiBaseURL はユーザー情報APIのベースURL。テストで差し替える。
	apiBaseURL string
}

// NewGitHub は新しいGitHubプロバイダを生成する。
func NewGitHub(clientID, clientSecret, callbackBaseURL string) *GitHub {
	return &GitHub{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackBaseURL + "/auth/github/callback",
			Endpoint:     endpoints.GitHub,
			Scopes:       []string{"read:user", "user:email"},
		},
		apiBaseURL: githubAPIBaseURL,
	}
}

// Name はプロバイダ名を返す。
func (g *GitHub) Name() string { return "github" }

// Configured はOAuthクライアント認証情報が設定されているかどうかを返す。
func (g *GitHub) Configured() bool {
	return g.conf.ClientID != "" && g.conf.ClientSecret != ""
}

// AuthCodeURL はstateパラメータを含む認可エンドポイントのURLを返す。
func (g *GitHub) AuthCodeURL(state string) string {
	return g.conf.AuthCodeURL(state)
}

// githubUser はGitHubユーザー情報APIのレスポンス。
type githubUser struct {
	// ID はGitHub内で一意のユーザーID。
	ID int64 `json:"id"`
	// Login はGitHubのログイン名。
	Login string `json:"login"`
	// Name は表示名。未設定の場合は空。
	Name string `json:"name"`
	// Email は公開メールアドレス。非公開の場合は空。
	Email string `json:"email"`
	// AvatarURL はアバター画像URL。
	AvatarURL string `json:"avatar_url"`
}

// Exchange は認可コードをアクセストークンと交換し、GitHubのユーザー情報を
// 正規化したプロファイルとして返す。
func (g *GitHub) Exchange(ctx context.Context, code string) (*Profile, error) {
	token, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("GitHubトークン交換に失敗: %w", err)
	}

	client := httpclient.NewWithHTTPClient(g.apiBaseURL, g.conf.Client(ctx, token))
	var user githubUser
	if err := client.GetJSON(ctx, "/user", &user); err != nil {
		return nil, fmt.Errorf("GitHubユーザー情報の取得に失敗: %w", err)
	}

	displayName := user.Name
	if displayName == "" {
		displayName = user.Login
	}

	return &Profile{
		Provider:    g.Name(),
		ProviderID:  strconv.FormatInt(user.ID, 10),
		DisplayName: displayName,
		Email:       user.Email,
		AvatarURL:   user.AvatarURL,
	}, nil
}
