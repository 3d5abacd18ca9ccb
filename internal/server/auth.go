package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nao1215/zari/internal/provider"
	"github.com/nao1215/zari/internal/store"
	"github.com/nao1215/zari/pkg/apperr"
	"github.com/nao1215/zari/pkg/middleware"
)

// stateCookieName はOAuthのstateパラメータを保持するCookie名。
const stateCookieName = "zari_oauth_state"

// stateCookieMaxAge はstate Cookieの有効期間（秒）。
// リダイレクトからコールバックまでの間だけ生きていればよい。
const stateCookieMaxAge = 10 * 60

// handleAuthProviders は利用可能な認証プロバイダ一覧を返すハンドラを返す。
// レスポンスはプロバイダ名からリダイレクトパスへのマップ。
func (s *Server) handleAuthProviders() gin.HandlerFunc {
	return func(c *gin.Context) {
		supported := make(map[string]string, len(s.providers))
		for _, p := range s.providers {
			supported[p.Name()] = "/auth/" + p.Name()
		}
		c.JSON(http.StatusOK, supported)
	}
}

// handleLogin はプロバイダの認可エンドポイントへリダイレクトするハンドラを返す。
// CSRF対策として、発行したstateをCookieに保存しコールバックで照合する。
// state CookieはプロバイダからのクロスサイトリダイレクトでもCookieが送信
// されるようSameSite=Laxにする。
func (s *Server) handleLogin(p provider.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !p.Configured() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": fmt.Sprintf("%s OAuth2が設定されていません", p.Name()),
			})
			return
		}

		state := uuid.New().String()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(stateCookieName, state, stateCookieMaxAge, "/", "", true, true)
		c.Redirect(http.StatusTemporaryRedirect, p.AuthCodeURL(state))
	}
}

// handleCallback はOAuthコールバックを処理するハンドラを返す。
// state検証 → コード交換 → ユーザー登録 → セッショントークン発行の順に進み、
// 途中で失敗した場合はセッションCookieを設定せずエラーディスパッチへ委ねる。
func (s *Server) handleCallback(p provider.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := c.Cookie(stateCookieName)
		if err != nil || state == "" || state != c.Query("state") {
			_ = c.Error(apperr.Unauthorized(errors.New("OAuth stateが一致しない")))
			return
		}
		clearStateCookie(c)

		code := c.Query("code")
		if code == "" {
			_ = c.Error(apperr.Unauthorized(errors.New("認可コードがない")))
			return
		}

		profile, err := p.Exchange(c.Request.Context(), code)
		if err != nil {
			_ = c.Error(apperr.AuthProvider(err))
			return
		}

		user, err := s.signUpIfNewUser(c.Request.Context(), profile)
		if err != nil {
			_ = c.Error(apperr.Internal(err))
			return
		}

		token, err := middleware.GenerateSessionToken(s.cfg.JWTSecret, user.ID, user.Provider, user.DisplayName)
		if err != nil {
			_ = c.Error(apperr.Internal(err))
			return
		}

		middleware.IssueSessionCookie(c, s.cfg.CookieName, token)
		c.JSON(http.StatusOK, gin.H{
			"message": "認証が完了しました。このウィンドウを閉じても構いません。",
		})
	}
}

// signUpIfNewUser は初回ログインのユーザーを登録し、ローカルのユーザーレコードを返す。
// プロバイダ由来のIDからローカルIDへの変換はここでのみ行い、以降の認可は
// 全てローカルIDを使用する。
// 同時初回ログインが競合した場合、負けた側のINSERTは一意制約により何もせず、
// 勝った側のレコードを読み直して成功として扱う（冪等）。
func (s *Server) signUpIfNewUser(ctx context.Context, profile *provider.Profile) (store.User, error) {
	exists, err := s.store.UserExists(ctx, profile.Provider, profile.ProviderID)
	if err != nil {
		return store.User{}, err
	}

	if !exists {
		if err := s.store.CreateUser(ctx, store.CreateUserParams{
			ID:          uuid.New().String(),
			Provider:    profile.Provider,
			ProviderID:  profile.ProviderID,
			Email:       profile.Email,
			DisplayName: profile.DisplayName,
			AvatarURL:   profile.AvatarURL,
		}); err != nil {
			return store.User{}, err
		}
	}

	// 競合時は相手のINSERTが勝っている可能性があるため、必ず読み直す。
	user, err := s.store.GetUserByProvider(ctx, profile.Provider, profile.ProviderID)
	if err != nil {
		return store.User{}, err
	}

	if exists {
		if err := s.store.TouchLastLogin(ctx, user.ID); err != nil {
			return store.User{}, err
		}
	}

	return user, nil
}

// byeolResponse はユーザー情報のJSONレスポンス構造。
type byeolResponse struct {
	// ID はユーザーの一意識別子。
	ID string `json:"id"`
	// Provider は認証に使用したプロバイダ名。
	Provider string `json:"provider"`
	// DisplayName は表示名。
	DisplayName string `json:"display_name"`
	// Email はメールアドレス。
	Email string `json:"email"`
	// AvatarURL はアバター画像URL。
	AvatarURL string `json:"avatar_url"`
}

// handleGetByeol は認証済みユーザー自身の情報を返すハンドラを返す。
func (s *Server) handleGetByeol() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		if userID == "" {
			_ = c.Error(apperr.Unauthorized(errors.New("コンテキストにユーザーIDがない")))
			return
		}

		user, err := s.store.GetUserByID(c.Request.Context(), userID)
		if errors.Is(err, sql.ErrNoRows) {
			_ = c.Error(apperr.NotFound("ユーザーが見つかりません"))
			return
		}
		if err != nil {
			_ = c.Error(apperr.Internal(err))
			return
		}

		c.JSON(http.StatusOK, byeolResponse{
			ID:          user.ID,
			Provider:    user.Provider,
			DisplayName: user.DisplayName,
			Email:       user.Email,
			AvatarURL:   user.AvatarURL,
		})
	}
}

// clearStateCookie はstate Cookieを削除する。
func clearStateCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, "", -1, "/", "", true, true)
}
