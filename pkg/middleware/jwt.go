package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nao1215/zari/pkg/apperr"
)

// SessionClaims はセッショントークンのクレーム（ペイロード）を表す。
// SubjectにはプロバイダのIDではなく、zariが割り当てたローカルユーザーIDを格納する。
type SessionClaims struct {
	jwt.RegisteredClaims
	// Provider は認証に使用した外部プロバイダ名。
	Provider string `json:"provider"`
	// DisplayName はユーザーの表示名。
	DisplayName string `json:"display_name"`
}

// sessionTokenIssuer はセッショントークンのIssuerクレーム値。
const sessionTokenIssuer = "zari"

// SessionTokenMaxAge はセッショントークンとセッションCookieの有効期間。
const SessionTokenMaxAge = 7 * 24 * time.Hour

// contextKeyUserID はGinコンテキストに認証済みユーザーIDを格納するキー。
const contextKeyUserID = "user_id"

// contextKeyProvider はGinコンテキストに認証プロバイダ名を格納するキー。
const contextKeyProvider = "provider"

// GenerateSessionToken はローカルユーザーIDからセッショントークンを生成する。
// OAuth認証コールバックでユーザー登録が完了した後に呼び出す。
func GenerateSessionToken(secret, userID, provider, displayName string) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTokenMaxAge)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    sessionTokenIssuer,
		},
		Provider:    provider,
		DisplayName: displayName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("セッショントークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// ParseSessionToken はセッショントークンを検証してクレームを返す。
// 署名不一致・改ざん・期限切れの場合はエラーを返す。
func ParseSessionToken(secret, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("セッショントークンの検証に失敗: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("セッショントークンが無効")
	}
	return claims, nil
}

// IssueSessionCookie はセッショントークンをCookieとしてレスポンスに設定する。
// httpOnly・secure・SameSite=Strict・有効期間7日は認証の前提条件であり変更しない。
func IssueSessionCookie(c *gin.Context, name, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, token, int(SessionTokenMaxAge.Seconds()), "/", "", true, true)
}

// ClearSessionCookie はセッションCookieを削除する。
func ClearSessionCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, "", -1, "/", "", true, true)
}

// SessionGate はセッションCookieを検証するGinミドルウェアを返す。
// 保護対象は全てのPOST/PUT/DELETEリクエストと GET /api/byeol のみで、
// その他のGETリクエストは認証なしで通過する（意図した仕様であり見落としではない）。
// 検証に成功するとコンテキストへユーザーIDとプロバイダ名を設定し、
// 失敗するとセッションCookieを削除して401をディスパッチする。
func SessionGate(secret, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requiresSession(c.Request.Method, c.Request.URL.Path) {
			c.Next()
			return
		}

		tokenString, err := c.Cookie(cookieName)
		if err != nil {
			abortUnauthorized(c, cookieName, fmt.Errorf("セッションCookieがない: %w", err))
			return
		}

		claims, err := ParseSessionToken(secret, tokenString)
		if err != nil {
			abortUnauthorized(c, cookieName, err)
			return
		}

		c.Set(contextKeyUserID, claims.Subject)
		c.Set(contextKeyProvider, claims.Provider)
		c.Next()
	}
}

// requiresSession は認証が必要なリクエストかどうかを判定する。
func requiresSession(method, path string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	case http.MethodGet:
		return path == "/api/byeol"
	default:
		return false
	}
}

// abortUnauthorized はセッションCookieを削除し、401エラーをディスパッチして
// 後続のハンドラを中断する。
func abortUnauthorized(c *gin.Context, cookieName string, err error) {
	ClearSessionCookie(c, cookieName)
	_ = c.Error(apperr.Unauthorized(err))
	c.Abort()
}

// UserID はGinコンテキストから認証済みユーザーIDを取得する。
// SessionGateミドルウェアが事前に適用されている必要がある。
func UserID(c *gin.Context) string {
	v, _ := c.Get(contextKeyUserID)
	if id, ok := v.(string); ok {
		return id
	}
	return ""
}

// Provider はGinコンテキストから認証プロバイダ名を取得する。
func Provider(c *gin.Context) string {
	v, _ := c.Get(contextKeyProvider)
	if p, ok := v.(string); ok {
		return p
	}
	return ""
}
