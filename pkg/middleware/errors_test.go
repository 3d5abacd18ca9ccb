package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/zari/pkg/apperr"
)

// TestErrorDispatch はエラーディスパッチミドルウェアを検証する。
func TestErrorDispatch(t *testing.T) {
	t.Parallel()

	t.Run("型付きエラーが対応するステータスとメッセージに変換されること", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name       string
			err        error
			wantStatus int
			wantMsg    string
		}{
			{name: "Unauthorizedは401", err: apperr.Unauthorized(errors.New("expired")), wantStatus: http.StatusUnauthorized, wantMsg: "認証が必要です"},
			{name: "AuthProviderは502", err: apperr.AuthProvider(errors.New("exchange")), wantStatus: http.StatusBadGateway, wantMsg: "認証プロバイダとの通信に失敗しました"},
			{name: "NotFoundは404", err: apperr.NotFound("データが見つかりません"), wantStatus: http.StatusNotFound, wantMsg: "データが見つかりません"},
			{name: "分類されないエラーは500", err: errors.New("plain failure"), wantStatus: http.StatusInternalServerError, wantMsg: "内部サーバーエラーが発生しました"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				router := gin.New()
				router.Use(ErrorDispatch())
				router.GET("/fail", func(c *gin.Context) {
					_ = c.Error(tt.err)
				})

				req := httptest.NewRequest(http.MethodGet, "/fail", nil)
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				if w.Code != tt.wantStatus {
					t.Errorf("ステータスコード = %d, want %d", w.Code, tt.wantStatus)
				}

				var body map[string]string
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("レスポンスボディのパースに失敗: %v", err)
				}
				if body["error"] != tt.wantMsg {
					t.Errorf("error = %q, want %q", body["error"], tt.wantMsg)
				}
			})
		}
	})

	t.Run("エラーの詳細がクライアントに漏れないこと", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(ErrorDispatch())
		router.GET("/fail", func(c *gin.Context) {
			_ = c.Error(apperr.Internal(errors.New("秘密の内部情報")))
		})

		req := httptest.NewRequest(http.MethodGet, "/fail", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("レスポンスボディのパースに失敗: %v", err)
		}
		if body["error"] != "内部サーバーエラーが発生しました" {
			t.Errorf("error = %q, 内部情報を含んではならない", body["error"])
		}
	})

	t.Run("ハンドラが既にレスポンスを書いた場合は上書きしないこと", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(ErrorDispatch())
		router.GET("/written", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			_ = c.Error(errors.New("after write"))
		})

		req := httptest.NewRequest(http.MethodGet, "/written", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("エラーが無い場合は何もしないこと", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(ErrorDispatch())
		router.GET("/ok", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
	})
}

// TestNotFoundHandler は未登録ルートの404ハンドラを検証する。
func TestNotFoundHandler(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.NoRoute(NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/no/such/page", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusNotFound)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("レスポンスボディのパースに失敗: %v", err)
	}
	if body["error"] != "ページが見つかりません" {
		t.Errorf("error = %q, want %q", body["error"], "ページが見つかりません")
	}
}
