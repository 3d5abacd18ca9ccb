package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/zari/internal/config"
	"github.com/nao1215/zari/internal/provider"
	"github.com/nao1215/zari/internal/store"
	"github.com/nao1215/zari/pkg/middleware"
)

// Server はzariサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// cfg はサーバー設定。
	cfg *config.Config
	// store はSQLite永続化層。
	store *store.Store
	// providers は登録順の認証プロバイダ一覧。
	providers []provider.Provider
}

// New は新しいzariサーバーを生成する。
// SQLiteデータベースの初期化とマイグレーションの適用を行う。
func New(cfg *config.Config) (*Server, error) {
	st, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("ストアの初期化に失敗: %w", err)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS([]string{cfg.FrontendURL}))

	s := &Server{
		router:    router,
		cfg:       cfg,
		store:     st,
		providers: provider.NewRegistry(cfg),
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.cfg.Port))
}

// setupRoutes はAPIルーティングを設定する。
// SessionGateは保護対象のハンドラより先に評価される必要があるため、
// エラーディスパッチと共にルート登録より前へエンジン全体に適用する。
// 未登録パスへのPOST/PUT/DELETEもゲートを通るので、404より先に401が返る。
func (s *Server) setupRoutes() {
	s.router.Use(middleware.ErrorDispatch())
	s.router.Use(middleware.SessionGate(s.cfg.JWTSecret, s.cfg.CookieName))

	// 認証エンドポイント（認証不要）
	s.router.GET("/api/auth", s.handleAuthProviders())
	for _, p := range s.providers {
		s.router.GET("/auth/"+p.Name(), s.handleLogin(p))
		s.router.GET("/auth/"+p.Name()+"/callback", s.handleCallback(p))
	}

	// 保護リソース（SessionGateを通過したリクエストのみ到達する）
	s.router.GET("/api/byeol", s.handleGetByeol())

	// 参照リソース（認証不要）
	s.router.GET("/api/zodiac", s.handleListZodiacs())
	s.router.GET("/api/zodiac/:id", s.handleGetZodiac())

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "zari"})
	})

	s.router.NoRoute(middleware.NotFoundHandler())
}
