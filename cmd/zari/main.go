// zariサービスのエントリポイント。
// OAuth認証（GitHub/Google）によるサインイン、セッションCookieの発行、
// byeol（ユーザー）リソースとzodiac（黄道十二宮）参照リソースの提供を担当する。
package main

import (
	"log"

	"github.com/nao1215/zari/internal/config"
	"github.com/nao1215/zari/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("zariサーバーの初期化に失敗: %v", err)
	}

	log.Printf("zariサービスを起動します: :%s", cfg.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("zariサービスの起動に失敗: %v", err)
	}
}
