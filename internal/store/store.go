// Package store はzariサーバーの永続化層を提供する。
//
// SQLiteを使用し、ユーザー（byeol）の登録・参照と、
// 黄道十二宮（zodiac）参照テーブルの読み取りを行う。
// スキーマはembedされたSQLマイグレーションで管理する。
package store

import (
	"database/sql"
	"embed"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/nao1215/zari/pkg/migration"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store はSQLiteベースの永続化層。
type Store struct {
	// db はSQLiteデータベース接続。
	db *sql.DB
}

// New は指定パスのSQLiteデータベースを開き、マイグレーションを適用する。
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	return NewWithDB(db)
}

// NewWithDB は既存のデータベース接続からStoreを生成する。
// インメモリSQLiteを使うテストでも使用する。
func NewWithDB(db *sql.DB) (*Store, error) {
	if err := migration.Run(db, migrationFS, "migrations"); err != nil {
		return nil, fmt.Errorf("マイグレーションの適用に失敗: %w", err)
	}
	return &Store{db: db}, nil
}

// Close はデータベース接続を閉じる。
func (s *Store) Close() error {
	return s.db.Close()
}
