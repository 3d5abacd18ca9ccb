package store

import (
	"context"
	"database/sql"
	"fmt"
)

// User はzariに登録されたユーザー（byeol）の永続化レコード。
// (Provider, ProviderID) の組で一意に識別される。作成後に変更されるのは
// LastLoginAtのみで、このサブシステムから削除されることはない。
type User struct {
	// ID はサーバーが割り当てる一意のユーザーID。
	ID string
	// Provider は認証に使用した外部プロバイダ名。
	Provider string
	// ProviderID はプロバイダ内で一意のユーザーID。
	ProviderID string
	// Email はメールアドレス。
	Email string
	// DisplayName は表示名。
	DisplayName string
	// AvatarURL はアバター画像URL。
	AvatarURL string
	// CreatedAt は作成日時。
	CreatedAt string
	// LastLoginAt は最終ログイン日時。
	LastLoginAt string
}

// CreateUserParams はユーザー作成のパラメータ。
type CreateUserParams struct {
	// ID はサーバーが割り当てる一意のユーザーID。
	ID string
	// Provider は認証に使用した外部プロバイダ名。
	Provider string
	// ProviderID はプロバイダ内で一意のユーザーID。
	ProviderID string
	// Email はメールアドレス。
	Email string
	// DisplayName は表示名。
	DisplayName string
	// AvatarURL はアバター画像URL。
	AvatarURL string
}

// CreateUser はユーザーを作成する。
// (provider, provider_user_id) が既に存在する場合は一意制約により何もしない。
// 同一IDへの同時初回ログインが競合しても重複レコードは生まれない。
func (s *Store) CreateUser(ctx context.Context, p CreateUserParams) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, provider, provider_user_id, email, display_name, avatar_url)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(provider, provider_user_id) DO NOTHING
	`, p.ID, p.Provider, p.ProviderID, p.Email, p.DisplayName, p.AvatarURL)
	if err != nil {
		return fmt.Errorf("ユーザーの作成に失敗: %w", err)
	}
	return nil
}

// UserExists は(provider, providerID)のユーザーが存在するかどうかを返す。
func (s *Store) UserExists(ctx context.Context, providerName, providerID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM users WHERE provider = ? AND provider_user_id = ?
	`, providerName, providerID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("ユーザーの存在確認に失敗: %w", err)
	}
	return count > 0, nil
}

// GetUserByProvider は(provider, providerID)でユーザーを取得する。
// 存在しない場合はsql.ErrNoRowsを返す。
func (s *Store) GetUserByProvider(ctx context.Context, providerName, providerID string) (User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, provider, provider_user_id, email, display_name, avatar_url, created_at, last_login_at
		FROM users
		WHERE provider = ? AND provider_user_id = ?
	`, providerName, providerID)
	return scanUser(row)
}

// GetUserByID はローカルユーザーIDでユーザーを取得する。
// 存在しない場合はsql.ErrNoRowsを返す。
func (s *Store) GetUserByID(ctx context.Context, id string) (User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, provider, provider_user_id, email, display_name, avatar_url, created_at, last_login_at
		FROM users
		WHERE id = ?
	`, id)
	return scanUser(row)
}

// TouchLastLogin は最終ログイン日時を現在時刻に更新する。
func (s *Store) TouchLastLogin(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET last_login_at = datetime('now') WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("最終ログイン日時の更新に失敗: %w", err)
	}
	return nil
}

// scanUser は1行分のユーザーレコードを読み取る。
func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Provider, &u.ProviderID, &u.Email, &u.DisplayName, &u.AvatarURL, &u.CreatedAt, &u.LastLoginAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}
