package store

import (
	"context"
	"fmt"
)

// Zodiac は黄道十二宮の参照レコード。マイグレーションで投入される
// 静的な参照データであり、APIからの変更はできない。
type Zodiac struct {
	// ID は宮のID（1〜12）。
	ID int64
	// Name は宮の名前。
	Name string
	// StartDate は期間の開始日（MM-DD形式）。
	StartDate string
	// EndDate は期間の終了日（MM-DD形式）。
	EndDate string
}

// ListZodiacs は全ての宮を格納順に返す。
func (s *Store) ListZodiacs(ctx context.Context) ([]Zodiac, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, start_date, end_date FROM zodiacs ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("宮一覧の取得に失敗: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var zodiacs []Zodiac
	for rows.Next() {
		var z Zodiac
		if err := rows.Scan(&z.ID, &z.Name, &z.StartDate, &z.EndDate); err != nil {
			return nil, fmt.Errorf("宮レコードの読み取りに失敗: %w", err)
		}
		zodiacs = append(zodiacs, z)
	}
	return zodiacs, rows.Err()
}

// GetZodiacByID はIDで1つの宮を取得する。
// 存在しない場合はsql.ErrNoRowsを返す。
func (s *Store) GetZodiacByID(ctx context.Context, id int64) (Zodiac, error) {
	var z Zodiac
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, start_date, end_date FROM zodiacs WHERE id = ?
	`, id).Scan(&z.ID, &z.Name, &z.StartDate, &z.EndDate)
	if err != nil {
		return Zodiac{}, err
	}
	return z, nil
}
