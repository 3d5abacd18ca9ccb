package server

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/zari/internal/store"
	"github.com/nao1215/zari/pkg/apperr"
)

// zodiacResponse は宮のJSONレスポンス構造。
type zodiacResponse struct {
	// ID は宮のID。
	ID int64 `json:"id"`
	// Name は宮の名前。
	Name string `json:"name"`
	// StartDate は期間の開始日（MM-DD形式）。
	StartDate string `json:"start_date"`
	// EndDate は期間の終了日（MM-DD形式）。
	EndDate string `json:"end_date"`
}

// newZodiacResponse は永続化レコードからレスポンス構造を生成する。
func newZodiacResponse(z store.Zodiac) zodiacResponse {
	return zodiacResponse{
		ID:        z.ID,
		Name:      z.Name,
		StartDate: z.StartDate,
		EndDate:   z.EndDate,
	}
}

// handleListZodiacs は全ての宮を格納順に返すハンドラを返す。
func (s *Server) handleListZodiacs() gin.HandlerFunc {
	return func(c *gin.Context) {
		zodiacs, err := s.store.ListZodiacs(c.Request.Context())
		if err != nil {
			_ = c.Error(apperr.Internal(err))
			return
		}

		res := make([]zodiacResponse, 0, len(zodiacs))
		for _, z := range zodiacs {
			res = append(res, newZodiacResponse(z))
		}
		c.JSON(http.StatusOK, res)
	}
}

// handleGetZodiac はIDで1つの宮を返すハンドラを返す。
// 存在しないIDや数値でないIDは404として扱う（例外ではなく通常の結果）。
// ストレージ側の予期しない失敗のみ500へ変換する。
func (s *Server) handleGetZodiac() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			_ = c.Error(apperr.NotFound("データが見つかりません"))
			return
		}

		z, err := s.store.GetZodiacByID(c.Request.Context(), id)
		if errors.Is(err, sql.ErrNoRows) {
			_ = c.Error(apperr.NotFound("データが見つかりません"))
			return
		}
		if err != nil {
			_ = c.Error(apperr.Internal(err))
			return
		}

		c.JSON(http.StatusOK, newZodiacResponse(z))
	}
}
