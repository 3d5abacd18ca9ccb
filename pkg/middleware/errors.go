package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/zari/pkg/apperr"
)

// ErrorDispatch はハンドラが添付したエラーをHTTPレスポンスへ変換する
// Ginミドルウェアを返す。エラーの詳細はサーバー側のログにのみ出力し、
// クライアントにはステータスコードと短いメッセージだけを返す。
func ErrorDispatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := apperr.From(c.Errors[0].Err)
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, appErr)
		c.JSON(appErr.HTTPStatus(), gin.H{"error": appErr.Message})
	}
}

// NotFoundHandler は未登録ルートに404を返すハンドラを返す。
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "ページが見つかりません"})
	}
}
