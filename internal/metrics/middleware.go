package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// unmatchedRoute はどのルートにも一致しなかったリクエストのラベル。
// 生のパスはラベルにしない。
const unmatchedRoute = "unmatched"

// Middleware はリクエスト数と処理時間を記録するGinミドルウェアを返す。
// ルートラベルには登録済みのルートパターン（例: /restaurants/details/:id）を使う。
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		method := c.Request.Method
		RequestTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
