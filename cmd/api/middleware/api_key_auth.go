package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"devpress/cmd/internal/logger"
)

const headerAPIKey = "x-api-key"

// APIKeyAuth 는 관리자 라우트의 x-api-key 헤더를 공유 시크릿과 비교한다.
// 키가 서버에 설정돼 있지 않으면 모든 요청을 거부한다.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(headerAPIKey)
		if apiKey == "" || provided == "" ||
			subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			logger.Log.Warnf("unauthorized admin request: method=%s path=%s", c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}
