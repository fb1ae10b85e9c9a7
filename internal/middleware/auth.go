package middleware

import (
	"fmt"
	"strings"

	"acadlinker_backend/internal/service"
	"acadlinker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 提取 Bearer 令牌并交给 AuthService 校验，
// 通过后把请求者身份注入上下文
func AuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if token == "" {
			util.Unauthorized(c, "缺少访问令牌")
			c.Abort()
			return
		}

		identity, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			// 401 里带上校验失败的具体原因
			util.Unauthorized(c, fmt.Sprintf("令牌校验失败: %v", err))
			c.Abort()
			return
		}

		util.SetIdentity(c, identity)
		c.Next()
	}
}
