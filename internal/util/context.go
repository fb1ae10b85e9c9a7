package util

import "github.com/gin-gonic/gin"

// Identity 身份中间件校验通过后注入请求上下文的用户身份
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

const identityKey = "identity"

func SetIdentity(c *gin.Context, id *Identity) {
	c.Set(identityKey, id)
}

func GetIdentity(c *gin.Context) *Identity {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	id, ok := v.(*Identity)
	if !ok {
		return nil
	}
	return id
}
