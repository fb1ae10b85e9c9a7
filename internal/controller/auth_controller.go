package controller

import (
	"acadlinker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthController 登录注册在外部身份提供方完成，
// 这里只提供校验当前令牌状态的接口
type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

// @Summary 当前登录状态
// @Description 令牌有效时返回当前用户身份
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/auth/status [get]
func (c *AuthController) Status(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	util.Success(ctx, gin.H{
		"userId": me.UserID,
		"email":  me.Email,
	})
}
