package controller

import (
	"acadlinker_backend/internal/service"
	"acadlinker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	UserService *service.UserService
	PostService *service.PostService
}

func NewProfileController(userService *service.UserService, postService *service.PostService) *ProfileController {
	return &ProfileController{UserService: userService, PostService: postService}
}

// @Summary 查看用户主页
// @Description 非好友访客看不到邮箱和手机号
// @Tags 主页
// @Produce json
// @Security BearerAuth
// @Param userId path string true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/profile/{userId} [get]
func (c *ProfileController) Profile(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	view, err := c.UserService.Profile(me.UserID, ctx.Param("userId"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 某用户的动态
// @Tags 主页
// @Produce json
// @Security BearerAuth
// @Param userId path string true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/profile/{userId}/posts [get]
func (c *ProfileController) UserPosts(ctx *gin.Context) {
	posts, err := c.PostService.UserPosts(ctx.Param("userId"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}

// @Summary 编辑个人资料
// @Tags 主页
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param fullName formData string false "姓名"
// @Param mobileNo formData string false "手机号"
// @Param location formData string false "所在地"
// @Param description formData string false "个人简介"
// @Param skills formData string false "技能（逗号分隔）"
// @Param education formData string false "教育经历"
// @Param profilePic formData file false "头像"
// @Param coverPhoto formData file false "封面图"
// @Success 200 {object} util.Response
// @Router /api/profile/edit [put]
func (c *ProfileController) Edit(ctx *gin.Context) {
	me := util.GetIdentity(ctx)

	in := service.EditProfileInput{
		FullName:    ctx.PostForm("fullName"),
		MobileNo:    ctx.PostForm("mobileNo"),
		Location:    ctx.PostForm("location"),
		Description: ctx.PostForm("description"),
		Skills:      ctx.PostForm("skills"),
		Education:   ctx.PostForm("education"),
	}
	if f, err := ctx.FormFile("profilePic"); err == nil {
		in.ProfilePic = f
	}
	if f, err := ctx.FormFile("coverPhoto"); err == nil {
		in.CoverPhoto = f
	}

	user, err := c.UserService.EditProfile(ctx.Request.Context(), me.UserID, in)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
