package controller

import (
	"acadlinker_backend/internal/service"
	"acadlinker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	PostService *service.PostService
}

func NewPostController(postService *service.PostService) *PostController {
	return &PostController{PostService: postService}
}

// @Summary 发布动态
// @Tags 动态
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param description formData string false "内容"
// @Param file formData file false "附件"
// @Success 201 {object} util.Response
// @Router /api/posts/create [post]
func (c *PostController) Create(ctx *gin.Context) {
	me := util.GetIdentity(ctx)

	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "标题不能为空")
		return
	}
	description := ctx.PostForm("description")
	file, _ := ctx.FormFile("file")

	post, err := c.PostService.Create(ctx.Request.Context(), me.UserID, title, description, file)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, post)
}

// @Summary 我的动态
// @Tags 动态
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/posts/my [get]
func (c *PostController) MyPosts(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	posts, err := c.PostService.MyPosts(me.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}

// @Summary 首页信息流
// @Description 自己和好友的动态，按时间倒序
// @Tags 动态
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/posts/home [get]
func (c *PostController) HomeFeed(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	posts, err := c.PostService.HomeFeed(me.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}
