package controller

import (
	"strconv"

	"acadlinker_backend/internal/service"
	"acadlinker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HelpController struct {
	HelpService *service.HelpService
}

func NewHelpController(helpService *service.HelpService) *HelpController {
	return &HelpController{HelpService: helpService}
}

// @Summary 发布求助
// @Description 同一用户同时只能有一条进行中的求助，报错截图必传
// @Tags 求助
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param description formData string true "问题描述"
// @Param github_link formData string false "相关仓库链接"
// @Param tags formData string true "标签（逗号分隔）"
// @Param image formData file true "报错截图"
// @Success 201 {object} util.Response
// @Router /api/help/request [post]
func (c *HelpController) Create(ctx *gin.Context) {
	me := util.GetIdentity(ctx)

	in := service.CreateHelpInput{
		Title:       ctx.PostForm("title"),
		Description: ctx.PostForm("description"),
		GithubLink:  ctx.PostForm("github_link"),
		Tags:        ctx.PostForm("tags"),
	}
	if in.Title == "" || in.Description == "" || in.Tags == "" {
		util.BadRequest(ctx, "标题、描述和标签不能为空")
		return
	}
	if f, err := ctx.FormFile("image"); err == nil {
		in.Image = f
	}

	req, err := c.HelpService.Create(ctx.Request.Context(), me.UserID, in)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, req)
}

// @Summary 求助广场
// @Description 他人的进行中求助，最多 20 条
// @Tags 求助
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/help/feed [get]
func (c *HelpController) Feed(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	feed, err := c.HelpService.Feed(me.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, feed)
}

// @Summary 求助详情
// @Tags 求助
// @Produce json
// @Security BearerAuth
// @Param id path int true "求助ID"
// @Success 200 {object} util.Response
// @Router /api/help/{id} [get]
func (c *HelpController) Detail(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "非法的求助ID")
		return
	}
	detail, err := c.HelpService.Detail(me.UserID, uint(id))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

type solveRequest struct {
	Content     string `json:"content" binding:"required"`
	CodeSnippet string `json:"codeSnippet"`
}

// @Summary 提交解答
// @Tags 求助
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "求助ID"
// @Param solution body solveRequest true "解答内容"
// @Success 201 {object} util.Response
// @Router /api/help/{id}/solve [post]
func (c *HelpController) Solve(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "非法的求助ID")
		return
	}

	var req solveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sol, err := c.HelpService.Solve(me.UserID, uint(id), req.Content, req.CodeSnippet)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, sol)
}

// @Summary 采纳解答
// @Description 仅求助发布者可采纳，采纳后求助转已解决，解答者 +10 声望
// @Tags 求助
// @Produce json
// @Security BearerAuth
// @Param id path int true "解答ID"
// @Success 200 {object} util.Response
// @Router /api/help/solution/{id}/accept [post]
func (c *HelpController) AcceptSolution(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "非法的解答ID")
		return
	}
	if err := c.HelpService.AcceptSolution(me.UserID, uint(id)); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"accepted": true})
}
