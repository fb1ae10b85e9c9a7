package controller

import (
	"acadlinker_backend/internal/service"
	"acadlinker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SearchController struct {
	UserService       *service.UserService
	SuggestionService *service.SuggestionService
}

func NewSearchController(userService *service.UserService, suggestionService *service.SuggestionService) *SearchController {
	return &SearchController{
		UserService:       userService,
		SuggestionService: suggestionService,
	}
}

// @Summary 全局搜索用户
// @Description 按姓名/邮箱/技能搜索，结果不含自己
// @Tags 搜索
// @Produce json
// @Security BearerAuth
// @Param q query string true "关键字"
// @Success 200 {object} util.Response
// @Router /api/search [get]
func (c *SearchController) Search(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	query := ctx.Query("q")
	if query == "" {
		util.BadRequest(ctx, "关键字不能为空")
		return
	}
	results, err := c.UserService.Search(me.UserID, query)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// @Summary 好友推荐
// @Description 基于技能与所在地相似度的推荐
// @Tags 搜索
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/suggestions [get]
func (c *SearchController) Suggestions(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	suggestions, err := c.SuggestionService.Suggest(me.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, suggestions)
}
