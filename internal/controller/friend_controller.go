package controller

import (
	"strconv"

	"acadlinker_backend/internal/service"
	"acadlinker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FriendController struct {
	FriendshipService *service.FriendshipService
}

func NewFriendController(friendshipService *service.FriendshipService) *FriendController {
	return &FriendController{FriendshipService: friendshipService}
}

// @Summary 发送好友申请
// @Tags 好友
// @Produce json
// @Security BearerAuth
// @Param userId path string true "对方用户ID"
// @Success 200 {object} util.Response
// @Router /api/friends/send/{userId} [post]
func (c *FriendController) SendRequest(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	if err := c.FriendshipService.SendRequest(me.UserID, ctx.Param("userId")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"sent": true})
}

// @Summary 我收到的好友申请
// @Tags 好友
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/friends/requests [get]
func (c *FriendController) PendingRequests(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	reqs, err := c.FriendshipService.PendingRequests(me.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, reqs)
}

// @Summary 接受好友申请
// @Tags 好友
// @Produce json
// @Security BearerAuth
// @Param reqId path int true "申请ID"
// @Success 200 {object} util.Response
// @Router /api/friends/accept/{reqId} [post]
func (c *FriendController) AcceptRequest(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	id, err := strconv.ParseUint(ctx.Param("reqId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "非法的申请ID")
		return
	}
	if err := c.FriendshipService.AcceptRequest(me.UserID, uint(id)); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"accepted": true})
}

// @Summary 拒绝好友申请
// @Tags 好友
// @Produce json
// @Security BearerAuth
// @Param reqId path int true "申请ID"
// @Success 200 {object} util.Response
// @Router /api/friends/reject/{reqId} [post]
func (c *FriendController) RejectRequest(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	id, err := strconv.ParseUint(ctx.Param("reqId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "非法的申请ID")
		return
	}
	if err := c.FriendshipService.RejectRequest(me.UserID, uint(id)); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"rejected": true})
}

// @Summary 解除好友关系
// @Tags 好友
// @Produce json
// @Security BearerAuth
// @Param userId path string true "好友用户ID"
// @Success 200 {object} util.Response
// @Router /api/friends/remove/{userId} [post]
func (c *FriendController) RemoveFriend(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	if err := c.FriendshipService.RemoveFriend(me.UserID, ctx.Param("userId")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"removed": true})
}

// @Summary 好友列表
// @Tags 好友
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/friends/list [get]
func (c *FriendController) List(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	friends, err := c.FriendshipService.Friends(me.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, friends)
}

// @Summary 在好友中搜索
// @Tags 好友
// @Produce json
// @Security BearerAuth
// @Param q query string false "关键字"
// @Success 200 {object} util.Response
// @Router /api/friends/search [get]
func (c *FriendController) Search(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	friends, err := c.FriendshipService.SearchFriends(me.UserID, ctx.Query("q"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, friends)
}
