package controller

import (
	"strconv"

	"acadlinker_backend/internal/service"
	"acadlinker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// @Summary 通知列表
// @Description 返回全部通知并把未读的置为已读
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	list, err := c.NotificationService.List(me.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary 未读数量
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/notifications/unread_count [get]
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	count, err := c.NotificationService.UnreadCount(me.UserID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"count": count})
}

// @Summary 标记单条已读
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Param id path int true "通知ID"
// @Success 200 {object} util.Response
// @Router /api/notifications/mark_read/{id} [patch]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "非法的通知ID")
		return
	}
	if err := c.NotificationService.MarkRead(me.UserID, uint(id)); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"read": true})
}

// @Summary 删除通知
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Param id path int true "通知ID"
// @Success 200 {object} util.Response
// @Router /api/notifications/delete/{id} [delete]
func (c *NotificationController) Delete(ctx *gin.Context) {
	me := util.GetIdentity(ctx)
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "非法的通知ID")
		return
	}
	if err := c.NotificationService.Delete(me.UserID, uint(id)); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
