package controller

import (
	"stackit_backend/internal/service"
	"stackit_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

// @Summary 我的通知
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.NotificationResponse
// @Router /notifications/ [get]
func (c *NotificationController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	notifications, err := c.NotificationService.List(userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, notifications)
}

// @Summary 通知详情
// @Description 只能查看自己的通知
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Param id path int true "通知ID"
// @Success 200 {object} service.NotificationResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /notifications/{id}/ [get]
func (c *NotificationController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	notification, err := c.NotificationService.Get(id, userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, notification)
}

// @Summary 标记已读
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Param id path int true "通知ID"
// @Success 200 {object} util.StatusResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /notifications/{id}/mark_read/ [post]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.NotificationService.MarkRead(ctx.Request.Context(), id, userID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.StatusResponse{Status: "Marked as read"})
}

// @Summary 未读数量
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UnreadCountResponse
// @Router /notifications/unread-count/ [get]
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	count, err := c.NotificationService.UnreadCount(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, UnreadCountResponse{UnreadCount: count})
}
