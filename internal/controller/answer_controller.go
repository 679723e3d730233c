package controller

import (
	"stackit_backend/internal/service"
	"stackit_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnswerController struct {
	AnswerService *service.AnswerService
}

func NewAnswerController(answerService *service.AnswerService) *AnswerController {
	return &AnswerController{AnswerService: answerService}
}

// @Summary 回答列表
// @Tags 回答
// @Produce json
// @Param question query int false "问题ID"
// @Success 200 {array} service.AnswerResponse
// @Router /answers/ [get]
func (c *AnswerController) List(ctx *gin.Context) {
	questionID := util.MustParseUint(ctx.Query("question"))
	if ctx.Query("question") != "" && questionID == 0 {
		util.Success(ctx, []service.AnswerResponse{})
		return
	}
	answers, err := c.AnswerService.List(questionID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, answers)
}

// @Summary 回答详情
// @Tags 回答
// @Produce json
// @Param id path int true "回答ID"
// @Success 200 {object} service.AnswerResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /answers/{id}/ [get]
func (c *AnswerController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	answer, err := c.AnswerService.Get(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// @Summary 回答问题
// @Description 通知问题作者以及正文中 @ 到的用户；通知失败不影响回答创建
// @Tags 回答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param answer body service.AnswerRequest true "回答内容"
// @Success 201 {object} service.AnswerResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 401 {object} util.ErrorResponse
// @Router /answers/ [post]
func (c *AnswerController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req service.AnswerRequest
	if !bind(ctx, &req) {
		return
	}
	answer, err := c.AnswerService.Create(ctx.Request.Context(), userID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, answer)
}

// @Summary 更新回答
// @Tags 回答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "回答ID"
// @Param answer body service.AnswerRequest true "回答内容"
// @Success 200 {object} service.AnswerResponse
// @Router /answers/{id}/ [put]
func (c *AnswerController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.AnswerRequest
	if !bind(ctx, &req) {
		return
	}
	answer, err := c.AnswerService.Update(id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// @Summary 部分更新回答
// @Tags 回答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "回答ID"
// @Param answer body service.AnswerPatchRequest true "需要修改的字段"
// @Success 200 {object} service.AnswerResponse
// @Router /answers/{id}/ [patch]
func (c *AnswerController) Patch(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.AnswerPatchRequest
	if !bind(ctx, &req) {
		return
	}
	answer, err := c.AnswerService.Patch(id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// @Summary 删除回答
// @Tags 回答
// @Security BearerAuth
// @Param id path int true "回答ID"
// @Success 204
// @Router /answers/{id}/ [delete]
func (c *AnswerController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.AnswerService.Delete(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// @Summary 采纳回答
// @Description 只有问题作者可以采纳
// @Tags 回答
// @Produce json
// @Security BearerAuth
// @Param id path int true "回答ID"
// @Success 200 {object} util.StatusResponse
// @Failure 403 {object} util.ErrorResponse "不是问题作者"
// @Failure 404 {object} util.ErrorResponse
// @Router /answers/{id}/accept/ [post]
func (c *AnswerController) Accept(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.AnswerService.Accept(id, userID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.StatusResponse{Status: "Answer accepted"})
}
