package controller

import (
	"stackit_backend/internal/repository"
	"stackit_backend/internal/service"
	"stackit_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// @Summary 问题列表
// @Description 最新在前，可按标签名或作者用户名筛选
// @Tags 问题
// @Produce json
// @Param tag query string false "标签名"
// @Param author query string false "作者用户名"
// @Success 200 {array} service.QuestionResponse
// @Router /questions/ [get]
func (c *QuestionController) List(ctx *gin.Context) {
	filter := repository.QuestionFilter{
		Tag:    ctx.Query("tag"),
		Author: ctx.Query("author"),
	}
	questions, err := c.QuestionService.List(filter)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// @Summary 问题详情
// @Description 包含标签与全部回答（最新在前）
// @Tags 问题
// @Produce json
// @Param id path int true "问题ID"
// @Success 200 {object} service.QuestionResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /questions/{id}/ [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	question, err := c.QuestionService.Get(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary 提问
// @Description 作者为当前登录用户；不存在的标签会自动创建
// @Tags 问题
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question body service.QuestionRequest true "问题内容"
// @Success 201 {object} service.QuestionResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 401 {object} util.ErrorResponse
// @Router /questions/ [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req service.QuestionRequest
	if !bind(ctx, &req) {
		return
	}
	question, err := c.QuestionService.Create(userID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// @Summary 更新问题
// @Description 全量更新，tags 整体替换
// @Tags 问题
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "问题ID"
// @Param question body service.QuestionRequest true "问题内容"
// @Success 200 {object} service.QuestionResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /questions/{id}/ [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.QuestionRequest
	if !bind(ctx, &req) {
		return
	}
	question, err := c.QuestionService.Update(id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary 部分更新问题
// @Tags 问题
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "问题ID"
// @Param question body service.QuestionPatchRequest true "需要修改的字段"
// @Success 200 {object} service.QuestionResponse
// @Router /questions/{id}/ [patch]
func (c *QuestionController) Patch(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.QuestionPatchRequest
	if !bind(ctx, &req) {
		return
	}
	question, err := c.QuestionService.Patch(id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary 删除问题
// @Description 级联删除回答、投票与标签关联
// @Tags 问题
// @Security BearerAuth
// @Param id path int true "问题ID"
// @Success 204
// @Failure 404 {object} util.ErrorResponse
// @Router /questions/{id}/ [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.QuestionService.Delete(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
