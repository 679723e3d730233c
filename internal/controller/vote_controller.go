package controller

import (
	"stackit_backend/internal/service"
	"stackit_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type VoteController struct {
	VoteService *service.VoteService
}

func NewVoteController(voteService *service.VoteService) *VoteController {
	return &VoteController{VoteService: voteService}
}

// @Summary 投票列表
// @Tags 投票
// @Produce json
// @Param answer query int false "回答ID"
// @Success 200 {array} service.VoteResponse
// @Router /votes/ [get]
func (c *VoteController) List(ctx *gin.Context) {
	answerID := util.MustParseUint(ctx.Query("answer"))
	if ctx.Query("answer") != "" && answerID == 0 {
		util.Success(ctx, []service.VoteResponse{})
		return
	}
	votes, err := c.VoteService.List(answerID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, votes)
}

// @Summary 投票详情
// @Tags 投票
// @Produce json
// @Param id path int true "投票ID"
// @Success 200 {object} service.VoteResponse
// @Router /votes/{id}/ [get]
func (c *VoteController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	vote, err := c.VoteService.Get(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, vote)
}

// @Summary 投票
// @Description 投票人为当前登录用户，允许重复投票
// @Tags 投票
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vote body service.VoteRequest true "投票"
// @Success 201 {object} service.VoteResponse
// @Failure 401 {object} util.ErrorResponse
// @Router /votes/ [post]
func (c *VoteController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req service.VoteRequest
	if !bind(ctx, &req) {
		return
	}
	vote, err := c.VoteService.Create(userID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, vote)
}

// @Summary 修改投票
// @Tags 投票
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "投票ID"
// @Param vote body service.VoteRequest true "投票"
// @Success 200 {object} service.VoteResponse
// @Router /votes/{id}/ [put]
func (c *VoteController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.VoteRequest
	if !bind(ctx, &req) {
		return
	}
	vote, err := c.VoteService.Update(id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, vote)
}

// @Summary 部分修改投票
// @Tags 投票
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "投票ID"
// @Param vote body service.VotePatchRequest true "投票"
// @Success 200 {object} service.VoteResponse
// @Router /votes/{id}/ [patch]
func (c *VoteController) Patch(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.VotePatchRequest
	if !bind(ctx, &req) {
		return
	}
	vote, err := c.VoteService.Patch(id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, vote)
}

// @Summary 删除投票
// @Tags 投票
// @Security BearerAuth
// @Param id path int true "投票ID"
// @Success 204
// @Router /votes/{id}/ [delete]
func (c *VoteController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.VoteService.Delete(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
