package controller

import (
	"stackit_backend/internal/service"
	"stackit_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TagController struct {
	TagService *service.TagService
}

func NewTagController(tagService *service.TagService) *TagController {
	return &TagController{TagService: tagService}
}

// @Summary 标签列表
// @Tags 标签
// @Produce json
// @Success 200 {array} service.TagResponse
// @Router /tags/ [get]
func (c *TagController) List(ctx *gin.Context) {
	tags, err := c.TagService.List()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, tags)
}

// @Summary 标签详情
// @Tags 标签
// @Produce json
// @Param id path int true "标签ID"
// @Success 200 {object} service.TagResponse
// @Router /tags/{id}/ [get]
func (c *TagController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	tag, err := c.TagService.Get(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, tag)
}

// @Summary 创建标签
// @Tags 标签
// @Accept json
// @Produce json
// @Param tag body service.TagRequest true "标签"
// @Success 201 {object} service.TagResponse
// @Failure 400 {object} util.ErrorResponse "名称为空或已存在"
// @Router /tags/ [post]
func (c *TagController) Create(ctx *gin.Context) {
	var req service.TagRequest
	if !bind(ctx, &req) {
		return
	}
	tag, err := c.TagService.Create(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, tag)
}

// @Summary 修改标签
// @Tags 标签
// @Accept json
// @Produce json
// @Param id path int true "标签ID"
// @Param tag body service.TagRequest true "标签"
// @Success 200 {object} service.TagResponse
// @Router /tags/{id}/ [put]
func (c *TagController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.TagRequest
	if !bind(ctx, &req) {
		return
	}
	tag, err := c.TagService.Update(id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, tag)
}

// @Summary 部分修改标签
// @Tags 标签
// @Accept json
// @Produce json
// @Param id path int true "标签ID"
// @Param tag body service.TagPatchRequest true "标签"
// @Success 200 {object} service.TagResponse
// @Router /tags/{id}/ [patch]
func (c *TagController) Patch(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.TagPatchRequest
	if !bind(ctx, &req) {
		return
	}
	tag, err := c.TagService.Patch(id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, tag)
}

// @Summary 删除标签
// @Tags 标签
// @Param id path int true "标签ID"
// @Success 204
// @Router /tags/{id}/ [delete]
func (c *TagController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.TagService.Delete(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
