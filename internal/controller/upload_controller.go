package controller

import (
	"errors"
	"net/http"

	"stackit_backend/internal/service"
	"stackit_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	StorageService *service.StorageService
}

func NewUploadController(storageService *service.StorageService) *UploadController {
	return &UploadController{StorageService: storageService}
}

// @Summary 上传图片
// @Description 富文本编辑器插入图片，返回可访问的 URL
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "图片文件"
// @Success 201 {object} service.UploadResponse
// @Failure 400 {object} util.ErrorResponse
// @Router /uploads/images/ [post]
func (c *UploadController) UploadImage(ctx *gin.Context) {
	if _, ok := currentUserID(ctx); !ok {
		return
	}

	// 多留 1MB 给表单其他部分
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.StorageService.MaxFileSize+(1<<20))

	fh, err := ctx.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			util.HandleError(ctx, util.NewValidationError("file", "The submitted file is too large."))
			return
		}
		util.HandleError(ctx, util.NewValidationError("file", "No file was submitted."))
		return
	}

	resp, err := c.StorageService.UploadImage(ctx.Request.Context(), fh)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, resp)
}
