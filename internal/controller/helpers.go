package controller

import (
	"stackit_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// pathID 解析 :id，非法时直接返回 404
func pathID(ctx *gin.Context) (uint, bool) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return 0, false
	}
	return id, true
}

// currentUserID 认证中间件之后调用，缺失时返回 401
func currentUserID(ctx *gin.Context) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return 0, false
	}
	return claims.UserID, true
}

func bind(ctx *gin.Context, obj interface{}) bool {
	if err := util.BindJSON(ctx, obj); err != nil {
		util.HandleError(ctx, err)
		return false
	}
	return true
}
