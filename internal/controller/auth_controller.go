package controller

import (
	"stackit_backend/internal/service"
	"stackit_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary 注册新用户
// @Description 用户名唯一，密码以 bcrypt 哈希保存，不会出现在响应中
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.RegisterRequest true "用户注册信息"
// @Success 201 {object} service.UserResponse "创建成功"
// @Failure 400 {object} util.ErrorResponse "请求参数错误或用户名已存在"
// @Router /auth/register/ [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if !bind(ctx, &req) {
		return
	}

	user, err := c.AuthService.Register(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, user)
}

// CurrentUser godoc
// @Summary 获取当前用户
// @Tags 认证
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} service.UserResponse
// @Failure 401 {object} util.ErrorResponse "未认证"
// @Router /auth/user/ [get]
func (c *AuthController) CurrentUser(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	user, err := c.AuthService.CurrentUser(userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

// ObtainToken godoc
// @Summary 登录获取令牌
// @Description 返回 access 与 refresh 两个 JWT
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.LoginRequest true "用户名和密码"
// @Success 200 {object} service.TokenResponse
// @Failure 401 {object} util.ErrorResponse "用户名或密码错误"
// @Router /token/ [post]
func (c *AuthController) ObtainToken(ctx *gin.Context) {
	var req service.LoginRequest
	if !bind(ctx, &req) {
		return
	}

	tokens, err := c.AuthService.Login(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, tokens)
}

// RefreshToken godoc
// @Summary 刷新 access token
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.RefreshRequest true "refresh token"
// @Success 200 {object} service.TokenResponse
// @Failure 401 {object} util.ErrorResponse "refresh token 无效或已过期"
// @Router /token/refresh/ [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req service.RefreshRequest
	if !bind(ctx, &req) {
		return
	}

	tokens, err := c.AuthService.Refresh(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, tokens)
}
