package app

import (
	"stackit_backend/docs"
	"stackit_backend/internal/config"
	"stackit_backend/internal/middleware"
	"stackit_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	auth := middleware.AuthMiddleware(cfg.JWT.Secret)

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(api, c)

	// 2. 账户
	a.registerAccountRoutes(api, c, auth)

	// 3. 问答资源：读公开，写需要登录
	a.registerQuestionRoutes(api, c, auth)
	a.registerAnswerRoutes(api, c, auth)
	a.registerTagRoutes(api, c)
	a.registerVoteRoutes(api, c, auth)

	// 4. 需要授权的路由
	authGroup := api.Group("")
	authGroup.Use(auth)
	{
		a.registerNotificationRoutes(authGroup, c)
		authGroup.POST("/uploads/images/", c.upload.UploadImage)
	}
}

func (a *App) registerPublicRoutes(api *gin.RouterGroup, c *controllers) {
	api.GET("/health/", c.health.HealthCheck)
}

func (a *App) registerAccountRoutes(api *gin.RouterGroup, c *controllers, auth gin.HandlerFunc) {
	api.POST("/auth/register/", c.auth.Register)
	api.GET("/auth/user/", auth, c.auth.CurrentUser)
	api.POST("/token/", c.auth.ObtainToken)
	api.POST("/token/refresh/", c.auth.RefreshToken)
}

func (a *App) registerQuestionRoutes(api *gin.RouterGroup, c *controllers, auth gin.HandlerFunc) {
	questions := api.Group("/questions")
	{
		questions.GET("/", c.question.List)
		questions.GET("/:id/", c.question.Get)
		questions.POST("/", auth, c.question.Create)
		questions.PUT("/:id/", auth, c.question.Update)
		questions.PATCH("/:id/", auth, c.question.Patch)
		questions.DELETE("/:id/", auth, c.question.Delete)
	}
}

func (a *App) registerAnswerRoutes(api *gin.RouterGroup, c *controllers, auth gin.HandlerFunc) {
	answers := api.Group("/answers")
	{
		answers.GET("/", c.answer.List)
		answers.GET("/:id/", c.answer.Get)
		answers.POST("/", auth, c.answer.Create)
		answers.PUT("/:id/", auth, c.answer.Update)
		answers.PATCH("/:id/", auth, c.answer.Patch)
		answers.DELETE("/:id/", auth, c.answer.Delete)
		answers.POST("/:id/accept/", auth, c.answer.Accept)
	}
}

func (a *App) registerTagRoutes(api *gin.RouterGroup, c *controllers) {
	tags := api.Group("/tags")
	{
		tags.GET("/", c.tag.List)
		tags.GET("/:id/", c.tag.Get)
		tags.POST("/", c.tag.Create)
		tags.PUT("/:id/", c.tag.Update)
		tags.PATCH("/:id/", c.tag.Patch)
		tags.DELETE("/:id/", c.tag.Delete)
	}
}

func (a *App) registerVoteRoutes(api *gin.RouterGroup, c *controllers, auth gin.HandlerFunc) {
	votes := api.Group("/votes")
	{
		votes.GET("/", c.vote.List)
		votes.GET("/:id/", c.vote.Get)
		votes.POST("/", auth, c.vote.Create)
		votes.PUT("/:id/", auth, c.vote.Update)
		votes.PATCH("/:id/", auth, c.vote.Patch)
		votes.DELETE("/:id/", auth, c.vote.Delete)
	}
}

func (a *App) registerNotificationRoutes(group *gin.RouterGroup, c *controllers) {
	notifications := group.Group("/notifications")
	{
		notifications.GET("/", c.notification.List)
		notifications.GET("/unread-count/", c.notification.UnreadCount)
		notifications.GET("/:id/", c.notification.Get)
		notifications.POST("/:id/mark_read/", c.notification.MarkRead)
	}
}
