package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/faq-bot/internal/config"
	"github.com/ashwinyue/faq-bot/internal/handler"
	"github.com/ashwinyue/faq-bot/internal/middleware"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, h *handler.Handlers) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())

	r.GET("/", h.Slack.Index)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Slack webhook，全部经过签名校验
	slackGroup := r.Group("/slack")
	slackGroup.Use(middleware.SignatureMiddleware(cfg.Slack.SigningSecret))
	{
		slackGroup.POST("/command", h.Slack.Command)
		slackGroup.POST("/interactions", h.Slack.Interactions)
		// 选项加载与交互共用载荷格式，走同一个分发器
		slackGroup.POST("/options", h.Slack.Interactions)
		slackGroup.POST("/events", h.Slack.Events)
	}

	return r
}
