package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	slackapi "github.com/slack-go/slack"

	"github.com/ashwinyue/faq-bot/internal/config"
	"github.com/ashwinyue/faq-bot/internal/database"
	"github.com/ashwinyue/faq-bot/internal/handler"
	"github.com/ashwinyue/faq-bot/internal/repository"
	"github.com/ashwinyue/faq-bot/internal/router"
	"github.com/ashwinyue/faq-bot/internal/service"
	"github.com/ashwinyue/faq-bot/internal/service/faq"
	botslack "github.com/ashwinyue/faq-bot/internal/slack"
)

func main() {
	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}
	if _, err := os.Stat(configPath); err != nil {
		configPath = ""
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置 Gin 模式
	gin.SetMode(cfg.Server.Mode)

	client := slackapi.New(cfg.Slack.BotToken)
	messenger := botslack.NewMessenger(client, cfg.Slack.ReviewChannelID)

	// 初始化后端
	var repos *repository.Repositories
	var source faq.AnswerSource
	switch cfg.FAQ.Backend {
	case config.BackendStatic:
		source = faq.NewStaticSource(cfg.FAQ.StaticBaseURL, nil)
		log.Printf("Static FAQ backend: %s", cfg.FAQ.StaticBaseURL)
	default:
		db, err := database.New(cfg)
		if err != nil {
			log.Fatalf("Failed to init database: %v", err)
		}
		defer db.Close()
		log.Printf("Database connected: %s", cfg.Database.DBName)

		repos = repository.NewRepositories(db.DB)
		source = faq.NewDatabaseSource(repos, cfg.FAQ.ResolveMode)
	}

	// 初始化各层
	services := service.NewServices(repos, cfg, source, messenger)
	if services.Reviewer != nil {
		// 播种管理员
		if err := services.Reviewer.EnsureAdmin(context.Background()); err != nil {
			log.Fatalf("Failed to seed admin reviewer: %v", err)
		}
	}
	handlers := handler.NewHandlers(cfg, services, messenger)

	// 初始化路由
	r := router.SetupRouter(cfg, handlers)

	// 创建 HTTP 服务器
	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// 启动服务器
	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
